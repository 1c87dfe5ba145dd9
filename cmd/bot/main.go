package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Steward/internal/adapters/gateway"
	router "github.com/dkeye/Steward/internal/adapters/http"
	"github.com/dkeye/Steward/internal/adapters/platform"
	"github.com/dkeye/Steward/internal/app"
	"github.com/dkeye/Steward/internal/config"
	"github.com/dkeye/Steward/internal/domain"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	client := platform.NewClient(cfg.APIBaseURL, cfg.Token)

	rooms := app.NewRoomRegistry()
	sessions := app.NewSessionRegistry()

	matchmaking := &app.Matchmaking{
		Sessions: sessions,
		Channels: client,
		Announce: client,
		Board:    domain.ChannelID(cfg.SearchChannel),
	}

	orch := &app.Orchestrator{
		Provisioner: &app.Provisioner{
			Channels:  client,
			Rooms:     rooms,
			Templates: app.TemplateIndex(cfg.Templates),
		},
		Reaper: &app.Reaper{
			Channels: client,
			Rooms:    rooms,
			Grace:    cfg.GracePeriod,
		},
		Matchmaking: matchmaking,
		Triggers:    app.TriggerIndex(cfg.Triggers),
	}

	verifier := app.NewVerifier(client, domain.RoleID(cfg.Verification.RoleID))
	vacations := app.NewVacations(client, client,
		domain.RoleID(cfg.Vacation.RoleID), domain.ChannelID(cfg.Vacation.AdminChannel))

	reconciler := &app.Reconciler{
		Sessions:    sessions,
		Matchmaking: matchmaking,
		Interval:    cfg.ReconcileInterval,
	}
	go reconciler.Run(ctx)

	gw := &gateway.Gateway{
		URL:        cfg.GatewayURL,
		Token:      cfg.Token,
		PingPeriod: cfg.PingPeriod,
		Orch:       orch,
		Commands: &gateway.Commands{
			Matchmaking:     matchmaking,
			Verifier:        verifier,
			Vacations:       vacations,
			Cooldowns:       app.NewCooldownGate(cfg.Cooldowns),
			Announce:        client,
			VerifyChannel:   domain.ChannelID(cfg.Verification.ChannelID),
			VacationChannel: domain.ChannelID(cfg.Vacation.RequestChannel),
		},
	}
	go gw.Run(ctx)

	r := router.SetupRouter(cfg.Mode, rooms, sessions, verifier)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Steward admin API started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
