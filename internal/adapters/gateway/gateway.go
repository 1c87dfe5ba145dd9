// Package gateway maintains the long-lived websocket to the platform's
// event stream and turns its envelopes into app-layer calls.
package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/Steward/internal/app"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeTimeout     = 5 * time.Second
	reconnectBackoff = 5 * time.Second
)

type Gateway struct {
	URL        string
	Token      string
	PingPeriod time.Duration

	Orch     *app.Orchestrator
	Commands *Commands
}

// Run keeps the gateway connected until ctx is canceled, re-dialing after
// transport failures.
func (g *Gateway) Run(ctx context.Context) {
	for {
		if err := g.connectAndServe(ctx); err != nil {
			log.Error().Err(err).Str("module", "gateway").Msg("connection lost")
		}
		select {
		case <-ctx.Done():
			log.Info().Str("module", "gateway").Msg("gateway stopped")
			return
		case <-time.After(reconnectBackoff):
		}
	}
}

func (g *Gateway) connectAndServe(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, g.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := g.identify(conn); err != nil {
		return err
	}
	log.Info().Str("module", "gateway").Str("url", g.URL).Msg("gateway connected")

	pumpCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go g.heartbeatPump(pumpCtx, conn)

	return g.readPump(pumpCtx, conn)
}

func (g *Gateway) identify(conn *websocket.Conn) error {
	payload := struct {
		T string `json:"t"`
		D any    `json:"d"`
	}{T: "IDENTIFY", D: map[string]string{"token": g.Token}}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(payload)
}

func (g *Gateway) heartbeatPump(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(g.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "gateway").Msg("heartbeatPump ctx done")
			return
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				log.Error().Err(err).Str("module", "gateway").Msg("heartbeat set deadline")
				return
			}
			if err := conn.WriteJSON(map[string]string{"t": "HEARTBEAT"}); err != nil {
				log.Error().Err(err).Str("module", "gateway").Msg("heartbeat write error")
				return
			}
		}
	}
}

func (g *Gateway) readPump(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "gateway").Msg("readPump ctx done")
			return nil
		default:
			_, data, err := conn.ReadMessage()
			if err != nil {
				return err
			}
			g.handleEvent(ctx, data)
		}
	}
}

func (g *Gateway) handleEvent(ctx context.Context, data []byte) {
	var env struct {
		T string          `json:"t"`
		D json.RawMessage `json:"d"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "gateway").Msg("bad json")
		return
	}

	switch env.T {
	case "VOICE_STATE_UPDATE":
		g.handleVoiceState(ctx, env.D)
	case "MESSAGE_CREATE":
		g.handleMessage(ctx, env.D)
	case "INTERACTION":
		g.handleInteraction(ctx, env.D)
	case "HEARTBEAT_ACK":
	default:
		log.Debug().Str("module", "gateway").Str("type", env.T).Msg("ignored event")
	}
}
