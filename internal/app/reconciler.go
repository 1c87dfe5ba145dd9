package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Reconciler periodically sweeps every active session: stale ones are
// retired, live ones re-rendered so the announcement tracks real occupancy.
type Reconciler struct {
	Sessions    *SessionRegistry
	Matchmaking *Matchmaking
	Interval    time.Duration
}

// Run loops until ctx is canceled. Tests drive RunOnce directly instead.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	log.Info().Str("module", "app.reconciler").Dur("interval", r.Interval).Msg("reconciler started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.reconciler").Msg("reconciler stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce applies one pass over a snapshot of the registry. A session
// canceled between enumeration and processing is seen retired and skipped.
func (r *Reconciler) RunOnce(ctx context.Context) {
	retired := 0
	sessions := r.Sessions.Snapshot()
	for _, s := range sessions {
		if r.Matchmaking.Reconcile(ctx, s) {
			retired++
		}
	}
	if retired > 0 {
		log.Info().Str("module", "app.reconciler").Int("checked", len(sessions)).Int("retired", retired).Msg("reconcile pass")
	}
}
