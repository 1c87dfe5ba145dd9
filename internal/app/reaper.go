package app

import (
	"context"
	"errors"
	"time"

	"github.com/dkeye/Steward/internal/core"
	"github.com/dkeye/Steward/internal/domain"
	"github.com/rs/zerolog/log"
)

// Reaper deletes ephemeral rooms that stayed empty through a full grace
// window. Correctness relies on the recheck-before-delete being idempotent,
// not on excluding concurrent reap runs: two runs racing on one vacated
// channel must both finish harmlessly.
type Reaper struct {
	Channels core.ChannelAPI
	Rooms    *RoomRegistry
	Grace    time.Duration
}

// OnVacated handles one channel-left event. It blocks for up to Grace, so
// event dispatch runs it on its own goroutine.
func (r *Reaper) OnVacated(ctx context.Context, ch domain.ChannelID) {
	if _, ok := r.Rooms.Get(ch); !ok {
		return
	}

	occupied, gone, err := r.occupancy(ctx, ch)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.reaper").Str("channel", string(ch)).Msg("occupancy read failed")
		return
	}
	if gone {
		r.Rooms.Remove(ch)
		return
	}
	if occupied {
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(r.Grace):
	}

	occupied, gone, err = r.occupancy(ctx, ch)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.reaper").Str("channel", string(ch)).Msg("occupancy recheck failed")
		return
	}
	if gone {
		r.Rooms.Remove(ch)
		return
	}
	if occupied {
		log.Debug().Str("module", "app.reaper").Str("channel", string(ch)).Msg("re-occupied during grace, keeping")
		return
	}

	if _, ok := r.Rooms.Get(ch); !ok {
		// A concurrent run already reaped it.
		return
	}

	if err := r.Channels.DeleteChannel(ctx, ch); err != nil && !errors.Is(err, domain.ErrNotFound) {
		// Transient failure: keep the entry so a later vacancy retries.
		log.Warn().Err(err).Str("module", "app.reaper").Str("channel", string(ch)).Msg("channel delete failed")
		return
	}
	r.Rooms.Remove(ch)
	log.Info().Str("module", "app.reaper").Str("channel", string(ch)).Msg("reaped empty room")
}

// occupancy reports whether the channel has members, or no longer exists.
func (r *Reaper) occupancy(ctx context.Context, ch domain.ChannelID) (occupied, gone bool, err error) {
	members, err := r.Channels.ChannelMembers(ctx, ch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, true, nil
		}
		return false, false, err
	}
	return len(members) > 0, false, nil
}
