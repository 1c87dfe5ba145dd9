package app

import (
	"context"

	"github.com/dkeye/Steward/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator routes voice-presence transitions to the room lifecycle and
// the matchmaking teardown path. It owns no state of its own; the injected
// registries do (swappable in tests).
type Orchestrator struct {
	Provisioner *Provisioner
	Reaper      *Reaper
	Matchmaking *Matchmaking

	// Triggers maps lobby channel ID -> trigger tag.
	Triggers map[domain.ChannelID]domain.TriggerTag
}

// OnVoiceState handles one presence transition. Entering a lobby provisions
// a room; leaving any channel retires an owned session and arms the reaper.
func (o *Orchestrator) OnVoiceState(ctx context.Context, ev domain.VoiceState) {
	if ev.To != "" {
		if tag, ok := o.Triggers[ev.To]; ok {
			if _, err := o.Provisioner.Provision(ctx, ev.Member, tag); err != nil {
				// The member stays in the lobby; nothing to roll back.
				log.Error().Err(err).Str("module", "app.orchestrator").Str("member", string(ev.Member)).Str("trigger", string(tag)).Msg("provision failed")
			}
		}
	}

	if ev.From != "" {
		o.Matchmaking.RetireOwned(ctx, ev.Member)
		// The reaper blocks through its grace window; don't stall dispatch.
		go o.Reaper.OnVacated(ctx, ev.From)
	}
}

// TriggerIndex inverts the config's tag->lobby mapping for event dispatch.
func TriggerIndex(triggers map[string]string) map[domain.ChannelID]domain.TriggerTag {
	out := make(map[domain.ChannelID]domain.TriggerTag, len(triggers))
	for tag, ch := range triggers {
		out[domain.ChannelID(ch)] = domain.TriggerTag(tag)
	}
	return out
}

// TemplateIndex re-keys the config's template map by trigger tag.
func TemplateIndex[T any](templates map[string]T) map[domain.TriggerTag]T {
	out := make(map[domain.TriggerTag]T, len(templates))
	for tag, tpl := range templates {
		out[domain.TriggerTag(tag)] = tpl
	}
	return out
}
