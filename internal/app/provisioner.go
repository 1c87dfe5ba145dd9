package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkeye/Steward/internal/config"
	"github.com/dkeye/Steward/internal/core"
	"github.com/dkeye/Steward/internal/domain"
	"github.com/rs/zerolog/log"
)

// Provisioner creates ephemeral voice rooms when a member enters a lobby
// channel. One successful provision means exactly one new channel and one
// registry entry; any failure aborts with no registry mutation.
type Provisioner struct {
	Channels  core.ChannelAPI
	Rooms     *RoomRegistry
	Templates map[domain.TriggerTag]config.Template
}

// Provision resolves the trigger's template, numbers and creates the room,
// moves the triggering member in and registers the result. The caller does
// not retry: a failed provision leaves the member in the lobby.
func (p *Provisioner) Provision(ctx context.Context, member domain.MemberID, tag domain.TriggerTag) (*domain.Channel, error) {
	tpl, ok := p.Templates[tag]
	if !ok {
		return nil, fmt.Errorf("no template for trigger %q", tag)
	}

	category, err := p.Channels.EnsureCategory(ctx, tpl.Category)
	if err != nil {
		return nil, fmt.Errorf("ensure category %q: %w", tpl.Category, err)
	}

	ordinal, err := p.nextOrdinal(ctx, tpl.Name)
	if err != nil {
		return nil, err
	}

	ch, err := p.Channels.CreateVoiceChannel(ctx, core.CreateChannelParams{
		Name:      fmt.Sprintf(tpl.Name, ordinal),
		UserLimit: tpl.UserLimit,
		Category:  category,
	})
	if err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}

	if err := p.Channels.MoveMember(ctx, member, ch.ID); err != nil {
		// The room was never registered; take the empty channel down so it
		// does not linger outside the reaper's reach.
		if derr := p.Channels.DeleteChannel(ctx, ch.ID); derr != nil && !errors.Is(derr, domain.ErrNotFound) {
			log.Warn().Err(derr).Str("module", "app.provisioner").Str("channel", string(ch.ID)).Msg("orphan channel cleanup failed")
		}
		return nil, fmt.Errorf("move member: %w", err)
	}

	p.Rooms.Register(domain.EphemeralRoom{
		Channel:   ch.ID,
		Trigger:   tag,
		CreatedBy: member,
		CreatedAt: time.Now(),
	})

	log.Info().Str("module", "app.provisioner").Str("channel", string(ch.ID)).Str("name", ch.Name).Str("member", string(member)).Msg("provisioned room")
	return ch, nil
}

// nextOrdinal counts voice channels sharing the template's base prefix (the
// portion before the first space) and picks the next number.
func (p *Provisioner) nextOrdinal(ctx context.Context, nameTemplate string) (int, error) {
	base, _, _ := strings.Cut(nameTemplate, " ")
	channels, err := p.Channels.VoiceChannels(ctx)
	if err != nil {
		return 0, fmt.Errorf("list voice channels: %w", err)
	}
	n := 0
	for _, ch := range channels {
		if strings.HasPrefix(ch.Name, base) {
			n++
		}
	}
	return n + 1, nil
}
