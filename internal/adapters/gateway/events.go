package gateway

import (
	"context"
	"encoding/json"

	"github.com/dkeye/Steward/internal/domain"
	"github.com/rs/zerolog/log"
)

type voiceStateEvent struct {
	MemberID string `json:"member_id"`
	From     string `json:"from_channel_id"`
	To       string `json:"to_channel_id"`
}

type messageEvent struct {
	AuthorID  string `json:"author_id"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
}

// interactionEvent is a control activation on an announcement: which button,
// by whom, on whose session.
type interactionEvent struct {
	ActorID   string `json:"actor_id"`
	Control   string `json:"control"`
	OwnerID   string `json:"owner_id"`
	ChannelID string `json:"channel_id"`
}

func (g *Gateway) handleVoiceState(ctx context.Context, raw json.RawMessage) {
	var ev voiceStateEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Error().Err(err).Str("module", "gateway").Msg("bad voice state payload")
		return
	}
	g.Orch.OnVoiceState(ctx, domain.VoiceState{
		Member: domain.MemberID(ev.MemberID),
		From:   domain.ChannelID(ev.From),
		To:     domain.ChannelID(ev.To),
	})
}

func (g *Gateway) handleMessage(ctx context.Context, raw json.RawMessage) {
	var ev messageEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Error().Err(err).Str("module", "gateway").Msg("bad message payload")
		return
	}
	g.Commands.Dispatch(ctx, ev)
}

func (g *Gateway) handleInteraction(ctx context.Context, raw json.RawMessage) {
	var ev interactionEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Error().Err(err).Str("module", "gateway").Msg("bad interaction payload")
		return
	}
	g.Commands.DispatchControl(ctx, ev)
}
