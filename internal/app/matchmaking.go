package app

import (
	"context"
	"errors"

	"github.com/dkeye/Steward/internal/core"
	"github.com/dkeye/Steward/internal/domain"
	"github.com/rs/zerolog/log"
)

// Matchmaking owns the session registry and runs every session transition:
// create, opt-in/out, owner cancel and reconciliation retire.
type Matchmaking struct {
	Sessions *SessionRegistry
	Channels core.ChannelAPI
	Announce core.Announcer

	// Board is the text channel that carries search announcements.
	Board domain.ChannelID
}

// Create opens a session for owner targeting their current voice channel.
// Rejected when the owner already has one or is not in voice.
func (m *Matchmaking) Create(ctx context.Context, owner domain.MemberID, description string) (*Session, error) {
	if _, ok := m.Sessions.Get(owner); ok {
		return nil, domain.ErrSessionExists
	}

	target, err := m.Channels.VoiceChannelOf(ctx, owner)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotInVoice
		}
		return nil, err
	}

	s := NewSession(owner, target, description)
	view, err := m.buildView(ctx, s)
	if err != nil {
		return nil, err
	}

	msg, err := m.Announce.Publish(ctx, m.Board, view)
	if err != nil {
		return nil, err
	}
	s.Message = msg

	if err := m.Sessions.Put(s); err != nil {
		// Lost a create race for the same owner; take the orphan message down.
		if derr := m.Announce.Delete(ctx, m.Board, msg); derr != nil && !errors.Is(derr, domain.ErrNotFound) {
			log.Warn().Err(derr).Str("module", "app.matchmaking").Str("owner", string(owner)).Msg("orphan announcement cleanup failed")
		}
		return nil, err
	}

	log.Info().Str("module", "app.matchmaking").Str("owner", string(owner)).Str("channel", string(target)).Msg("session created")
	return s, nil
}

// OptIn adds member to the session owned by owner and refreshes the board.
func (m *Matchmaking) OptIn(ctx context.Context, owner, member domain.MemberID) error {
	s, ok := m.Sessions.Get(owner)
	if !ok {
		return domain.ErrNoSession
	}
	if err := s.optInMember(member); err != nil {
		return err
	}
	m.refresh(ctx, s)
	return nil
}

// OptOut removes member from the session owned by owner.
func (m *Matchmaking) OptOut(ctx context.Context, owner, member domain.MemberID) error {
	s, ok := m.Sessions.Get(owner)
	if !ok {
		return domain.ErrNoSession
	}
	if err := s.optOutMember(member); err != nil {
		return err
	}
	m.refresh(ctx, s)
	return nil
}

// Cancel retires the session on the owner's request. Only the owner may.
func (m *Matchmaking) Cancel(ctx context.Context, owner, actor domain.MemberID) error {
	s, ok := m.Sessions.Get(owner)
	if !ok {
		return domain.ErrNoSession
	}
	if actor != s.Owner {
		return domain.ErrNotOwner
	}
	m.Retire(ctx, s)
	return nil
}

// RetireOwned retires the session owned by member, if any. Called when the
// owner's voice presence leaves a channel.
func (m *Matchmaking) RetireOwned(ctx context.Context, member domain.MemberID) {
	if s, ok := m.Sessions.Get(member); ok {
		m.Retire(ctx, s)
	}
}

// Retire is the single teardown path: announcement deleted, registry entry
// dropped. Safe to call twice; the loser of the markRetired race returns.
func (m *Matchmaking) Retire(ctx context.Context, s *Session) {
	if !s.markRetired() {
		return
	}
	if err := m.Announce.Delete(ctx, m.Board, s.Message); err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Warn().Err(err).Str("module", "app.matchmaking").Str("owner", string(s.Owner)).Msg("announcement delete failed")
	}
	m.Sessions.Remove(s.Owner)
	log.Info().Str("module", "app.matchmaking").Str("owner", string(s.Owner)).Msg("session retired")
}

// Reconcile applies exactly one of retire (stale) or re-render (live) to s.
// Returns true when the session was retired.
func (m *Matchmaking) Reconcile(ctx context.Context, s *Session) bool {
	if s.Retired() {
		return true
	}

	occupants, err := m.Channels.ChannelMembers(ctx, s.Channel)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			m.Retire(ctx, s)
			return true
		}
		// Transient platform failure: leave the session as it is.
		log.Warn().Err(err).Str("module", "app.matchmaking").Str("owner", string(s.Owner)).Msg("occupancy read failed")
		return false
	}

	ownerPresent := false
	for _, occ := range occupants {
		if occ.ID == s.Owner {
			ownerPresent = true
			break
		}
	}
	if !ownerPresent {
		m.Retire(ctx, s)
		return true
	}

	m.refresh(ctx, s)
	return false
}

// refresh re-renders the announcement from live state. Failures are logged,
// never surfaced: the reconciler retires genuinely stale sessions.
func (m *Matchmaking) refresh(ctx context.Context, s *Session) {
	view, err := m.buildView(ctx, s)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.matchmaking").Str("owner", string(s.Owner)).Msg("render failed")
		return
	}
	if err := m.Announce.Edit(ctx, m.Board, s.Message, view); err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Warn().Err(err).Str("module", "app.matchmaking").Str("owner", string(s.Owner)).Msg("announcement edit failed")
	}
}

func (m *Matchmaking) buildView(ctx context.Context, s *Session) (core.AnnouncementView, error) {
	ch, err := m.Channels.Channel(ctx, s.Channel)
	if err != nil {
		return core.AnnouncementView{}, err
	}
	occupants, err := m.Channels.ChannelMembers(ctx, s.Channel)
	if err != nil {
		return core.AnnouncementView{}, err
	}
	return RenderSessionView(s.Owner, s.Description, ch, occupants, s.OptedIn(), s.UpdatedAt()), nil
}
