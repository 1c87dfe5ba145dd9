package app

import (
	"sync"

	"github.com/dkeye/Steward/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomRegistry tracks every live ephemeral room by channel ID. An entry
// exists iff the provisioner created the channel and the reaper has not yet
// deleted it.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[domain.ChannelID]domain.EphemeralRoom
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[domain.ChannelID]domain.EphemeralRoom)}
}

func (r *RoomRegistry) Register(room domain.EphemeralRoom) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[room.Channel] = room
	log.Info().Str("module", "app.registry").Str("channel", string(room.Channel)).Str("trigger", string(room.Trigger)).Msg("registered room")
}

func (r *RoomRegistry) Get(id domain.ChannelID) (domain.EphemeralRoom, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

// Remove deregisters a room. Removing an absent entry is a no-op: reap runs
// may race on the same vacated channel and both must finish harmlessly.
func (r *RoomRegistry) Remove(id domain.ChannelID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return false
	}
	delete(r.rooms, id)
	log.Info().Str("module", "app.registry").Str("channel", string(id)).Msg("removed room")
	return true
}

func (r *RoomRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *RoomRegistry) Snapshot() []domain.EphemeralRoom {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.EphemeralRoom, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out
}

// SessionRegistry tracks matchmaking sessions by owner, at most one each.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[domain.MemberID]*Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[domain.MemberID]*Session)}
}

// Put registers a session, rejecting a second active session for the owner.
func (r *SessionRegistry) Put(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.Owner]; ok {
		return domain.ErrSessionExists
	}
	r.sessions[s.Owner] = s
	log.Info().Str("module", "app.registry").Str("owner", string(s.Owner)).Str("channel", string(s.Channel)).Msg("registered session")
	return nil
}

func (r *SessionRegistry) Get(owner domain.MemberID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[owner]
	return s, ok
}

func (r *SessionRegistry) Remove(owner domain.MemberID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, owner)
	log.Info().Str("module", "app.registry").Str("owner", string(owner)).Msg("removed session")
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *SessionRegistry) Snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}
