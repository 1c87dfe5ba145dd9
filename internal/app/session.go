package app

import (
	"sort"
	"sync"
	"time"

	"github.com/dkeye/Steward/internal/domain"
)

// Session is one live "looking for group" announcement. The owner is never a
// member of its own opt-in set; a retired session is terminal and already
// deregistered, so late operations against it must no-op.
type Session struct {
	Owner       domain.MemberID
	Channel     domain.ChannelID
	Description string
	Message     domain.MessageID

	mu        sync.Mutex
	optIn     map[domain.MemberID]struct{}
	updatedAt time.Time
	retired   bool
}

func NewSession(owner domain.MemberID, channel domain.ChannelID, description string) *Session {
	return &Session{
		Owner:       owner,
		Channel:     channel,
		Description: description,
		optIn:       make(map[domain.MemberID]struct{}),
		updatedAt:   time.Now(),
	}
}

func (s *Session) optInMember(member domain.MemberID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.retired {
		return domain.ErrNoSession
	}
	if member == s.Owner {
		return domain.ErrOwnSession
	}
	if _, ok := s.optIn[member]; ok {
		return domain.ErrAlreadyOptedIn
	}
	s.optIn[member] = struct{}{}
	s.updatedAt = time.Now()
	return nil
}

func (s *Session) optOutMember(member domain.MemberID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.retired {
		return domain.ErrNoSession
	}
	if _, ok := s.optIn[member]; !ok {
		return domain.ErrNotOptedIn
	}
	delete(s.optIn, member)
	s.updatedAt = time.Now()
	return nil
}

// markRetired flips the session into its terminal state exactly once.
// The second caller (owner cancel racing the reconciler) gets false.
func (s *Session) markRetired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.retired {
		return false
	}
	s.retired = true
	return true
}

func (s *Session) Retired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retired
}

// OptedIn returns the opted-in members in stable order.
func (s *Session) OptedIn() []domain.MemberID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MemberID, 0, len(s.optIn))
	for m := range s.optIn {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
