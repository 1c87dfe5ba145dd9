package app

import (
	"context"
	"sync"
	"time"

	"github.com/dkeye/Steward/internal/core"
	"github.com/dkeye/Steward/internal/domain"
	"github.com/rs/zerolog/log"
)

// Verifier gates guild access behind the nickname-format check. Records are
// memory-resident, like every other registry here.
type Verifier struct {
	Roles core.RoleAPI
	Role  domain.RoleID

	mu      sync.RWMutex
	players map[domain.MemberID]*domain.VerifiedPlayer
}

func NewVerifier(roles core.RoleAPI, role domain.RoleID) *Verifier {
	return &Verifier{
		Roles:   roles,
		Role:    role,
		players: make(map[domain.MemberID]*domain.VerifiedPlayer),
	}
}

// Verify parses "никнейм (имя)" input, grants the verified role and stores
// the record. The role grant happens before the record is written, so a
// permission failure leaves no partial state.
func (v *Verifier) Verify(ctx context.Context, member domain.MemberID, raw string) (*domain.VerifiedPlayer, error) {
	identity, err := domain.ParseIdentity(raw)
	if err != nil {
		return nil, err
	}

	v.mu.RLock()
	_, exists := v.players[member]
	v.mu.RUnlock()
	if exists {
		return nil, domain.ErrAlreadyVerified
	}

	if err := grantRoleChecked(ctx, v.Roles, member, v.Role); err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &domain.VerifiedPlayer{Identity: identity, VerifiedAt: now, UpdatedAt: now}
	v.mu.Lock()
	v.players[member] = rec
	v.mu.Unlock()

	log.Info().Str("module", "app.verify").Str("member", string(member)).Str("nickname", identity.Nickname).Msg("member verified")
	return rec, nil
}

// Rename updates an existing record with a freshly validated identity.
func (v *Verifier) Rename(ctx context.Context, member domain.MemberID, raw string) (*domain.VerifiedPlayer, error) {
	identity, err := domain.ParseIdentity(raw)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	rec, ok := v.players[member]
	if !ok {
		return nil, domain.ErrNotVerified
	}
	rec.Identity = identity
	rec.UpdatedAt = time.Now()

	log.Info().Str("module", "app.verify").Str("member", string(member)).Str("nickname", identity.Nickname).Msg("identity updated")
	return rec, nil
}

func (v *Verifier) Lookup(member domain.MemberID) (*domain.VerifiedPlayer, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	rec, ok := v.players[member]
	return rec, ok
}

func (v *Verifier) Count() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.players)
}
