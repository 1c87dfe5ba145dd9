package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/Steward/internal/core"
	"github.com/dkeye/Steward/internal/domain"
	"github.com/rs/zerolog/log"
)

// Vacations tracks temporary "on leave" status: a role on the member plus a
// notice in the admin channel that the return flow takes back down.
type Vacations struct {
	Roles    core.RoleAPI
	Announce core.Announcer

	Role         domain.RoleID
	AdminChannel domain.ChannelID

	mu     sync.Mutex
	active map[domain.MemberID]*domain.Vacation
}

func NewVacations(roles core.RoleAPI, announce core.Announcer, role domain.RoleID, adminChannel domain.ChannelID) *Vacations {
	return &Vacations{
		Roles:        roles,
		Announce:     announce,
		Role:         role,
		AdminChannel: adminChannel,
		active:       make(map[domain.MemberID]*domain.Vacation),
	}
}

// Start grants the vacation role and posts the admin notice. The notice is
// best-effort: a failed post is logged and the vacation still stands, the
// record just carries no message to delete later.
func (vs *Vacations) Start(ctx context.Context, member domain.MemberID, rawDuration string) (*domain.Vacation, error) {
	dur, display, err := domain.ParseVacationDuration(rawDuration)
	if err != nil {
		return nil, err
	}

	vs.mu.Lock()
	_, exists := vs.active[member]
	vs.mu.Unlock()
	if exists {
		return nil, domain.ErrOnVacation
	}

	if err := grantRoleChecked(ctx, vs.Roles, member, vs.Role); err != nil {
		return nil, err
	}

	rec := &domain.Vacation{
		Member:   member,
		Duration: display,
		EndsAt:   time.Now().Add(dur),
	}

	msg, err := vs.Announce.Publish(ctx, vs.AdminChannel, vs.noticeView(rec))
	if err != nil {
		log.Warn().Err(err).Str("module", "app.vacation").Str("member", string(member)).Msg("admin notice failed")
	} else {
		rec.AdminNotice = msg
	}

	vs.mu.Lock()
	vs.active[member] = rec
	vs.mu.Unlock()

	log.Info().Str("module", "app.vacation").Str("member", string(member)).Str("duration", display).Msg("vacation started")
	return rec, nil
}

// Return revokes the role, removes the admin notice and drops the record.
func (vs *Vacations) Return(ctx context.Context, member domain.MemberID) error {
	vs.mu.Lock()
	rec, ok := vs.active[member]
	vs.mu.Unlock()
	if !ok {
		return domain.ErrNotOnVacation
	}

	if err := revokeRoleChecked(ctx, vs.Roles, member, vs.Role); err != nil {
		return err
	}

	if rec.AdminNotice != "" {
		if err := vs.Announce.Delete(ctx, vs.AdminChannel, rec.AdminNotice); err != nil && !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Str("module", "app.vacation").Str("member", string(member)).Msg("admin notice delete failed")
		}
	}

	vs.mu.Lock()
	delete(vs.active, member)
	vs.mu.Unlock()

	log.Info().Str("module", "app.vacation").Str("member", string(member)).Msg("vacation ended")
	return nil
}

func (vs *Vacations) Lookup(member domain.MemberID) (*domain.Vacation, bool) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	rec, ok := vs.active[member]
	return rec, ok
}

func (vs *Vacations) noticeView(rec *domain.Vacation) core.AnnouncementView {
	return core.AnnouncementView{
		Title:     "🏖️ Новая заявка на отпуск",
		Timestamp: time.Now(),
		Fields: []core.Field{
			{Name: "👤 Сотрудник", Value: rec.Member.Mention(), Inline: true},
			{Name: "⏱️ Длительность", Value: rec.Duration, Inline: true},
			{Name: "📅 Дата окончания", Value: rec.EndsAt.Format("02.01.2006 15:04"), Inline: true},
		},
	}
}
