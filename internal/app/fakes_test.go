package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dkeye/Steward/internal/core"
	"github.com/dkeye/Steward/internal/domain"
)

// fakeChannels is an in-memory ChannelAPI double. Error fields, when set,
// are returned by the matching call so failure paths are reachable.
type fakeChannels struct {
	mu         sync.Mutex
	channels   map[domain.ChannelID]*domain.Channel
	members    map[domain.ChannelID][]domain.Member
	voiceOf    map[domain.MemberID]domain.ChannelID
	categories map[string]domain.CategoryID
	nextID     int
	deleted    []domain.ChannelID

	createErr  error
	moveErr    error
	membersErr error
}

func newFakeChannels() *fakeChannels {
	return &fakeChannels{
		channels:   make(map[domain.ChannelID]*domain.Channel),
		members:    make(map[domain.ChannelID][]domain.Member),
		voiceOf:    make(map[domain.MemberID]domain.ChannelID),
		categories: make(map[string]domain.CategoryID),
	}
}

func (f *fakeChannels) addChannel(id domain.ChannelID, name string, limit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels[id] = &domain.Channel{ID: id, Name: name, UserLimit: limit}
}

func (f *fakeChannels) occupy(ch domain.ChannelID, members ...domain.MemberID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	occ := make([]domain.Member, 0, len(members))
	for _, m := range members {
		occ = append(occ, domain.Member{ID: m})
		f.voiceOf[m] = ch
	}
	f.members[ch] = occ
}

func (f *fakeChannels) vacate(ch domain.ChannelID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members[ch] {
		delete(f.voiceOf, m.ID)
	}
	f.members[ch] = nil
}

func (f *fakeChannels) deletedChannels() []domain.ChannelID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ChannelID, len(f.deleted))
	copy(out, f.deleted)
	return out
}

func (f *fakeChannels) Channel(_ context.Context, id domain.ChannelID) (*domain.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ch
	return &cp, nil
}

func (f *fakeChannels) ChannelMembers(_ context.Context, id domain.ChannelID) ([]domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	if _, ok := f.channels[id]; !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.Member, len(f.members[id]))
	copy(out, f.members[id])
	return out, nil
}

func (f *fakeChannels) VoiceChannels(_ context.Context) ([]domain.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Channel, 0, len(f.channels))
	for _, ch := range f.channels {
		out = append(out, *ch)
	}
	return out, nil
}

func (f *fakeChannels) VoiceChannelOf(_ context.Context, member domain.MemberID) (domain.ChannelID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.voiceOf[member]
	if !ok {
		return "", domain.ErrNotFound
	}
	return ch, nil
}

func (f *fakeChannels) EnsureCategory(_ context.Context, name string) (domain.CategoryID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.categories[name]; ok {
		return id, nil
	}
	id := domain.CategoryID(fmt.Sprintf("cat-%d", len(f.categories)+1))
	f.categories[name] = id
	return id, nil
}

func (f *fakeChannels) CreateVoiceChannel(_ context.Context, p core.CreateChannelParams) (*domain.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	ch := &domain.Channel{
		ID:        domain.ChannelID(fmt.Sprintf("ch-%d", f.nextID)),
		Name:      p.Name,
		Category:  p.Category,
		UserLimit: p.UserLimit,
	}
	f.channels[ch.ID] = ch
	return ch, nil
}

func (f *fakeChannels) DeleteChannel(_ context.Context, id domain.ChannelID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.channels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.channels, id)
	delete(f.members, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeChannels) MoveMember(_ context.Context, member domain.MemberID, to domain.ChannelID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.moveErr != nil {
		return f.moveErr
	}
	if from, ok := f.voiceOf[member]; ok {
		occ := f.members[from][:0]
		for _, m := range f.members[from] {
			if m.ID != member {
				occ = append(occ, m)
			}
		}
		f.members[from] = occ
	}
	f.voiceOf[member] = to
	f.members[to] = append(f.members[to], domain.Member{ID: member})
	return nil
}

// fakeAnnouncer records published announcements keyed by message ID.
type fakeAnnouncer struct {
	mu      sync.Mutex
	nextID  int
	views   map[domain.MessageID]core.AnnouncementView
	edits   int
	deletes int
	notices []string

	publishErr error
}

func newFakeAnnouncer() *fakeAnnouncer {
	return &fakeAnnouncer{views: make(map[domain.MessageID]core.AnnouncementView)}
}

func (f *fakeAnnouncer) Publish(_ context.Context, _ domain.ChannelID, view core.AnnouncementView) (domain.MessageID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return "", f.publishErr
	}
	f.nextID++
	id := domain.MessageID(fmt.Sprintf("msg-%d", f.nextID))
	f.views[id] = view
	return id, nil
}

func (f *fakeAnnouncer) Edit(_ context.Context, _ domain.ChannelID, msg domain.MessageID, view core.AnnouncementView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.views[msg]; !ok {
		return domain.ErrNotFound
	}
	f.views[msg] = view
	f.edits++
	return nil
}

func (f *fakeAnnouncer) Delete(_ context.Context, _ domain.ChannelID, msg domain.MessageID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.views[msg]; !ok {
		return domain.ErrNotFound
	}
	delete(f.views, msg)
	f.deletes++
	return nil
}

func (f *fakeAnnouncer) Notify(_ context.Context, _ domain.ChannelID, text string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, text)
	return nil
}

func (f *fakeAnnouncer) view(msg domain.MessageID) (core.AnnouncementView, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.views[msg]
	return v, ok
}

func (f *fakeAnnouncer) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.views)
}

// fakeRoles is an in-memory RoleAPI double with a configurable hierarchy.
type fakeRoles struct {
	mu        sync.Mutex
	granted   map[domain.MemberID][]domain.RoleID
	positions map[domain.RoleID]int
	botTop    int

	grantErr error
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{
		granted:   make(map[domain.MemberID][]domain.RoleID),
		positions: make(map[domain.RoleID]int),
		botTop:    100,
	}
}

func (f *fakeRoles) GrantRole(_ context.Context, member domain.MemberID, role domain.RoleID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.grantErr != nil {
		return f.grantErr
	}
	f.granted[member] = append(f.granted[member], role)
	return nil
}

func (f *fakeRoles) RevokeRole(_ context.Context, member domain.MemberID, role domain.RoleID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	roles := f.granted[member][:0]
	for _, r := range f.granted[member] {
		if r != role {
			roles = append(roles, r)
		}
	}
	f.granted[member] = roles
	return nil
}

func (f *fakeRoles) RolePosition(_ context.Context, role domain.RoleID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.positions[role], nil
}

func (f *fakeRoles) BotTopRolePosition(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.botTop, nil
}

func (f *fakeRoles) has(member domain.MemberID, role domain.RoleID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.granted[member] {
		if r == role {
			return true
		}
	}
	return false
}
