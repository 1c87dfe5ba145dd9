package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Steward/internal/config"
	"github.com/dkeye/Steward/internal/domain"
)

func newTestProvisioner(channels *fakeChannels) (*Provisioner, *RoomRegistry) {
	rooms := NewRoomRegistry()
	p := &Provisioner{
		Channels: channels,
		Rooms:    rooms,
		Templates: map[domain.TriggerTag]config.Template{
			"дуо":    {Name: "👥Дуо %d", UserLimit: 2, Category: "🔊 Временные каналы"},
			"митинг": {Name: "🗣️Говорилка %d", UserLimit: 0, Category: "🔊 Временные каналы"},
		},
	}
	return p, rooms
}

func TestProvisionCreatesRoomAndMovesMember(t *testing.T) {
	channels := newFakeChannels()
	p, rooms := newTestProvisioner(channels)

	ch, err := p.Provision(context.Background(), "user-1", "дуо")
	require.NoError(t, err)
	assert.Equal(t, "👥Дуо 1", ch.Name)
	assert.Equal(t, 2, ch.UserLimit)

	room, ok := rooms.Get(ch.ID)
	require.True(t, ok)
	assert.Equal(t, domain.TriggerTag("дуо"), room.Trigger)
	assert.Equal(t, domain.MemberID("user-1"), room.CreatedBy)

	occupants, err := channels.ChannelMembers(context.Background(), ch.ID)
	require.NoError(t, err)
	require.Len(t, occupants, 1)
	assert.Equal(t, domain.MemberID("user-1"), occupants[0].ID)
}

func TestProvisionNumbersRoomsSequentially(t *testing.T) {
	channels := newFakeChannels()
	p, _ := newTestProvisioner(channels)

	first, err := p.Provision(context.Background(), "user-1", "дуо")
	require.NoError(t, err)
	second, err := p.Provision(context.Background(), "user-2", "дуо")
	require.NoError(t, err)

	assert.Equal(t, "👥Дуо 1", first.Name)
	assert.Equal(t, "👥Дуо 2", second.Name)
}

func TestProvisionOrdinalsIndependentPerTemplate(t *testing.T) {
	channels := newFakeChannels()
	p, _ := newTestProvisioner(channels)

	duo, err := p.Provision(context.Background(), "user-1", "дуо")
	require.NoError(t, err)
	meet, err := p.Provision(context.Background(), "user-2", "митинг")
	require.NoError(t, err)

	assert.Equal(t, "👥Дуо 1", duo.Name)
	assert.Equal(t, "🗣️Говорилка 1", meet.Name)
}

func TestProvisionUnknownTrigger(t *testing.T) {
	p, rooms := newTestProvisioner(newFakeChannels())

	_, err := p.Provision(context.Background(), "user-1", "рандом")
	require.Error(t, err)
	assert.Equal(t, 0, rooms.Len())
}

func TestProvisionFailedMoveCleansUpChannel(t *testing.T) {
	channels := newFakeChannels()
	channels.moveErr = errors.New("member left")
	p, rooms := newTestProvisioner(channels)

	_, err := p.Provision(context.Background(), "user-1", "дуо")
	require.Error(t, err)

	assert.Equal(t, 0, rooms.Len())
	assert.Len(t, channels.deletedChannels(), 1)
}

func TestProvisionCreateFailureLeavesNoState(t *testing.T) {
	channels := newFakeChannels()
	channels.createErr = errors.New("api down")
	p, rooms := newTestProvisioner(channels)

	_, err := p.Provision(context.Background(), "user-1", "дуо")
	require.Error(t, err)
	assert.Equal(t, 0, rooms.Len())
}
