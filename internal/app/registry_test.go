package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Steward/internal/domain"
)

func TestRoomRegistryRemoveIsIdempotent(t *testing.T) {
	rooms := NewRoomRegistry()
	rooms.Register(domain.EphemeralRoom{Channel: "room-1", Trigger: "дуо", CreatedAt: time.Now()})

	assert.True(t, rooms.Remove("room-1"))
	assert.False(t, rooms.Remove("room-1"))
	assert.Equal(t, 0, rooms.Len())
}

func TestRoomRegistrySnapshot(t *testing.T) {
	rooms := NewRoomRegistry()
	rooms.Register(domain.EphemeralRoom{Channel: "room-1", Trigger: "дуо"})
	rooms.Register(domain.EphemeralRoom{Channel: "room-2", Trigger: "сквад"})

	snapshot := rooms.Snapshot()
	assert.Len(t, snapshot, 2)

	// Snapshot is a copy: mutating the registry afterwards leaves it intact.
	rooms.Remove("room-1")
	assert.Len(t, snapshot, 2)
}

func TestSessionRegistryRejectsDuplicateOwner(t *testing.T) {
	sessions := NewSessionRegistry()

	require.NoError(t, sessions.Put(NewSession("owner", "voice-1", "первая")))
	err := sessions.Put(NewSession("owner", "voice-2", "вторая"))
	assert.ErrorIs(t, err, domain.ErrSessionExists)

	s, ok := sessions.Get("owner")
	require.True(t, ok)
	assert.Equal(t, domain.ChannelID("voice-1"), s.Channel)
}

func TestSessionOptedInStableOrder(t *testing.T) {
	s := NewSession("owner", "voice-1", "описание")
	require.NoError(t, s.optInMember("c"))
	require.NoError(t, s.optInMember("a"))
	require.NoError(t, s.optInMember("b"))

	assert.Equal(t, []domain.MemberID{"a", "b", "c"}, s.OptedIn())
}
