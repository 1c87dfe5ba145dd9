package domain

import "time"

// EphemeralRoom records a voice channel created on demand. Never mutated
// after creation; its registry entry lives exactly as long as the channel.
type EphemeralRoom struct {
	Channel   ChannelID
	Trigger   TriggerTag
	CreatedBy MemberID
	CreatedAt time.Time
}
