package domain

// Channel is a voice channel snapshot as the platform reports it.
// UserLimit == 0 means unlimited.
type Channel struct {
	ID        ChannelID
	Name      string
	Category  CategoryID
	UserLimit int
}

// Member is a guild member as seen in channel occupant lists.
type Member struct {
	ID          MemberID
	DisplayName string
}

// VoiceState describes one presence transition: From and To are the vacated
// and entered channels, either of which may be empty.
type VoiceState struct {
	Member MemberID
	From   ChannelID
	To     ChannelID
}
