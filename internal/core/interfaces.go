// Package core defines the capability contracts between the bot's state
// machines and the platform adapter. Adapters own the transport; the app
// layer only sees these interfaces.
package core

import (
	"context"

	"github.com/dkeye/Steward/internal/domain"
)

// CreateChannelParams carries everything a voice-channel creation needs.
type CreateChannelParams struct {
	Name      string
	UserLimit int
	Category  domain.CategoryID
}

// ChannelAPI is the channel/member surface of the platform.
// Every lookup returns domain.ErrNotFound explicitly instead of a nil-like
// sentinel; callers must check before assuming a channel still exists.
type ChannelAPI interface {
	// Channel resolves a voice channel by identifier.
	Channel(ctx context.Context, id domain.ChannelID) (*domain.Channel, error)
	// ChannelMembers lists the current occupants of a voice channel.
	ChannelMembers(ctx context.Context, id domain.ChannelID) ([]domain.Member, error)
	// VoiceChannels lists every voice channel in the guild.
	VoiceChannels(ctx context.Context) ([]domain.Channel, error)
	// VoiceChannelOf reports which voice channel a member currently occupies.
	VoiceChannelOf(ctx context.Context, member domain.MemberID) (domain.ChannelID, error)

	// EnsureCategory resolves a category by name, creating it when absent.
	EnsureCategory(ctx context.Context, name string) (domain.CategoryID, error)
	CreateVoiceChannel(ctx context.Context, p CreateChannelParams) (*domain.Channel, error)
	DeleteChannel(ctx context.Context, id domain.ChannelID) error
	MoveMember(ctx context.Context, member domain.MemberID, to domain.ChannelID) error
}

// RoleAPI is the role surface of the platform. Hierarchy checks stay with
// the caller: grant/revoke are plain mutations.
type RoleAPI interface {
	GrantRole(ctx context.Context, member domain.MemberID, role domain.RoleID) error
	RevokeRole(ctx context.Context, member domain.MemberID, role domain.RoleID) error
	// RolePosition reports a role's position in the guild hierarchy.
	RolePosition(ctx context.Context, role domain.RoleID) (int, error)
	// BotTopRolePosition reports the bot's own highest role position.
	BotTopRolePosition(ctx context.Context) (int, error)
}
