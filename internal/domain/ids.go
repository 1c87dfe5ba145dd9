// Package domain contains entity without logic, just meta-data
package domain

import "fmt"

type (
	ChannelID  string
	CategoryID string
	MemberID   string
	MessageID  string
	RoleID     string

	// TriggerTag names a lobby/template pair ("дуо", "сквад", ...).
	TriggerTag string
)

// Mention renders the platform's inline mention markup for a member.
func (m MemberID) Mention() string { return fmt.Sprintf("<@%s>", string(m)) }

// Mention renders the platform's inline mention markup for a channel.
func (c ChannelID) Mention() string { return fmt.Sprintf("<#%s>", string(c)) }
