package core

import (
	"context"
	"time"

	"github.com/dkeye/Steward/internal/domain"
)

// Field is one titled block inside an announcement.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// AnnouncementView is a fully rendered display payload. The app layer builds
// it as a pure function of state; the adapter decides how it looks on the wire.
type AnnouncementView struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Fields      []Field   `json:"fields,omitempty"`
	Footer      string    `json:"footer,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Announcer publishes and maintains rendered announcement payloads.
// Edit and Delete return domain.ErrNotFound when the message is already
// gone; callers treat that as moot.
type Announcer interface {
	Publish(ctx context.Context, ch domain.ChannelID, view AnnouncementView) (domain.MessageID, error)
	Edit(ctx context.Context, ch domain.ChannelID, msg domain.MessageID, view AnnouncementView) error
	Delete(ctx context.Context, ch domain.ChannelID, msg domain.MessageID) error

	// Notify sends a short plain reply that the platform may auto-expire.
	Notify(ctx context.Context, ch domain.ChannelID, text string, ttl time.Duration) error
}
