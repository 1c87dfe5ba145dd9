package platform

import (
	"context"
	"net/http"
	"time"

	"github.com/dkeye/Steward/internal/core"
	"github.com/dkeye/Steward/internal/domain"
)

type messageDTO struct {
	ID string `json:"id"`
}

// Publish posts a rendered announcement as an embed message.
func (c *Client) Publish(ctx context.Context, ch domain.ChannelID, view core.AnnouncementView) (domain.MessageID, error) {
	in := map[string]any{"embed": view}
	var dto messageDTO
	if err := c.do(ctx, http.MethodPost, "/channels/"+string(ch)+"/messages", in, &dto); err != nil {
		return "", err
	}
	return domain.MessageID(dto.ID), nil
}

func (c *Client) Edit(ctx context.Context, ch domain.ChannelID, msg domain.MessageID, view core.AnnouncementView) error {
	in := map[string]any{"embed": view}
	return c.do(ctx, http.MethodPatch, "/channels/"+string(ch)+"/messages/"+string(msg), in, nil)
}

func (c *Client) Delete(ctx context.Context, ch domain.ChannelID, msg domain.MessageID) error {
	return c.do(ctx, http.MethodDelete, "/channels/"+string(ch)+"/messages/"+string(msg), nil, nil)
}

// Notify sends a short plain message; ttl > 0 asks the platform to expire it.
func (c *Client) Notify(ctx context.Context, ch domain.ChannelID, text string, ttl time.Duration) error {
	in := map[string]any{"content": text}
	if ttl > 0 {
		in["delete_after"] = int(ttl.Seconds())
	}
	return c.do(ctx, http.MethodPost, "/channels/"+string(ch)+"/messages", in, nil)
}
