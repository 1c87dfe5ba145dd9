// Package platform implements the core capability interfaces over the chat
// platform's REST API. It owns status-code translation into domain errors;
// nothing above this layer sees HTTP.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dkeye/Steward/internal/core"
	"github.com/dkeye/Steward/internal/domain"
)

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// do runs one API call, encoding in as JSON when non-nil and decoding the
// body into out when non-nil. Status codes map onto the domain taxonomy:
// 404 -> ErrNotFound, 401/403 -> ErrPermission, anything else non-2xx is a
// transient platform error.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.Token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrPermission)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

type channelDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category_id"`
	UserLimit int    `json:"user_limit"`
}

func (d channelDTO) toDomain() *domain.Channel {
	return &domain.Channel{
		ID:        domain.ChannelID(d.ID),
		Name:      d.Name,
		Category:  domain.CategoryID(d.Category),
		UserLimit: d.UserLimit,
	}
}

type memberDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

func (c *Client) Channel(ctx context.Context, id domain.ChannelID) (*domain.Channel, error) {
	var dto channelDTO
	if err := c.do(ctx, http.MethodGet, "/channels/"+string(id), nil, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

func (c *Client) ChannelMembers(ctx context.Context, id domain.ChannelID) ([]domain.Member, error) {
	var dtos []memberDTO
	if err := c.do(ctx, http.MethodGet, "/channels/"+string(id)+"/members", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.Member, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.Member{ID: domain.MemberID(d.ID), DisplayName: d.DisplayName})
	}
	return out, nil
}

func (c *Client) VoiceChannels(ctx context.Context) ([]domain.Channel, error) {
	var dtos []channelDTO
	if err := c.do(ctx, http.MethodGet, "/channels?type=voice", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.Channel, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, *d.toDomain())
	}
	return out, nil
}

func (c *Client) VoiceChannelOf(ctx context.Context, member domain.MemberID) (domain.ChannelID, error) {
	var dto struct {
		ChannelID string `json:"channel_id"`
	}
	if err := c.do(ctx, http.MethodGet, "/members/"+string(member)+"/voice", nil, &dto); err != nil {
		return "", err
	}
	if dto.ChannelID == "" {
		return "", domain.ErrNotFound
	}
	return domain.ChannelID(dto.ChannelID), nil
}

func (c *Client) EnsureCategory(ctx context.Context, name string) (domain.CategoryID, error) {
	var dto struct {
		ID string `json:"id"`
	}
	in := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/categories", in, &dto); err != nil {
		return "", err
	}
	return domain.CategoryID(dto.ID), nil
}

func (c *Client) CreateVoiceChannel(ctx context.Context, p core.CreateChannelParams) (*domain.Channel, error) {
	in := map[string]any{
		"type":        "voice",
		"name":        p.Name,
		"user_limit":  p.UserLimit,
		"category_id": string(p.Category),
	}
	var dto channelDTO
	if err := c.do(ctx, http.MethodPost, "/channels", in, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

func (c *Client) DeleteChannel(ctx context.Context, id domain.ChannelID) error {
	return c.do(ctx, http.MethodDelete, "/channels/"+string(id), nil, nil)
}

func (c *Client) MoveMember(ctx context.Context, member domain.MemberID, to domain.ChannelID) error {
	in := map[string]string{"channel_id": string(to)}
	return c.do(ctx, http.MethodPatch, "/members/"+string(member)+"/voice", in, nil)
}

func (c *Client) GrantRole(ctx context.Context, member domain.MemberID, role domain.RoleID) error {
	return c.do(ctx, http.MethodPut, "/members/"+string(member)+"/roles/"+string(role), nil, nil)
}

func (c *Client) RevokeRole(ctx context.Context, member domain.MemberID, role domain.RoleID) error {
	return c.do(ctx, http.MethodDelete, "/members/"+string(member)+"/roles/"+string(role), nil, nil)
}

func (c *Client) RolePosition(ctx context.Context, role domain.RoleID) (int, error) {
	var dto struct {
		Position int `json:"position"`
	}
	if err := c.do(ctx, http.MethodGet, "/roles/"+string(role), nil, &dto); err != nil {
		return 0, err
	}
	return dto.Position, nil
}

func (c *Client) BotTopRolePosition(ctx context.Context) (int, error) {
	var dto struct {
		Position int `json:"position"`
	}
	if err := c.do(ctx, http.MethodGet, "/me/roles/top", nil, &dto); err != nil {
		return 0, err
	}
	return dto.Position, nil
}
