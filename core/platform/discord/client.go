package discord

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"rpbot/core/platform"

	"github.com/goccy/go-json"
)

const userAgent = "DiscordBot (rpbot, 1.0)"

// Client is the REST implementation of platform.ResourceAPI and platform.Messenger.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	mu    sync.Mutex
	botID uint64
}

// NewClient creates a REST client from the configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

var (
	_ platform.ResourceAPI = (*Client)(nil)
	_ platform.Messenger   = (*Client)(nil)
)

func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &platform.APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(resp.Body)
		var payload errorJSON
		if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return fmt.Errorf("%s %s: %w", method, path, apiErr)
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) CreateRole(ctx context.Context, serverID uint64, spec platform.RoleSpec) (platform.Role, error) {
	var out roleJSON
	in := roleJSON{Name: spec.Name, Permissions: formatPermissions(spec.Permissions)}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/guilds/%d/roles", serverID), in, &out); err != nil {
		return platform.Role{}, err
	}
	return out.toRole(), nil
}

func (c *Client) GetRole(ctx context.Context, serverID, roleID uint64) (platform.Role, error) {
	var out roleJSON
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/guilds/%d/roles/%d", serverID, roleID), nil, &out); err != nil {
		return platform.Role{}, err
	}
	return out.toRole(), nil
}

func (c *Client) DeleteRole(ctx context.Context, serverID, roleID uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/guilds/%d/roles/%d", serverID, roleID), nil, nil)
}

func (c *Client) CreateChannel(ctx context.Context, serverID uint64, spec platform.ChannelSpec) (platform.Channel, error) {
	var out channelJSON
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/guilds/%d/channels", serverID), fromChannelSpec(spec), &out); err != nil {
		return platform.Channel{}, err
	}
	return out.toChannel(), nil
}

func (c *Client) GetChannel(ctx context.Context, channelID uint64) (platform.Channel, error) {
	var out channelJSON
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/channels/%d", channelID), nil, &out); err != nil {
		return platform.Channel{}, err
	}
	return out.toChannel(), nil
}

func (c *Client) DeleteChannel(ctx context.Context, channelID uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/channels/%d", channelID), nil, nil)
}

func (c *Client) ReorderRoles(ctx context.Context, serverID uint64, positions []platform.Position) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/guilds/%d/roles", serverID), fromPositions(positions), nil)
}

func (c *Client) ReorderChannels(ctx context.Context, serverID uint64, positions []platform.Position) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/guilds/%d/channels", serverID), fromPositions(positions), nil)
}

func (c *Client) ListRoles(ctx context.Context, serverID uint64) ([]platform.Role, error) {
	var out []roleJSON
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/guilds/%d/roles", serverID), nil, &out); err != nil {
		return nil, err
	}
	roles := make([]platform.Role, 0, len(out))
	for _, r := range out {
		roles = append(roles, r.toRole())
	}
	return roles, nil
}

func (c *Client) ListChannels(ctx context.Context, serverID uint64) ([]platform.Channel, error) {
	var out []channelJSON
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/guilds/%d/channels", serverID), nil, &out); err != nil {
		return nil, err
	}
	channels := make([]platform.Channel, 0, len(out))
	for _, ch := range out {
		channels = append(channels, ch.toChannel())
	}
	return channels, nil
}

// EveryoneRole returns the role sharing the server's id.
func (c *Client) EveryoneRole(ctx context.Context, serverID uint64) (platform.Role, error) {
	return c.GetRole(ctx, serverID, serverID)
}

// BotRole returns the highest positioned role of the bot member.
func (c *Client) BotRole(ctx context.Context, serverID uint64) (platform.Role, error) {
	botID, err := c.currentUserID(ctx)
	if err != nil {
		return platform.Role{}, err
	}

	var member memberJSON
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/guilds/%d/members/%d", serverID, botID), nil, &member); err != nil {
		return platform.Role{}, err
	}

	roles, err := c.ListRoles(ctx, serverID)
	if err != nil {
		return platform.Role{}, err
	}

	held := make(map[uint64]struct{}, len(member.Roles))
	for _, id := range member.Roles {
		held[parseID(id)] = struct{}{}
	}

	var best *platform.Role
	for i := range roles {
		if _, ok := held[roles[i].ID]; !ok {
			continue
		}
		if best == nil || roles[i].Position > best.Position {
			best = &roles[i]
		}
	}
	if best == nil {
		return platform.Role{}, fmt.Errorf("bot holds no role on server %d: %w", serverID, platform.ErrNotFound)
	}
	return *best, nil
}

func (c *Client) currentUserID(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.botID != 0 {
		return c.botID, nil
	}

	var me userJSON
	if err := c.do(ctx, http.MethodGet, "/users/@me", nil, &me); err != nil {
		return 0, err
	}
	c.botID = parseID(me.ID)
	return c.botID, nil
}

func (c *Client) SendPrompt(ctx context.Context, channelID uint64, content string, buttons []platform.Button) (uint64, error) {
	row := actionRowJSON{Type: 1}
	for _, b := range buttons {
		row.Components = append(row.Components, buttonJSON{Type: 2, Style: int(b.Style), Label: b.Label, CustomID: b.CustomID})
	}
	in := messageJSON{Content: content}
	if len(row.Components) > 0 {
		in.Components = []actionRowJSON{row}
	}

	var out messageJSON
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/channels/%d/messages", channelID), in, &out); err != nil {
		return 0, err
	}
	return parseID(out.ID), nil
}

func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/channels/%d/messages/%d", channelID, messageID), nil, nil)
}
