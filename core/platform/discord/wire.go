package discord

import (
	"strconv"

	"rpbot/core/platform"
)

type roleJSON struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Position    int    `json:"position,omitempty"`
	Permissions string `json:"permissions"`
	Managed     bool   `json:"managed,omitempty"`
}

type overwriteJSON struct {
	ID    string `json:"id"`
	Type  int    `json:"type"`
	Allow string `json:"allow"`
	Deny  string `json:"deny"`
}

type channelJSON struct {
	ID         string          `json:"id,omitempty"`
	Name       string          `json:"name"`
	Type       int             `json:"type"`
	Position   int             `json:"position"`
	ParentID   *string         `json:"parent_id,omitempty"`
	Overwrites []overwriteJSON `json:"permission_overwrites"`
}

type positionJSON struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

type userJSON struct {
	ID string `json:"id"`
}

type memberJSON struct {
	Roles []string `json:"roles"`
}

type buttonJSON struct {
	Type     int    `json:"type"`
	Style    int    `json:"style"`
	Label    string `json:"label"`
	CustomID string `json:"custom_id"`
}

type actionRowJSON struct {
	Type       int          `json:"type"`
	Components []buttonJSON `json:"components"`
}

type messageJSON struct {
	ID         string          `json:"id,omitempty"`
	Content    string          `json:"content"`
	Components []actionRowJSON `json:"components,omitempty"`
}

type errorJSON struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func parseID(s string) uint64 {
	id, _ := strconv.ParseUint(s, 10, 64)
	return id
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func parsePermissions(s string) platform.Permissions {
	p, _ := strconv.ParseUint(s, 10, 64)
	return platform.Permissions(p)
}

func formatPermissions(p platform.Permissions) string {
	return strconv.FormatUint(uint64(p), 10)
}

func (r roleJSON) toRole() platform.Role {
	return platform.Role{
		ID:          parseID(r.ID),
		Name:        r.Name,
		Position:    r.Position,
		Permissions: parsePermissions(r.Permissions),
		Managed:     r.Managed,
	}
}

func (c channelJSON) toChannel() platform.Channel {
	ch := platform.Channel{
		ID:       parseID(c.ID),
		Name:     c.Name,
		Type:     platform.ChannelType(c.Type),
		Position: c.Position,
	}
	if c.ParentID != nil {
		ch.ParentID = parseID(*c.ParentID)
	}
	for _, o := range c.Overwrites {
		ch.Overwrites = append(ch.Overwrites, platform.Overwrite{
			ID:    parseID(o.ID),
			Type:  platform.OverwriteType(o.Type),
			Allow: parsePermissions(o.Allow),
			Deny:  parsePermissions(o.Deny),
		})
	}
	return ch
}

func fromChannelSpec(spec platform.ChannelSpec) channelJSON {
	c := channelJSON{
		Name:       spec.Name,
		Type:       int(spec.Type),
		Position:   spec.Position,
		Overwrites: make([]overwriteJSON, 0, len(spec.Overwrites)),
	}
	if spec.ParentID != 0 && spec.Type != platform.ChannelCategory {
		parent := formatID(spec.ParentID)
		c.ParentID = &parent
	}
	for _, o := range spec.Overwrites {
		c.Overwrites = append(c.Overwrites, overwriteJSON{
			ID:    formatID(o.ID),
			Type:  int(o.Type),
			Allow: formatPermissions(o.Allow),
			Deny:  formatPermissions(o.Deny),
		})
	}
	return c
}

func fromPositions(positions []platform.Position) []positionJSON {
	out := make([]positionJSON, 0, len(positions))
	for _, p := range positions {
		out = append(out, positionJSON{ID: formatID(p.ID), Position: p.Position})
	}
	return out
}
