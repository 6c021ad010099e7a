package discord

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"rpbot/core/platform"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Token: "secret"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_CreateRole(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /guilds/10/roles", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bot secret", r.Header.Get("Authorization"))
		var in roleJSON
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Admin", in.Name)
		assert.Equal(t, "8", in.Permissions)
		writeJSON(w, http.StatusOK, roleJSON{ID: "501", Name: in.Name, Position: 1, Permissions: in.Permissions})
	})
	c := newTestClient(t, mux)

	role, err := c.CreateRole(context.Background(), 10, platform.RoleSpec{Name: "Admin", Permissions: platform.Administrator})
	require.NoError(t, err)
	assert.Equal(t, uint64(501), role.ID)
	assert.True(t, role.Permissions.Has(platform.Administrator))
}

func TestClient_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /guilds/10/roles/77", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorJSON{Code: 10011, Message: "Unknown Role"})
	})
	mux.HandleFunc("GET /channels/88", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "gone")
	})
	c := newTestClient(t, mux)

	_, err := c.GetRole(context.Background(), 10, 77)
	assert.True(t, errors.Is(err, platform.ErrNotFound))
	var apiErr *platform.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 10011, apiErr.Code)

	_, err = c.GetChannel(context.Background(), 88)
	assert.True(t, errors.Is(err, platform.ErrNotFound))
	assert.ErrorContains(t, err, "gone")
}

func TestClient_CreateChannel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /guilds/10/channels", func(w http.ResponseWriter, r *http.Request) {
		var in channelJSON
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Type == int(platform.ChannelCategory) {
			assert.Nil(t, in.ParentID)
		} else {
			require.NotNil(t, in.ParentID)
			assert.Equal(t, "300", *in.ParentID)
		}
		in.ID = "900"
		writeJSON(w, http.StatusCreated, in)
	})
	c := newTestClient(t, mux)

	overwrites := []platform.Overwrite{{ID: 5, Type: platform.OverwriteRole, Deny: platform.ViewChannel}}
	ch, err := c.CreateChannel(context.Background(), 10, platform.ChannelSpec{
		Name: "wiki", Type: platform.ChannelForum, ParentID: 300, Overwrites: overwrites,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(900), ch.ID)
	assert.Equal(t, uint64(300), ch.ParentID)
	assert.Equal(t, overwrites, ch.Overwrites)

	cat, err := c.CreateChannel(context.Background(), 10, platform.ChannelSpec{
		Name: "Admin", Type: platform.ChannelCategory, ParentID: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cat.ParentID)
}

func TestClient_Reorder(t *testing.T) {
	var got []positionJSON
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /guilds/10/roles", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, mux)

	err := c.ReorderRoles(context.Background(), 10, []platform.Position{{ID: 1, Position: 4}, {ID: 2, Position: 3}})
	require.NoError(t, err)
	assert.Equal(t, []positionJSON{{ID: "1", Position: 4}, {ID: "2", Position: 3}}, got)
}

func TestClient_BotRole(t *testing.T) {
	meCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/@me", func(w http.ResponseWriter, r *http.Request) {
		meCalls++
		writeJSON(w, http.StatusOK, userJSON{ID: "42"})
	})
	mux.HandleFunc("GET /guilds/10/members/42", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, memberJSON{Roles: []string{"2", "3"}})
	})
	mux.HandleFunc("GET /guilds/10/roles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []roleJSON{
			{ID: "10", Name: "@everyone", Position: 0, Permissions: "0"},
			{ID: "2", Name: "bot", Position: 3, Permissions: "0", Managed: true},
			{ID: "3", Name: "helper", Position: 1, Permissions: "0"},
			{ID: "4", Name: "other", Position: 9, Permissions: "0"},
		})
	})
	c := newTestClient(t, mux)

	role, err := c.BotRole(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), role.ID)

	_, err = c.BotRole(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, meCalls)
}

func TestClient_SendPrompt(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /channels/55/messages", func(w http.ResponseWriter, r *http.Request) {
		var in messageJSON
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Len(t, in.Components, 1)
		require.Len(t, in.Components[0].Components, 2)
		assert.Equal(t, "setup:cancel", in.Components[0].Components[0].CustomID)
		writeJSON(w, http.StatusOK, messageJSON{ID: "777", Content: in.Content})
	})
	mux.HandleFunc("DELETE /channels/55/messages/777", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, mux)

	id, err := c.SendPrompt(context.Background(), 55, "continue?", []platform.Button{
		{CustomID: "setup:cancel", Label: "Cancel", Style: platform.ButtonDanger},
		{CustomID: "setup:continue", Label: "Continue", Style: platform.ButtonSuccess},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(777), id)
	assert.NoError(t, c.DeleteMessage(context.Background(), 55, 777))
}
