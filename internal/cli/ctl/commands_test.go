package ctl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruenerator/shell/internal/api"
	"github.com/gruenerator/shell/internal/menu"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*APIClient, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	out := &bytes.Buffer{}
	return &APIClient{BaseURL: server.URL, Token: "tok", Client: server.Client(), Out: out}, out
}

func TestAPIClient_doRequest(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "dark", body["theme"])
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.SetTheme("dark"))
}

func TestAPIClient_ShowStatus(t *testing.T) {
	c, out := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/health":
			w.Write([]byte(`{"status":"healthy","uptime":"3s"}`))
		case "/api/v1/version":
			w.Write([]byte(`{"version":"1.3.0","platform":"linux/amd64"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	require.NoError(t, c.ShowStatus())
	assert.Contains(t, out.String(), "Status: healthy")
	assert.Contains(t, out.String(), "Version: 1.3.0")
	assert.Contains(t, out.String(), "Platform: linux/amd64")
}

func TestAPIClient_Error(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"network error: timeout"}`))
	})

	err := c.CheckUpdate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error")
	assert.Contains(t, err.Error(), "network error: timeout")
}

func TestAPIClient_CheckUpdate(t *testing.T) {
	c, out := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/update/check", r.URL.Path)
		w.Write([]byte(`{"available":true,"version":"1.4.0","current_version":"1.3.0","body":"Neu"}`))
	})

	require.NoError(t, c.CheckUpdate())
	assert.Contains(t, out.String(), "New version:     1.4.0")
	assert.Contains(t, out.String(), "Neu")

	c, out = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"available":false,"version":null,"current_version":"1.3.0","body":null}`))
	})
	require.NoError(t, c.CheckUpdate())
	assert.Equal(t, "Current version 1.3.0 is up to date.\n", out.String())
}

func TestAPIClient_DispatchMenu(t *testing.T) {
	c, out := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/menu/zoom_in", r.URL.Path)
		w.Write([]byte(`{"action":"notify","notification":"menu-zoom","payload":"in"}`))
	})

	require.NoError(t, c.DispatchMenu("zoom_in"))
	assert.Equal(t, "Action: notify\nNotification: menu-zoom\nPayload: in\n", out.String())
}

func TestAPIClient_Autostart(t *testing.T) {
	enabled := false
	c, out := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "PUT" {
			var body map[string]bool
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			enabled = body["enabled"]
		}
		json.NewEncoder(w).Encode(map[string]bool{"enabled": enabled})
	})

	require.NoError(t, c.SetAutostart(true))
	require.NoError(t, c.ShowAutostart())
	assert.Equal(t, "Autostart: on\nAutostart: on\n", out.String())
}

func TestAPIClient_OpenURLs(t *testing.T) {
	c, out := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"forwarded":1}`))
	})

	require.NoError(t, c.OpenURLs([]string{"gruenerator://auth/callback", "x:y"}))
	assert.Equal(t, "Forwarded 1 of 2\n", out.String())
}

func TestListMenu(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ListMenu(&out, menu.DefaultTree("Grünerator")))
	assert.Contains(t, out.String(), "zoom_reset")
	assert.Contains(t, out.String(), "CmdOrCtrl+0")
	assert.Contains(t, out.String(), "Über Grünerator")
	assert.NotContains(t, out.String(), "Beenden", "predefined items are not listed")
}

type readyBackend struct {
	api.Backend
	ready chan struct{}
}

func (b *readyBackend) CloseSplashscreen() { close(b.ready) }

func TestNewAPIClient_UnixSocket(t *testing.T) {
	dir, err := os.MkdirTemp("", "gctl")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	sock := filepath.Join(dir, "s.sock")

	b := &readyBackend{ready: make(chan struct{})}
	srv, err := api.Listen(sock, api.New(api.Config{Backend: b}).Handler())
	require.NoError(t, err)
	go srv.Serve()
	defer srv.Shutdown(context.Background())

	c := NewAPIClient(sock, "")
	c.Out = &bytes.Buffer{}
	require.NoError(t, c.Ready())

	select {
	case <-b.ready:
	default:
		t.Fatal("ready signal not delivered")
	}
}

func TestNewCommands(t *testing.T) {
	cmd := NewCommands(func() (string, string, error) { return "", "", errors.New("no config") })

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, n := range []string{"status", "ready", "menu", "theme", "autostart", "update", "deeplink"} {
		assert.True(t, names[n], n)
	}

	cmd.SetArgs([]string{"status"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.ErrorContains(t, cmd.Execute(), "no config")
}
