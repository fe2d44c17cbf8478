// Package ctl provides CLI commands that control a running shell over its
// control socket.
package ctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gruenerator/shell/internal/menu"
)

// APIClient talks to the control API of a running shell.
type APIClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
	Out     io.Writer
}

// NewAPIClient creates a client for the control socket at socketPath.
func NewAPIClient(socketPath, token string) *APIClient {
	return &APIClient{
		BaseURL: "http://shell",
		Token:   token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
					var d net.Dialer
					return d.DialContext(ctx, "unix", socketPath)
				},
			},
		},
		Out: os.Stdout,
	}
}

// Target resolves the control socket path and API token.
type Target func() (socketPath, token string, err error)

// NewCommands creates the "ctl" command tree.
func NewCommands(target Target) *cobra.Command {
	root := &cobra.Command{
		Use:   "ctl",
		Short: "Control a running Grünerator shell",
	}

	client := func() (*APIClient, error) {
		socket, token, err := target()
		if err != nil {
			return nil, err
		}
		return NewAPIClient(socket, token), nil
	}

	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show shell status",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			return c.ShowStatus()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "ready",
		Short: "Signal application readiness (closes the splash screen)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			return c.Ready()
		},
	})

	menuCmd := &cobra.Command{
		Use:   "menu <id>",
		Short: "Dispatch an application menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			return c.DispatchMenu(args[0])
		},
	}
	menuCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the menu item identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ListMenu(cmd.OutOrStdout(), menu.DefaultTree("Grünerator"))
		},
	})
	root.AddCommand(menuCmd)

	root.AddCommand(&cobra.Command{
		Use:       "theme [dark|light|system]",
		Short:     "Show or set the main window theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "system"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return c.ShowTheme()
			}
			return c.SetTheme(args[0])
		},
	})

	root.AddCommand(&cobra.Command{
		Use:       "autostart [on|off]",
		Short:     "Show or change launch at login",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return c.ShowAutostart()
			}
			switch args[0] {
			case "on":
				return c.SetAutostart(true)
			case "off":
				return c.SetAutostart(false)
			default:
				return fmt.Errorf("expected 'on' or 'off', got %q", args[0])
			}
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "update",
		Short: "Ask the running shell to check for updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			return c.CheckUpdate()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "deeplink <url>...",
		Short: "Route deep links without raising the window",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			return c.OpenURLs(args)
		},
	})

	return root
}

func (c *APIClient) doRequest(method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, r)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.Client.Do(req)
}

// call performs a request and decodes a JSON response into v when v is
// not nil.
func (c *APIClient) call(method, path string, body, v any) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return fmt.Errorf("request failed (is the shell running?): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("API error: %s - %s", resp.Status, e.Error)
		}
		return fmt.Errorf("API error: %s - %s", resp.Status, strings.TrimSpace(string(data)))
	}

	if v == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *APIClient) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// ShowStatus prints health and version of the running shell.
func (c *APIClient) ShowStatus() error {
	var health map[string]any
	if err := c.call("GET", "/api/v1/health", nil, &health); err != nil {
		return err
	}
	var info map[string]any
	if err := c.call("GET", "/api/v1/version", nil, &info); err != nil {
		return err
	}

	c.printf("Status: %v\n", health["status"])
	c.printf("Uptime: %v\n", health["uptime"])
	c.printf("Version: %v\n", info["version"])
	c.printf("Platform: %v\n", info["platform"])
	return nil
}

// Ready sends the application-ready signal.
func (c *APIClient) Ready() error {
	if err := c.call("POST", "/api/v1/ready", nil, nil); err != nil {
		return err
	}
	c.printf("Ready signal sent\n")
	return nil
}

// DispatchMenu activates a menu item.
func (c *APIClient) DispatchMenu(id string) error {
	var res struct {
		Action       string `json:"action"`
		Notification string `json:"notification"`
		Payload      any    `json:"payload"`
	}
	if err := c.call("POST", "/api/v1/menu/"+id, nil, &res); err != nil {
		return err
	}

	c.printf("Action: %s\n", res.Action)
	if res.Notification != "" {
		c.printf("Notification: %s\n", res.Notification)
	}
	if res.Payload != nil {
		c.printf("Payload: %v\n", res.Payload)
	}
	return nil
}

// ListMenu prints the custom menu items of tree.
func ListMenu(out io.Writer, tree menu.Tree) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tSHORTCUT")
	for _, cmd := range tree.Commands() {
		item, _ := tree.Find(cmd.ID)
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, item.Label, item.Accelerator)
	}
	return w.Flush()
}

// ShowTheme prints the main window theme.
func (c *APIClient) ShowTheme() error {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := c.call("GET", "/api/v1/theme", nil, &body); err != nil {
		return err
	}
	c.printf("Theme: %s\n", body.Theme)
	return nil
}

// SetTheme sets the main window theme. "system" follows the OS.
func (c *APIClient) SetTheme(theme string) error {
	if err := c.call("PUT", "/api/v1/theme", map[string]string{"theme": theme}, nil); err != nil {
		return err
	}
	c.printf("Theme set to %s\n", theme)
	return nil
}

// ShowAutostart prints whether launch at login is enabled.
func (c *APIClient) ShowAutostart() error {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.call("GET", "/api/v1/autostart", nil, &body); err != nil {
		return err
	}
	c.printf("Autostart: %s\n", onOff(body.Enabled))
	return nil
}

// SetAutostart enables or disables launch at login.
func (c *APIClient) SetAutostart(enabled bool) error {
	if err := c.call("PUT", "/api/v1/autostart", map[string]bool{"enabled": enabled}, nil); err != nil {
		return err
	}
	c.printf("Autostart: %s\n", onOff(enabled))
	return nil
}

// CheckUpdate runs an update check in the running shell.
func (c *APIClient) CheckUpdate() error {
	var res struct {
		Available      bool    `json:"available"`
		Version        *string `json:"version"`
		CurrentVersion string  `json:"current_version"`
		Body           *string `json:"body"`
	}
	if err := c.call("POST", "/api/v1/update/check", nil, &res); err != nil {
		return err
	}

	if !res.Available {
		c.printf("Current version %s is up to date.\n", res.CurrentVersion)
		return nil
	}
	c.printf("Update available!\n")
	c.printf("  Current version: %s\n", res.CurrentVersion)
	if res.Version != nil {
		c.printf("  New version:     %s\n", *res.Version)
	}
	if res.Body != nil && *res.Body != "" {
		c.printf("\n%s\n", *res.Body)
	}
	return nil
}

// OpenURLs hands deep links to the deep-link router.
func (c *APIClient) OpenURLs(urls []string) error {
	var res struct {
		Forwarded int `json:"forwarded"`
	}
	if err := c.call("POST", "/api/v1/deeplink", map[string][]string{"urls": urls}, &res); err != nil {
		return err
	}
	c.printf("Forwarded %d of %d\n", res.Forwarded, len(urls))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
