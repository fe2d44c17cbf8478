package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gruenerator/shell/internal/logging"
)

// ShellConfig is the main configuration of the desktop shell.
type ShellConfig struct {
	App       AppConfig       `yaml:"app" json:"app"`
	Startup   StartupConfig   `yaml:"startup" json:"startup"`
	DeepLink  DeepLinkConfig  `yaml:"deep_link" json:"deep_link"`
	Menu      MenuConfig      `yaml:"menu" json:"menu"`
	Tray      TrayConfig      `yaml:"tray" json:"tray"`
	Update    UpdateConfig    `yaml:"update" json:"update"`
	Instance  InstanceConfig  `yaml:"instance" json:"instance"`
	Autostart AutostartConfig `yaml:"autostart" json:"autostart"`
	API       APIConfig       `yaml:"api" json:"api"`
	Logging   logging.Config  `yaml:"logging" json:"logging"`
}

// AppConfig identifies the application to the OS.
type AppConfig struct {
	// Identifier is the reverse-DNS application id. It keys the
	// single-instance lock and the autostart entry.
	Identifier string `yaml:"identifier" json:"identifier"`
	Name       string `yaml:"name" json:"name"`
	// DataDir holds the lock file and control socket. Empty means the
	// per-user config directory joined with Identifier.
	DataDir string `yaml:"data_dir,omitempty" json:"data_dir,omitempty"`
}

// StartupConfig controls the splash-to-main transition.
type StartupConfig struct {
	SplashTimeout Duration `yaml:"splash_timeout" json:"splash_timeout"`
	// Devtools opens the web inspector on the main window after startup.
	Devtools       bool `yaml:"devtools" json:"devtools"`
	StartMinimized bool `yaml:"start_minimized" json:"start_minimized"`
}

// DeepLinkConfig holds the custom URL scheme.
type DeepLinkConfig struct {
	Scheme string `yaml:"scheme" json:"scheme"`
	// Register writes the OS scheme handler on startup.
	Register bool `yaml:"register" json:"register"`
}

// MenuConfig holds the link targets of the help menu.
type MenuConfig struct {
	DocsURL     string `yaml:"docs_url" json:"docs_url"`
	FeedbackURL string `yaml:"feedback_url" json:"feedback_url"`
}

// TrayConfig contains system tray settings.
type TrayConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Tooltip string `yaml:"tooltip" json:"tooltip"`
}

// UpdateConfig selects the update feed.
type UpdateConfig struct {
	Source      string   `yaml:"source" json:"source"`   // manifest, github, none
	Channel     string   `yaml:"channel" json:"channel"` // stable, prerelease
	ManifestURL string   `yaml:"manifest_url,omitempty" json:"manifest_url,omitempty"`
	GitHubOwner string   `yaml:"github_owner,omitempty" json:"github_owner,omitempty"`
	GitHubRepo  string   `yaml:"github_repo,omitempty" json:"github_repo,omitempty"`
	Timeout     Duration `yaml:"timeout" json:"timeout"`
}

// InstanceConfig controls the single-instance guard.
type InstanceConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled"`
	ForwardTimeout Duration `yaml:"forward_timeout" json:"forward_timeout"`
}

// AutostartConfig holds the arguments the OS passes on login launch.
type AutostartConfig struct {
	Args []string `yaml:"args" json:"args"`
}

// APIConfig contains the local control API settings.
type APIConfig struct {
	// Socket is the control socket path. Relative paths are resolved
	// against the data dir.
	Socket  string `yaml:"socket" json:"socket"`
	Metrics bool   `yaml:"metrics" json:"metrics"`
	// Token, when set, is required as a bearer token on every request.
	Token string `yaml:"token,omitempty" json:"-"`
}

// Update sources.
const (
	UpdateSourceManifest = "manifest"
	UpdateSourceGitHub   = "github"
	UpdateSourceNone     = "none"
)

// DefaultShellConfig returns the configuration used when no file exists.
func DefaultShellConfig() ShellConfig {
	return ShellConfig{
		App: AppConfig{
			Identifier: "de.gruenerator.app",
			Name:       "Grünerator",
		},
		Startup: StartupConfig{
			SplashTimeout: Duration(3 * time.Second),
			Devtools:      devtoolsDefault,
		},
		DeepLink: DeepLinkConfig{
			Scheme:   "gruenerator",
			Register: true,
		},
		Menu: MenuConfig{
			DocsURL:     "https://gruenerator.de/",
			FeedbackURL: "https://gitlab.com/Netzbegruenung/gruenerator/-/issues",
		},
		Tray: TrayConfig{
			Enabled: true,
			Tooltip: "Grünerator",
		},
		Update: UpdateConfig{
			Source:      UpdateSourceManifest,
			Channel:     "stable",
			ManifestURL: "https://gruenerator.de/desktop/latest.json",
			Timeout:     Duration(30 * time.Second),
		},
		Instance: InstanceConfig{
			Enabled:        true,
			ForwardTimeout: Duration(5 * time.Second),
		},
		Autostart: AutostartConfig{
			Args: []string{"--minimized"},
		},
		API: APIConfig{
			Socket:  "shell.sock",
			Metrics: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Validate validates the shell configuration.
func (c *ShellConfig) Validate() error {
	if c.App.Identifier == "" {
		return fmt.Errorf("app identifier is required")
	}
	if !validScheme(c.DeepLink.Scheme) {
		return fmt.Errorf("deep_link scheme %q is not a valid URL scheme", c.DeepLink.Scheme)
	}
	if c.Startup.SplashTimeout <= 0 {
		return fmt.Errorf("startup splash_timeout must be positive")
	}
	for name, raw := range map[string]string{"docs_url": c.Menu.DocsURL, "feedback_url": c.Menu.FeedbackURL} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" {
			return fmt.Errorf("menu %s must be an absolute URL, got: %s", name, raw)
		}
	}

	switch c.Update.Source {
	case UpdateSourceManifest:
		if c.Update.ManifestURL == "" {
			return fmt.Errorf("update manifest_url is required for source %q", c.Update.Source)
		}
	case UpdateSourceGitHub:
		if c.Update.GitHubOwner == "" || c.Update.GitHubRepo == "" {
			return fmt.Errorf("update github_owner and github_repo are required for source %q", c.Update.Source)
		}
	case UpdateSourceNone, "":
	default:
		return fmt.Errorf("update source must be 'manifest', 'github' or 'none', got: %s", c.Update.Source)
	}
	if c.Update.Channel != "" && c.Update.Channel != "stable" && c.Update.Channel != "prerelease" {
		return fmt.Errorf("update channel must be 'stable' or 'prerelease', got: %s", c.Update.Channel)
	}
	if c.Update.Timeout < 0 {
		return fmt.Errorf("update timeout must be non-negative")
	}
	return nil
}

// DataDir returns the resolved data directory.
func (c *ShellConfig) DataDir() (string, error) {
	if c.App.DataDir != "" {
		return c.App.DataDir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, c.App.Identifier), nil
}

// SocketPath returns the control socket path resolved against the data dir.
func (c *ShellConfig) SocketPath() (string, error) {
	if filepath.IsAbs(c.API.Socket) {
		return c.API.Socket, nil
	}
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	name := c.API.Socket
	if name == "" {
		name = "shell.sock"
	}
	return filepath.Join(dir, name), nil
}

// validScheme reports whether s is an RFC 3986 scheme: a letter followed
// by letters, digits, '+', '-' or '.'.
func validScheme(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
