package updater

import (
	"fmt"

	"github.com/gruenerator/shell/internal/config"
)

// NewService returns the Service selected by cfg.Source.
func NewService(cfg config.UpdateConfig) (Service, error) {
	switch cfg.Source {
	case config.UpdateSourceManifest:
		return NewManifestService(cfg.ManifestURL), nil
	case config.UpdateSourceGitHub:
		return NewGitHubService(cfg.GitHubOwner, cfg.GitHubRepo, Channel(cfg.Channel)), nil
	case config.UpdateSourceNone, "":
		return Disabled, nil
	default:
		return nil, fmt.Errorf("unknown update source %q", cfg.Source)
	}
}
