//go:build darwin

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

func newPlatformManager(e Entry) Manager {
	return &fileManager{
		path: func() (string, error) {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home dir: %w", err)
			}
			return filepath.Join(home, "Library", "LaunchAgents", e.ID+".plist"), nil
		},
		content: launchAgentPlist(e),
	}
}
