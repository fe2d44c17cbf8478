//go:build linux

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

func newPlatformManager(e Entry) Manager {
	return &fileManager{
		path: func() (string, error) {
			dir := os.Getenv("XDG_CONFIG_HOME")
			if dir == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return "", fmt.Errorf("resolve home dir: %w", err)
				}
				dir = filepath.Join(home, ".config")
			}
			return filepath.Join(dir, "autostart", e.ID+".desktop"), nil
		},
		content: desktopEntry(e),
	}
}
