//go:build linux || darwin

package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// fileManager keeps the login item as a single file.
type fileManager struct {
	path    func() (string, error)
	content string
}

func (m *fileManager) IsEnabled() (bool, error) {
	p, err := m.path()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat autostart entry: %w", err)
	}
	return true, nil
}

func (m *fileManager) Enable() error {
	p, err := m.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	if err := os.WriteFile(p, []byte(m.content), 0644); err != nil {
		return fmt.Errorf("write autostart entry: %w", err)
	}
	return nil
}

func (m *fileManager) Disable() error {
	p, err := m.path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove autostart entry: %w", err)
	}
	return nil
}
