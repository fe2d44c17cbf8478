//go:build !linux && !darwin && !windows

package autostart

type noopManager struct{}

func newPlatformManager(Entry) Manager {
	return noopManager{}
}

func (noopManager) IsEnabled() (bool, error) { return false, nil }
func (noopManager) Enable() error            { return ErrNotSupported }
func (noopManager) Disable() error           { return nil }
