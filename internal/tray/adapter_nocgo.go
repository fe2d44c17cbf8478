//go:build darwin && !cgo

package tray

import "github.com/gruenerator/shell/internal/logging"

type noopMenuItem struct {
	clickCh chan struct{}
}

func (m *noopMenuItem) SetTitle(_ string)        {}
func (m *noopMenuItem) SetTooltip(_ string)      {}
func (m *noopMenuItem) Enable()                  {}
func (m *noopMenuItem) Disable()                 {}
func (m *noopMenuItem) Show()                    {}
func (m *noopMenuItem) Hide()                    {}
func (m *noopMenuItem) Clicked() <-chan struct{} { return m.clickCh }

// noopSystrayAdapter stands in when the macOS tray cannot be built.
type noopSystrayAdapter struct {
	quit chan struct{}
}

func (a *noopSystrayAdapter) Run(onReady func(), onExit func()) {
	logging.WithComponent("tray").Warn("system tray not available (built without cgo)")
	onReady()
	<-a.quit
	onExit()
}

func (a *noopSystrayAdapter) RunWithExternalLoop(onReady func(), onExit func()) (start, end func()) {
	start = func() {
		logging.WithComponent("tray").Warn("system tray not available (built without cgo)")
		onReady()
	}
	return start, onExit
}

func (a *noopSystrayAdapter) SetIcon(_ []byte)     {}
func (a *noopSystrayAdapter) SetTitle(_ string)    {}
func (a *noopSystrayAdapter) SetTooltip(_ string)  {}
func (a *noopSystrayAdapter) SetOnTapped(_ func()) {}
func (a *noopSystrayAdapter) AddMenuItem(_, _ string) MenuItem {
	return &noopMenuItem{clickCh: make(chan struct{})}
}
func (a *noopSystrayAdapter) AddSeparator() {}
func (a *noopSystrayAdapter) Quit() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

var defaultAdapter SystrayAdapter = &noopSystrayAdapter{quit: make(chan struct{})}
