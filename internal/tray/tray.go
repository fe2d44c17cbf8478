// Package tray provides the system tray icon of the desktop shell.
package tray

import (
	"context"
	"sync"
)

// Status selects the tray icon.
type Status int

const (
	StatusIdle Status = iota
	StatusUpdateAvailable
)

// MenuItem is a tray menu entry.
type MenuItem interface {
	SetTitle(title string)
	SetTooltip(tooltip string)
	Enable()
	Disable()
	Show()
	Hide()
	Clicked() <-chan struct{}
}

// SystrayAdapter abstracts the systray package so the tray can be tested
// without a desktop session.
type SystrayAdapter interface {
	Run(onReady func(), onExit func())
	// RunWithExternalLoop registers the tray with an event loop owned by
	// another toolkit. That toolkit calls start once its loop runs and end
	// before it stops.
	RunWithExternalLoop(onReady func(), onExit func()) (start, end func())
	SetIcon(iconBytes []byte)
	SetTitle(title string)
	SetTooltip(tooltip string)
	// SetOnTapped registers the handler for a primary click on the icon.
	SetOnTapped(fn func())
	AddMenuItem(title string, tooltip string) MenuItem
	AddSeparator()
	Quit()
}

// Labels are the tray menu texts.
type Labels struct {
	ShowHide  string
	Separator string
	Quit      string
}

// DefaultLabels returns the German tray labels.
func DefaultLabels() Labels {
	return Labels{
		ShowHide:  "Anzeigen/Verbergen",
		Separator: "─────────────",
		Quit:      "Beenden",
	}
}

// Config holds tray configuration.
type Config struct {
	Title      string
	Tooltip    string
	Labels     Labels
	Controller *Controller
}

// Tray owns the tray icon and forwards its input to a Controller.
type Tray struct {
	cfg     Config
	adapter SystrayAdapter

	mu     sync.Mutex
	status Status
	stop   chan struct{}
	once   sync.Once
}

// New creates a tray on the platform systray.
func New(cfg Config) *Tray {
	return NewWithAdapter(cfg, defaultAdapter)
}

// NewWithAdapter creates a tray with a custom adapter.
func NewWithAdapter(cfg Config, adapter SystrayAdapter) *Tray {
	if cfg.Labels == (Labels{}) {
		cfg.Labels = DefaultLabels()
	}
	return &Tray{
		cfg:     cfg,
		adapter: adapter,
		status:  StatusIdle,
		stop:    make(chan struct{}),
	}
}

// Run shows the tray icon and blocks until Quit or ctx is done.
func (t *Tray) Run(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
			t.Quit()
		case <-t.stop:
		}
	}()
	t.adapter.Run(t.onReady, t.onExit)
}

// Attach hooks the tray into an event loop run by a webview toolkit
// instead of blocking in Run. start builds the icon and menu, end removes
// them.
func (t *Tray) Attach() (start, end func()) {
	start, stop := t.adapter.RunWithExternalLoop(t.onReady, t.onExit)
	return start, func() {
		t.once.Do(func() { close(t.stop) })
		stop()
	}
}

// SetStatus updates the tray icon.
func (t *Tray) SetStatus(status Status) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
	t.updateIcon()
}

// Status returns the current icon status.
func (t *Tray) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// SetTooltip updates the tray tooltip.
func (t *Tray) SetTooltip(tooltip string) {
	t.adapter.SetTooltip(tooltip)
}

// Quit removes the tray icon. It does not exit the process.
func (t *Tray) Quit() {
	t.once.Do(func() { close(t.stop) })
	t.adapter.Quit()
}

func (t *Tray) onReady() {
	if t.cfg.Title != "" {
		t.adapter.SetTitle(t.cfg.Title)
	}
	t.adapter.SetTooltip(t.cfg.Tooltip)
	t.updateIcon()

	ctrl := t.cfg.Controller
	t.adapter.SetOnTapped(func() {
		if ctrl != nil {
			ctrl.HandleClick(ClickEvent{Button: ButtonLeft, State: ButtonUp})
		}
	})

	showHide := t.adapter.AddMenuItem(t.cfg.Labels.ShowHide, "")
	sep := t.adapter.AddMenuItem(t.cfg.Labels.Separator, "")
	sep.Disable()
	quit := t.adapter.AddMenuItem(t.cfg.Labels.Quit, "")

	go func() {
		for {
			var id string
			select {
			case <-showHide.Clicked():
				id = IDShowHide
			case <-sep.Clicked():
				id = IDSeparator
			case <-quit.Clicked():
				id = IDQuit
			case <-t.stop:
				return
			}
			if ctrl != nil {
				ctrl.HandleMenu(id)
			}
		}
	}()
}

func (t *Tray) onExit() {
	t.once.Do(func() { close(t.stop) })
}

func (t *Tray) updateIcon() {
	var icon []byte
	switch t.Status() {
	case StatusUpdateAvailable:
		icon = iconUpdate
	default:
		icon = iconIdle
	}
	t.adapter.SetIcon(icon)
}
