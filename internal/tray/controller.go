package tray

import (
	"os"

	"github.com/gruenerator/shell/internal/logging"
	"github.com/gruenerator/shell/internal/window"
)

// Tray menu identifiers.
const (
	IDShowHide  = "tray_show_hide"
	IDSeparator = "tray_separator"
	IDQuit      = "tray_quit"
)

// Button is a mouse button on the tray icon.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// ButtonState is the phase of a click.
type ButtonState int

const (
	ButtonDown ButtonState = iota
	ButtonUp
)

// ClickEvent is one mouse event on the tray icon.
type ClickEvent struct {
	Button Button
	State  ButtonState
}

// Controller is the tray interaction state machine. Its two states,
// hidden and visible, are read from the main window every time rather
// than stored, so the tray can never disagree with the window.
type Controller struct {
	windows *window.Controller
	exit    func(code int)
	observe func(event string)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithEventObserver registers a callback invoked for every handled input
// with one of "click", "show_hide" or "quit".
func WithEventObserver(fn func(event string)) ControllerOption {
	return func(c *Controller) {
		c.observe = fn
	}
}

// NewController creates a controller. exit terminates the process; nil
// means os.Exit.
func NewController(windows *window.Controller, exit func(code int), opts ...ControllerOption) *Controller {
	if exit == nil {
		exit = os.Exit
	}
	c := &Controller{windows: windows, exit: exit}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleClick toggles the main window on a primary-button release and
// ignores every other input. It reports whether a toggle happened.
func (c *Controller) HandleClick(ev ClickEvent) bool {
	if ev.Button != ButtonLeft || ev.State != ButtonUp {
		return false
	}
	c.event("click")
	c.windows.ToggleVisibility(window.Main)
	return true
}

// HandleMenu handles a tray menu activation. Quit exits with status 0
// immediately; it is not a window close event and cannot be intercepted.
func (c *Controller) HandleMenu(id string) {
	switch id {
	case IDShowHide:
		c.event("show_hide")
		c.windows.ToggleVisibility(window.Main)
	case IDQuit:
		c.event("quit")
		logging.WithComponent("tray").Info("quit requested from tray")
		c.exit(0)
	}
}

func (c *Controller) event(name string) {
	if c.observe != nil {
		c.observe(name)
	}
}
