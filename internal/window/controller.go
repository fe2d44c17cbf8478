package window

import (
	"errors"
	"log/slog"

	"github.com/gruenerator/shell/internal/logging"
)

// Controller performs best-effort window actions. Absent windows and host
// failures are logged and swallowed so tray and menu actions can never
// take the shell down.
type Controller struct {
	registry Registry
	log      *slog.Logger
}

// NewController creates a controller over registry.
func NewController(registry Registry) *Controller {
	return &Controller{
		registry: registry,
		log:      logging.WithComponent("window"),
	}
}

// Lookup returns the named window if it currently exists.
func (c *Controller) Lookup(name string) (Handle, bool) {
	if c == nil || c.registry == nil {
		return nil, false
	}
	h, ok := c.registry.Lookup(name)
	if !ok || h == nil {
		return nil, false
	}
	return h, true
}

// ToggleVisibility hides the named window if it is visible, otherwise
// shows and focuses it.
func (c *Controller) ToggleVisibility(name string) {
	h, ok := c.Lookup(name)
	if !ok {
		c.log.Debug("toggle skipped, window absent", "window", name)
		return
	}

	visible, err := h.IsVisible()
	if err != nil {
		// Treat an unreadable state as hidden, matching how the shell
		// reacts to a window it cannot see.
		c.swallow(name, "is_visible", err)
		visible = false
	}

	if visible {
		c.swallow(name, "hide", h.Hide())
		return
	}
	c.swallow(name, "show", h.Show())
	c.swallow(name, "set_focus", h.SetFocus())
}

// Show shows the named window. Already visible counts as success.
func (c *Controller) Show(name string) {
	if h, ok := c.Lookup(name); ok {
		c.swallow(name, "show", h.Show())
	}
}

// ShowAndFocus shows the named window and requests focus.
func (c *Controller) ShowAndFocus(name string) {
	h, ok := c.Lookup(name)
	if !ok {
		c.log.Debug("focus skipped, window absent", "window", name)
		return
	}
	c.swallow(name, "show", h.Show())
	c.swallow(name, "set_focus", h.SetFocus())
}

// Close closes the named window. Already closed counts as success.
func (c *Controller) Close(name string) {
	if h, ok := c.Lookup(name); ok {
		c.swallow(name, "close", h.Close())
	}
}

// ToggleFullscreen flips the fullscreen state of the named window. If the
// current state cannot be read nothing is changed.
func (c *Controller) ToggleFullscreen(name string) {
	h, ok := c.Lookup(name)
	if !ok {
		return
	}
	fs, err := h.IsFullscreen()
	if err != nil {
		c.swallow(name, "is_fullscreen", err)
		return
	}
	c.swallow(name, "set_fullscreen", h.SetFullscreen(!fs))
}

// OpenDevtools opens the web inspector of the named window.
func (c *Controller) OpenDevtools(name string) {
	if h, ok := c.Lookup(name); ok {
		c.swallow(name, "open_devtools", h.OpenDevtools())
	}
}

func (c *Controller) swallow(name, op string, err error) {
	if err == nil || errors.Is(err, ErrClosed) {
		return
	}
	c.log.Debug("window operation failed", "error", &OpError{Window: name, Op: op, Err: err})
}
