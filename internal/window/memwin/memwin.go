// Package memwin is an in-process window host. The headless shell uses it
// in place of a real toolkit and tests use it to observe window state.
package memwin

import (
	"sync"

	"github.com/gruenerator/shell/internal/window"
)

// Registry is a concurrency-safe name → window map.
type Registry struct {
	mu      sync.RWMutex
	windows map[string]*Window
}

// NewRegistry creates a registry holding windows.
func NewRegistry(windows ...*Window) *Registry {
	r := &Registry{windows: make(map[string]*Window)}
	for _, w := range windows {
		r.Add(w)
	}
	return r
}

// Add registers w, replacing any window with the same name.
func (r *Registry) Add(w *Window) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.mu.Lock()
	w.registry = r
	w.mu.Unlock()
	r.windows[w.name] = w
}

// Lookup implements window.Registry.
func (r *Registry) Lookup(name string) (window.Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.windows[name]
	if !ok {
		return nil, false
	}
	return w, true
}

// Get returns the concrete window, for assertions.
func (r *Registry) Get(name string) (*Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.windows[name]
	return w, ok
}

func (r *Registry) remove(w *Window) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.windows[w.name] == w {
		delete(r.windows, w.name)
	}
}

// Window is an in-memory window.
type Window struct {
	mu         sync.Mutex
	name       string
	visible    bool
	fullscreen bool
	focused    bool
	closed     bool
	devtools   bool
	theme      window.Theme
	system     window.Theme
	registry   *Registry
	fail       map[string]error

	showCount int
}

// New creates a window with the given initial visibility.
func New(name string, visible bool) *Window {
	return &Window{name: name, visible: visible, system: window.ThemeLight}
}

// Fail makes op return err until cleared with a nil err. Op names match
// the window.Handle method names in snake case ("show", "set_theme", ...).
func (w *Window) Fail(op string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail == nil {
		w.fail = make(map[string]error)
	}
	if err == nil {
		delete(w.fail, op)
		return
	}
	w.fail[op] = err
}

// SetSystemTheme sets the theme reported when no explicit theme is set.
func (w *Window) SetSystemTheme(t window.Theme) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.system = t
}

// check must be called with w.mu held.
func (w *Window) check(op string) error {
	if w.closed {
		return window.ErrClosed
	}
	if err := w.fail[op]; err != nil {
		return err
	}
	return nil
}

func (w *Window) Name() string { return w.name }

func (w *Window) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check("show"); err != nil {
		return err
	}
	if !w.visible {
		w.showCount++
	}
	w.visible = true
	return nil
}

func (w *Window) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check("hide"); err != nil {
		return err
	}
	w.visible = false
	w.focused = false
	return nil
}

// Close closes the window and removes it from its registry. Closing twice
// is a no-op.
func (w *Window) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	if err := w.fail["close"]; err != nil {
		w.mu.Unlock()
		return err
	}
	w.closed = true
	w.visible = false
	w.focused = false
	reg := w.registry
	w.mu.Unlock()

	if reg != nil {
		reg.remove(w)
	}
	return nil
}

func (w *Window) IsVisible() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check("is_visible"); err != nil {
		return false, err
	}
	return w.visible, nil
}

func (w *Window) IsFullscreen() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check("is_fullscreen"); err != nil {
		return false, err
	}
	return w.fullscreen, nil
}

func (w *Window) SetFullscreen(fullscreen bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check("set_fullscreen"); err != nil {
		return err
	}
	w.fullscreen = fullscreen
	return nil
}

func (w *Window) SetFocus() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check("set_focus"); err != nil {
		return err
	}
	w.focused = true
	return nil
}

func (w *Window) SetTheme(t window.Theme) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check("set_theme"); err != nil {
		return err
	}
	w.theme = t
	return nil
}

func (w *Window) Theme() (window.Theme, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check("theme"); err != nil {
		return "", err
	}
	if w.theme == window.ThemeSystem {
		return w.system, nil
	}
	return w.theme, nil
}

func (w *Window) OpenDevtools() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check("open_devtools"); err != nil {
		return err
	}
	w.devtools = true
	return nil
}

// State is a snapshot of a window for assertions.
type State struct {
	Visible    bool
	Fullscreen bool
	Focused    bool
	Closed     bool
	Devtools   bool
	// ShowCount counts hidden → visible transitions.
	ShowCount int
}

// State returns a snapshot of the window.
func (w *Window) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return State{
		Visible:    w.visible,
		Fullscreen: w.fullscreen,
		Focused:    w.focused,
		Closed:     w.closed,
		Devtools:   w.devtools,
		ShowCount:  w.showCount,
	}
}
