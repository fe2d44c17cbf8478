package main

import (
	"context"
	"errors"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/gruenerator/shell/internal/window"
)

var errDevtoolsUnsupported = errors.New("webview inspector can only be opened at startup")

// webviewWindow is the Wails application window. Wails reports neither
// visibility nor the OS theme, so both are tracked here: visibility from
// the calls made through this handle, the OS theme from the frontend.
type webviewWindow struct {
	name string

	mu      sync.Mutex
	ctx     context.Context
	visible bool
	closed  bool
	theme   window.Theme
	system  window.Theme
}

func newWebviewWindow(name string) *webviewWindow {
	return &webviewWindow{name: name, system: window.ThemeLight}
}

// attach hands over the runtime context Wails passes to OnStartup.
func (w *webviewWindow) attach(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctx = ctx
}

// runtimeCtx returns the context for runtime calls.
func (w *webviewWindow) runtimeCtx() (context.Context, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, window.ErrClosed
	}
	if w.ctx == nil {
		return nil, errors.New("webview not started")
	}
	return w.ctx, nil
}

func (w *webviewWindow) Name() string { return w.name }

func (w *webviewWindow) Show() error {
	ctx, err := w.runtimeCtx()
	if err != nil {
		return err
	}
	runtime.WindowShow(ctx)
	w.setVisible(true)
	return nil
}

func (w *webviewWindow) Hide() error {
	ctx, err := w.runtimeCtx()
	if err != nil {
		return err
	}
	runtime.WindowHide(ctx)
	w.setVisible(false)
	return nil
}

func (w *webviewWindow) Close() error {
	ctx, err := w.runtimeCtx()
	if err != nil {
		return nil
	}
	w.mu.Lock()
	w.closed = true
	w.visible = false
	w.mu.Unlock()
	runtime.Quit(ctx)
	return nil
}

func (w *webviewWindow) IsVisible() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false, window.ErrClosed
	}
	return w.visible, nil
}

func (w *webviewWindow) IsFullscreen() (bool, error) {
	ctx, err := w.runtimeCtx()
	if err != nil {
		return false, err
	}
	return runtime.WindowIsFullscreen(ctx), nil
}

func (w *webviewWindow) SetFullscreen(fullscreen bool) error {
	ctx, err := w.runtimeCtx()
	if err != nil {
		return err
	}
	if fullscreen {
		runtime.WindowFullscreen(ctx)
	} else {
		runtime.WindowUnfullscreen(ctx)
	}
	return nil
}

// SetFocus raises the window. Wails has no separate focus call; showing
// an unminimised window brings it to front.
func (w *webviewWindow) SetFocus() error {
	ctx, err := w.runtimeCtx()
	if err != nil {
		return err
	}
	runtime.WindowUnminimise(ctx)
	runtime.WindowShow(ctx)
	w.setVisible(true)
	return nil
}

func (w *webviewWindow) SetTheme(t window.Theme) error {
	ctx, err := w.runtimeCtx()
	if err != nil {
		return err
	}
	switch t {
	case window.ThemeDark:
		runtime.WindowSetDarkTheme(ctx)
	case window.ThemeLight:
		runtime.WindowSetLightTheme(ctx)
	default:
		runtime.WindowSetSystemDefaultTheme(ctx)
	}
	w.mu.Lock()
	w.theme = t
	w.mu.Unlock()
	return nil
}

func (w *webviewWindow) Theme() (window.Theme, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return "", window.ErrClosed
	}
	if w.theme == window.ThemeSystem {
		return w.system, nil
	}
	return w.theme, nil
}

func (w *webviewWindow) OpenDevtools() error {
	return errDevtoolsUnsupported
}

// setSystemTheme records the OS theme reported by the frontend.
func (w *webviewWindow) setSystemTheme(t window.Theme) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.system = t
}

func (w *webviewWindow) setVisible(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = v
}

// registry holds the single Wails window. The splash screen is rendered by
// the frontend inside it, so there is no separate splash handle.
type registry struct {
	main *webviewWindow
}

func (r registry) Lookup(name string) (window.Handle, bool) {
	if name != r.main.name {
		return nil, false
	}
	r.main.mu.Lock()
	closed := r.main.closed
	r.main.mu.Unlock()
	if closed {
		return nil, false
	}
	return r.main, true
}
