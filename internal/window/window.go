// Package window defines the capability interfaces the shell core uses to
// reach platform windows, and the best-effort visibility controller built
// on them.
//
// The host platform layer owns every window. The core only looks windows
// up by logical name and must tolerate a window being absent or closed at
// any time.
package window

import (
	"errors"
	"fmt"
	"strings"
)

// Logical window names.
const (
	Splash = "splashscreen"
	Main   = "main"
)

// ErrClosed is returned by Handle operations on a window that has been closed.
var ErrClosed = errors.New("window closed")

// Theme is a window color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	// ThemeSystem follows the OS setting. It is only meaningful for SetTheme.
	ThemeSystem Theme = ""
)

// ParseTheme maps UI theme names to a Theme. Anything other than "dark"
// or "light" means follow the system.
func ParseTheme(s string) Theme {
	switch strings.ToLower(s) {
	case "dark":
		return ThemeDark
	case "light":
		return ThemeLight
	default:
		return ThemeSystem
	}
}

// String returns the name reported to the UI. An unknown or system theme
// reports as light.
func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Handle is a non-owning reference to a platform window.
type Handle interface {
	Name() string
	Show() error
	Hide() error
	Close() error
	IsVisible() (bool, error)
	IsFullscreen() (bool, error)
	SetFullscreen(fullscreen bool) error
	SetFocus() error
	SetTheme(theme Theme) error
	Theme() (Theme, error)
	OpenDevtools() error
}

// Registry looks up live windows by logical name.
type Registry interface {
	Lookup(name string) (Handle, bool)
}

// RegistryFunc adapts a function to Registry.
type RegistryFunc func(name string) (Handle, bool)

// Lookup implements Registry.
func (f RegistryFunc) Lookup(name string) (Handle, bool) {
	return f(name)
}

// OpError records a failed host operation on a named window.
type OpError struct {
	Window string
	Op     string
	Err    error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("window %s: %s: %v", e.Window, e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
