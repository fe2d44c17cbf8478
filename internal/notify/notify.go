// Package notify carries named notifications from the shell core to the
// web UI.
package notify

import (
	"sync"
)

// Notification names consumed by the UI layer.
const (
	MenuNew            = "menu-new"
	MenuSettings       = "menu-settings"
	MenuReload         = "menu-reload"
	MenuZoom           = "menu-zoom"
	MenuOpenURL        = "menu-open-url"
	MenuAbout          = "menu-about"
	MenuCheckUpdates   = "menu-check-updates"
	DeepLinkAuth       = "deep-link-auth"
	SystemThemeChanged = "system-theme-changed"
)

// Names lists every notification the shell emits.
var Names = []string{
	MenuNew, MenuSettings, MenuReload, MenuZoom, MenuOpenURL,
	MenuAbout, MenuCheckUpdates, DeepLinkAuth, SystemThemeChanged,
}

// Emitter delivers a notification. Payload is nil for notifications that
// carry none. Delivery is fire-and-forget; implementations must not block
// the caller for long.
type Emitter interface {
	Emit(name string, payload any)
}

// Func adapts a function to Emitter.
type Func func(name string, payload any)

// Emit implements Emitter.
func (f Func) Emit(name string, payload any) {
	f(name, payload)
}

// Discard drops every notification.
var Discard Emitter = Func(func(string, any) {})

// Fanout emits to several emitters in order.
type Fanout []Emitter

// Emit implements Emitter.
func (f Fanout) Emit(name string, payload any) {
	for _, e := range f {
		if e != nil {
			e.Emit(name, payload)
		}
	}
}

// Notification is one emitted notification.
type Notification struct {
	Name    string
	Payload any
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

// Emit implements Emitter.
func (r *Recorder) Emit(name string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Notification{Name: name, Payload: payload})
}

// Notifications returns a copy of what was recorded.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
