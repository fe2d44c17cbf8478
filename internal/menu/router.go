package menu

import (
	"github.com/gruenerator/shell/internal/notify"
	"github.com/gruenerator/shell/internal/window"
)

// Zoom directions carried by menu-zoom.
const (
	ZoomIn    = "in"
	ZoomOut   = "out"
	ZoomReset = "reset"
)

// Action classifies what a dispatch did.
type Action int

const (
	ActionIgnored Action = iota
	ActionNotify
	ActionWindow
	ActionHost
)

func (a Action) String() string {
	switch a {
	case ActionNotify:
		return "notify"
	case ActionWindow:
		return "window"
	case ActionHost:
		return "host"
	default:
		return "ignored"
	}
}

// Result describes one dispatch.
type Result struct {
	Action       Action
	Notification string
	Payload      any
}

// Links are the help menu targets.
type Links struct {
	Docs     string
	Feedback string
}

// Router maps menu identifiers to window actions or UI notifications. It
// keeps no state between dispatches.
type Router struct {
	windows *window.Controller
	emitter notify.Emitter
	links   Links
}

// NewRouter creates a router.
func NewRouter(windows *window.Controller, emitter notify.Emitter, links Links) *Router {
	if emitter == nil {
		emitter = notify.Discard
	}
	return &Router{windows: windows, emitter: emitter, links: links}
}

// Dispatch handles the activation of the item with identifier id.
// Unknown identifiers are ignored.
func (r *Router) Dispatch(id string) Result {
	switch id {
	case IDNew:
		return r.notify(notify.MenuNew, nil)
	case IDSettings:
		return r.notify(notify.MenuSettings, nil)
	case IDReload:
		return r.notify(notify.MenuReload, nil)
	case IDAbout:
		return r.notify(notify.MenuAbout, nil)
	case IDCheckUpdates:
		return r.notify(notify.MenuCheckUpdates, nil)
	case IDFullscreen:
		r.windows.ToggleFullscreen(window.Main)
		return Result{Action: ActionWindow}
	case IDZoomIn:
		return r.notify(notify.MenuZoom, ZoomIn)
	case IDZoomOut:
		return r.notify(notify.MenuZoom, ZoomOut)
	case IDZoomReset:
		return r.notify(notify.MenuZoom, ZoomReset)
	case IDDocs:
		return r.notify(notify.MenuOpenURL, r.links.Docs)
	case IDFeedback:
		return r.notify(notify.MenuOpenURL, r.links.Feedback)
	case "undo", "redo", "cut", "copy", "paste", "select_all", "quit":
		return Result{Action: ActionHost}
	default:
		return Result{Action: ActionIgnored}
	}
}

func (r *Router) notify(name string, payload any) Result {
	r.emitter.Emit(name, payload)
	return Result{Action: ActionNotify, Notification: name, Payload: payload}
}
