// Package deeplink routes custom-scheme URLs handed to the application by
// the operating system.
package deeplink

import (
	"strings"

	"github.com/gruenerator/shell/internal/logging"
	"github.com/gruenerator/shell/internal/notify"
)

// CallbackPath is the authentication callback path under the scheme.
const CallbackPath = "auth/callback"

// CallbackPrefix returns the prefix a URL must carry to be forwarded.
func CallbackPrefix(scheme string) string {
	return scheme + "://" + CallbackPath
}

// Router forwards authentication callback URLs to the UI as deep-link-auth
// notifications. Everything else is dropped.
type Router struct {
	prefix  string
	emitter notify.Emitter
	observe func(forwarded bool)
}

// Option configures a Router.
type Option func(*Router)

// WithObserver registers a callback invoked once per routed URL.
func WithObserver(fn func(forwarded bool)) Option {
	return func(r *Router) {
		r.observe = fn
	}
}

// NewRouter creates a router for scheme.
func NewRouter(scheme string, emitter notify.Emitter, opts ...Option) *Router {
	if emitter == nil {
		emitter = notify.Discard
	}
	r := &Router{prefix: CallbackPrefix(scheme), emitter: emitter}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle routes urls in order and returns how many were forwarded. The
// URL string is forwarded exactly as received; the match is a plain,
// case-sensitive prefix test.
func (r *Router) Handle(urls []string) int {
	forwarded := 0
	for _, u := range urls {
		ok := strings.HasPrefix(u, r.prefix)
		if ok {
			r.emitter.Emit(notify.DeepLinkAuth, u)
			forwarded++
		} else {
			logging.WithComponent("deeplink").Debug("dropping deep link", "url", u)
		}
		if r.observe != nil {
			r.observe(ok)
		}
	}
	return forwarded
}

// ExtractURLs returns the arguments that are URLs of scheme, in order.
// Linux and Windows start a new process with the link as an argument.
func ExtractURLs(scheme string, args []string) []string {
	var urls []string
	lead := strings.ToLower(scheme) + ":"
	for _, a := range args {
		if len(a) > len(lead) && strings.EqualFold(a[:len(lead)], lead) {
			urls = append(urls, a)
		}
	}
	return urls
}
