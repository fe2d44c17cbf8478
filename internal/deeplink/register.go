package deeplink

import (
	"errors"
)

// Registrar installs the OS handler for a URL scheme.
type Registrar interface {
	// Register makes the OS launch exe with the URL as its last argument.
	Register(scheme, exe string) error
	// Unregister removes the handler. Removing a missing handler is not an error.
	Unregister(scheme string) error
}

// ErrNotSupported is returned where scheme registration is done by the
// application bundle instead of at runtime.
var ErrNotSupported = errors.New("scheme registration not supported on this platform")

// NewRegistrar returns the registrar for the current platform. appID names
// the handler entry where the platform needs one.
func NewRegistrar(appID string) Registrar {
	return newPlatformRegistrar(appID)
}
