//go:build !linux && !windows

package deeplink

// On macOS the scheme is declared in the bundle's Info.plist.
type noopRegistrar struct{}

func newPlatformRegistrar(string) Registrar {
	return noopRegistrar{}
}

func (noopRegistrar) Register(string, string) error { return ErrNotSupported }
func (noopRegistrar) Unregister(string) error       { return nil }
