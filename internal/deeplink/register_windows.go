//go:build windows

package deeplink

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// registryRegistrar writes HKCU\Software\Classes\<scheme>.
type registryRegistrar struct {
	appID string
}

func newPlatformRegistrar(appID string) Registrar {
	return &registryRegistrar{appID: appID}
}

func (r *registryRegistrar) Register(scheme, exe string) error {
	root, _, err := registry.CreateKey(registry.CURRENT_USER, `Software\Classes\`+scheme, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create scheme key: %w", err)
	}
	defer root.Close()

	if err := root.SetStringValue("", "URL:"+scheme); err != nil {
		return fmt.Errorf("set scheme description: %w", err)
	}
	if err := root.SetStringValue("URL Protocol", ""); err != nil {
		return fmt.Errorf("set URL Protocol: %w", err)
	}

	cmd, _, err := registry.CreateKey(registry.CURRENT_USER, `Software\Classes\`+scheme+`\shell\open\command`, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create command key: %w", err)
	}
	defer cmd.Close()

	if err := cmd.SetStringValue("", fmt.Sprintf(`"%s" "%%1"`, exe)); err != nil {
		return fmt.Errorf("set open command: %w", err)
	}
	return nil
}

func (r *registryRegistrar) Unregister(scheme string) error {
	base := `Software\Classes\` + scheme
	for _, path := range []string{base + `\shell\open\command`, base + `\shell\open`, base + `\shell`, base} {
		if err := registry.DeleteKey(registry.CURRENT_USER, path); err != nil && !errors.Is(err, registry.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", path, err)
		}
	}
	return nil
}
