//go:build linux

package deeplink

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gruenerator/shell/internal/logging"
)

// xdgRegistrar writes a desktop entry that claims x-scheme-handler/<scheme>.
type xdgRegistrar struct {
	appID string
}

func newPlatformRegistrar(appID string) Registrar {
	return &xdgRegistrar{appID: appID}
}

func applicationsDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "applications"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "applications"), nil
}

func (r *xdgRegistrar) entryName(scheme string) string {
	return r.appID + "-" + scheme + "-handler.desktop"
}

func desktopEntry(scheme, exe string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Name=Grünerator\n")
	fmt.Fprintf(&b, "Exec=%q %%u\n", exe)
	b.WriteString("NoDisplay=true\n")
	b.WriteString("Terminal=false\n")
	fmt.Fprintf(&b, "MimeType=x-scheme-handler/%s;\n", scheme)
	return b.String()
}

func (r *xdgRegistrar) Register(scheme, exe string) error {
	dir, err := applicationsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create applications dir: %w", err)
	}
	name := r.entryName(scheme)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(desktopEntry(scheme, exe)), 0644); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}

	// Without xdg-mime the entry is still picked up on the next database refresh.
	if path, err := exec.LookPath("xdg-mime"); err == nil {
		if out, err := exec.Command(path, "default", name, "x-scheme-handler/"+scheme).CombinedOutput(); err != nil {
			logging.WithComponent("deeplink").Warn("xdg-mime default failed",
				"error", err, "output", strings.TrimSpace(string(out)))
		}
	}
	return nil
}

func (r *xdgRegistrar) Unregister(scheme string) error {
	dir, err := applicationsDir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, r.entryName(scheme)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove desktop entry: %w", err)
	}
	return nil
}
