package shell

import (
	"context"
	"errors"
	"os"

	"github.com/gruenerator/shell/internal/config"
	"github.com/gruenerator/shell/internal/deeplink"
	"github.com/gruenerator/shell/internal/instance"
	"github.com/gruenerator/shell/internal/logging"
)

// Launch holds what a primary process owns before the shell is built.
type Launch struct {
	// SocketPath is where the control API is served.
	SocketPath string
	// URLs are the deep links the process was launched with.
	URLs []string

	guard *instance.Guard
}

// Prepare runs the process-level launch steps: the single-instance guard
// and the scheme registration. primary is false when the launch was handed
// to an already running instance; the caller then exits 0 without creating
// any window.
func Prepare(ctx context.Context, cfg config.ShellConfig, args []string) (l *Launch, primary bool, err error) {
	log := logging.WithComponent("launch")

	socket, err := cfg.SocketPath()
	if err != nil {
		return nil, false, err
	}
	l = &Launch{
		SocketPath: socket,
		URLs:       deeplink.ExtractURLs(cfg.DeepLink.Scheme, args),
	}

	if cfg.Instance.Enabled {
		dir, err := cfg.DataDir()
		if err != nil {
			return nil, false, err
		}
		cwd, _ := os.Getwd()

		l.guard = instance.NewGuard(dir, cfg.App.Identifier, instance.NewSocketForwarder(socket), cfg.Instance.ForwardTimeout.Duration())
		outcome, err := l.guard.Claim(ctx, args, cwd)
		if outcome == instance.Secondary {
			return nil, false, nil
		}
		if err != nil {
			// Without the lock the process still starts; a second launch
			// just cannot find it.
			log.Warn("single-instance lock unavailable", "error", err)
		}
	}

	if cfg.DeepLink.Register {
		registerScheme(cfg)
	}
	return l, true, nil
}

// Release gives up the instance lock.
func (l *Launch) Release() {
	if l == nil || l.guard == nil {
		return
	}
	if err := l.guard.Release(); err != nil {
		logging.WithComponent("launch").Debug("releasing instance lock failed", "error", err)
	}
}

func registerScheme(cfg config.ShellConfig) {
	log := logging.WithComponent("launch")

	exe, err := os.Executable()
	if err != nil {
		log.Warn("cannot register deep-link scheme", "error", err)
		return
	}
	err = deeplink.NewRegistrar(cfg.App.Identifier).Register(cfg.DeepLink.Scheme, exe)
	switch {
	case errors.Is(err, deeplink.ErrNotSupported):
		log.Debug("scheme registration is handled by the app bundle", "scheme", cfg.DeepLink.Scheme)
	case err != nil:
		log.Warn("deep-link scheme registration failed", "scheme", cfg.DeepLink.Scheme, "error", err)
	default:
		log.Debug("registered deep-link scheme", "scheme", cfg.DeepLink.Scheme)
	}
}
