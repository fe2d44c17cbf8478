// Package shell wires the lifecycle and routing components of the desktop
// shell and exposes the request/response operations the UI calls.
package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/gruenerator/shell/internal/api"
	"github.com/gruenerator/shell/internal/autostart"
	"github.com/gruenerator/shell/internal/config"
	"github.com/gruenerator/shell/internal/deeplink"
	"github.com/gruenerator/shell/internal/logging"
	"github.com/gruenerator/shell/internal/menu"
	"github.com/gruenerator/shell/internal/metrics"
	"github.com/gruenerator/shell/internal/notify"
	"github.com/gruenerator/shell/internal/startup"
	"github.com/gruenerator/shell/internal/tray"
	"github.com/gruenerator/shell/internal/updater"
	"github.com/gruenerator/shell/internal/version"
	"github.com/gruenerator/shell/internal/window"
)

// ErrMainWindowAbsent is returned by theme operations when there is no
// main window to apply them to.
var ErrMainWindowAbsent = errors.New("main window not available")

var _ api.Backend = (*Shell)(nil)

// Options holds what the host supplies to the shell. Only Windows is
// required; everything else has a default derived from Config.
type Options struct {
	Config  config.ShellConfig
	Windows window.Registry
	// Emitter delivers notifications through the host, e.g. the webview
	// event bus. Notifications also go to the websocket hub.
	Emitter   notify.Emitter
	Autostart autostart.Manager
	Updates   updater.Service
	// Exit terminates the process for the tray quit entry. Nil means os.Exit.
	Exit func(code int)
	// Version overrides the running version reported to the UI and used
	// for update checks.
	Version string
	// Minimized starts with main hidden, as for a launch at login.
	Minimized bool
	// OnUpdateAvailable is called after a check that found an update.
	OnUpdateAvailable func(updater.Result)
}

// Shell is the composition root.
type Shell struct {
	cfg     config.ShellConfig
	version string

	windows   *window.Controller
	hub       *notify.Hub
	emitter   notify.Emitter
	sequencer *startup.Sequencer
	menuTree  menu.Tree
	menu      *menu.Router
	tray      *tray.Controller
	deeplinks *deeplink.Router
	updates   *updater.Checker
	autostart autostart.Manager
	metrics   *metrics.Metrics
	collector *metrics.Collector
	onUpdate  func(updater.Result)

	log *slog.Logger

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	apiServer *api.Server
	wg        sync.WaitGroup
}

// New wires a shell.
func New(opts Options) (*Shell, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if opts.Windows == nil {
		return nil, errors.New("window registry is required")
	}

	s := &Shell{
		cfg:      cfg,
		version:  opts.Version,
		windows:  window.NewController(opts.Windows),
		hub:      notify.NewHub(),
		menuTree: menu.DefaultTree(cfg.App.Name),
		onUpdate: opts.OnUpdateAvailable,
		log:      logging.WithComponent("shell"),
	}
	if s.version == "" {
		s.version = version.Short()
	}

	if cfg.API.Metrics {
		s.metrics = metrics.New()
		s.collector = metrics.NewCollector(s.metrics, s.hub.Clients)
	}

	s.emitter = s.collector.Emitter(notify.Fanout{opts.Emitter, s.hub})

	s.sequencer = startup.New(s.windows, cfg.Startup.SplashTimeout.Duration(),
		startup.WithDevtools(cfg.Startup.Devtools),
		startup.WithHidden(opts.Minimized || cfg.Startup.StartMinimized),
		startup.WithObserver(func(t startup.Trigger) { s.collector.RecordStartup(string(t)) }),
	)

	s.menu = menu.NewRouter(s.windows, s.emitter, menu.Links{
		Docs:     cfg.Menu.DocsURL,
		Feedback: cfg.Menu.FeedbackURL,
	})

	s.tray = tray.NewController(s.windows, opts.Exit, tray.WithEventObserver(s.collector.RecordTrayEvent))

	s.deeplinks = deeplink.NewRouter(cfg.DeepLink.Scheme, s.emitter, deeplink.WithObserver(s.collector.RecordDeepLink))

	svc := opts.Updates
	if svc == nil {
		var err error
		if svc, err = updater.NewService(cfg.Update); err != nil {
			return nil, err
		}
	}
	s.updates = updater.NewChecker(svc, s.version, updater.WithTimeout(cfg.Update.Timeout.Duration()))

	s.autostart = opts.Autostart
	if s.autostart == nil {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolve executable: %w", err)
		}
		s.autostart = autostart.New(autostart.Entry{
			ID:   cfg.App.Identifier,
			Name: cfg.App.Name,
			Exe:  exe,
			Args: cfg.Autostart.Args,
		})
	}

	return s, nil
}

// Start launches the startup sequencer and the notification hub. When
// socketPath is not empty the control API is served there.
func (s *Shell) Start(ctx context.Context, socketPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)

	if socketPath != "" {
		srv, err := api.Listen(socketPath, s.Handler())
		if err != nil {
			cancel()
			return err
		}
		s.apiServer = srv
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := srv.Serve(); err != nil {
				s.log.Error("control API error", "error", err)
			}
		}()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.hub.Run()
	}()

	if s.collector != nil {
		s.collector.Start()
	}

	s.sequencer.Start(ctx)

	s.cancel = cancel
	s.running = true
	s.log.Info("shell started", "version", s.version, "splash_timeout", s.sequencer.Timeout())
	return nil
}

// Stop stops background work and the control API.
func (s *Shell) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cancel()
	srv := s.apiServer
	s.apiServer = nil
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}
	s.hub.Close()
	if s.collector != nil {
		s.collector.Stop()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}

	s.log.Info("shell stopped")
	return err
}

// Handler returns the control API handler.
func (s *Shell) Handler() http.Handler {
	cfg := api.Config{
		Backend: s,
		Hub:     s.hub,
		Token:   s.cfg.API.Token,
	}
	if s.metrics != nil {
		cfg.Metrics = s.metrics.Handler()
	}
	return api.New(cfg).Handler()
}

// Windows returns the window controller.
func (s *Shell) Windows() *window.Controller {
	return s.windows
}

// Emitter returns the emitter all shell notifications go through.
func (s *Shell) Emitter() notify.Emitter {
	return s.emitter
}

// Hub returns the websocket notification hub.
func (s *Shell) Hub() *notify.Hub {
	return s.hub
}

// MenuTree returns the application menu for the host to render.
func (s *Shell) MenuTree() menu.Tree {
	return s.menuTree
}

// TrayController returns the controller tray input is fed into.
func (s *Shell) TrayController() *tray.Controller {
	return s.tray
}

// Config returns the configuration the shell was built with.
func (s *Shell) Config() config.ShellConfig {
	return s.cfg
}

// ApplyConfig applies the settings that can change at runtime.
func (s *Shell) ApplyConfig(cfg config.ShellConfig) {
	if cfg.Logging.Level != "" {
		if err := logging.SetLevel(cfg.Logging.Level); err != nil {
			s.log.Warn("ignoring log level from config", "error", err)
			return
		}
	}
	s.log.Info("configuration reloaded", "log_level", cfg.Logging.Level)
}
