// Package main contains the Wails host of the Grünerator desktop shell.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/gruenerator/shell/internal/config"
	"github.com/gruenerator/shell/internal/instance"
	"github.com/gruenerator/shell/internal/logging"
	"github.com/gruenerator/shell/internal/notify"
	"github.com/gruenerator/shell/internal/shell"
	"github.com/gruenerator/shell/internal/tray"
	"github.com/gruenerator/shell/internal/updater"
	"github.com/gruenerator/shell/internal/window"
)

// App binds the shell operations to the frontend. Method names follow the
// commands the web UI invokes.
type App struct {
	shell  *shell.Shell
	launch *shell.Launch
	main   *webviewWindow
	log    *slog.Logger

	tray      *tray.Tray
	trayStart func()
	trayEnd   func()
	exit      func(code int)

	ctx context.Context
}

// hostDeps replaces the native pieces of the host.
type hostDeps struct {
	windows window.Registry
	tray    tray.SystrayAdapter
}

// NewApp builds the shell around the Wails window.
func NewApp(cfg config.ShellConfig, launch *shell.Launch, minimized bool) (*App, error) {
	return newApp(cfg, launch, minimized, hostDeps{})
}

func newApp(cfg config.ShellConfig, launch *shell.Launch, minimized bool, deps hostDeps) (*App, error) {
	a := &App{
		launch: launch,
		main:   newWebviewWindow(window.Main),
		log:    logging.WithComponent("desktop"),
		exit:   os.Exit,
	}
	if deps.windows == nil {
		deps.windows = registry{main: a.main}
	}

	// A hidden window can only be brought back through the tray icon.
	if minimized && !cfg.Tray.Enabled {
		a.log.Warn("tray disabled, starting with the main window shown")
		minimized = false
	}

	sh, err := shell.New(shell.Options{
		Config:    cfg,
		Windows:   deps.windows,
		Emitter:   notify.Func(a.emit),
		Minimized: minimized,
		Exit:      a.exitNow,
		OnUpdateAvailable: func(updater.Result) {
			if a.tray != nil {
				a.tray.SetStatus(tray.StatusUpdateAvailable)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	a.shell = sh

	if cfg.Tray.Enabled {
		tc := tray.Config{
			Tooltip:    cfg.Tray.Tooltip,
			Labels:     tray.DefaultLabels(),
			Controller: sh.TrayController(),
		}
		if deps.tray != nil {
			a.tray = tray.NewWithAdapter(tc, deps.tray)
		} else {
			a.tray = tray.New(tc)
		}
		a.trayStart, a.trayEnd = a.tray.Attach()
	}
	return a, nil
}

// emit delivers a notification on the Wails event bus.
func (a *App) emit(name string, payload any) {
	if a.ctx == nil {
		return
	}
	if payload == nil {
		runtime.EventsEmit(a.ctx, name)
		return
	}
	runtime.EventsEmit(a.ctx, name, payload)
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.main.attach(ctx)
	a.run(ctx)
}

// run starts the tray and the shell core once the Wails loop is up.
func (a *App) run(ctx context.Context) {
	if a.trayStart != nil {
		a.trayStart()
	}

	socket := ""
	if a.launch != nil {
		socket = a.launch.SocketPath
	}
	if err := a.shell.Start(ctx, socket); err != nil {
		a.log.Error("failed to start shell", "error", err)
		return
	}
	a.log.Info("desktop shell started", "tray", a.tray != nil)
}

// domReady routes the deep links the process was launched with once the
// frontend can receive them.
func (a *App) domReady(context.Context) {
	if a.launch != nil && len(a.launch.URLs) > 0 {
		a.shell.OpenURLs(a.launch.URLs)
	}
}

// openURL receives the deep links macOS delivers to the running app. They
// are handled like the arguments of a second launch on other platforms.
func (a *App) openURL(rawURL string) {
	a.shell.HandleActivation(instance.NewActivation([]string{rawURL}, ""))
}

func (a *App) shutdown(ctx context.Context) {
	if a.trayEnd != nil {
		a.trayEnd()
	}
	if err := a.shell.Stop(ctx); err != nil {
		a.log.Warn("shell stop", "error", err)
	}
	a.launch.Release()
}

// exitNow is the tray quit entry: the instance lock is released and the
// process ends without the Wails shutdown sequence.
func (a *App) exitNow(code int) {
	a.launch.Release()
	a.exit(code)
}

// quit is the application menu quit entry, which closes the window
// normally.
func (a *App) quit() {
	if a.ctx != nil {
		runtime.Quit(a.ctx)
	}
}

func (a *App) dispatchMenu(id string) {
	a.shell.DispatchMenu(id)
}

// CloseSplashscreen signals that the UI has loaded.
func (a *App) CloseSplashscreen() {
	a.shell.CloseSplashscreen()
}

// GetAutostartEnabled reports whether the app launches at login.
func (a *App) GetAutostartEnabled() (bool, error) {
	return a.shell.GetAutostartEnabled()
}

// SetAutostartEnabled turns launch at login on or off.
func (a *App) SetAutostartEnabled(enabled bool) error {
	return a.shell.SetAutostartEnabled(enabled)
}

// GetSystemTheme returns "dark" or "light".
func (a *App) GetSystemTheme() string {
	return a.shell.GetSystemTheme()
}

// SetWindowTheme forces "dark" or "light"; anything else follows the OS.
func (a *App) SetWindowTheme(theme string) error {
	return a.shell.SetWindowTheme(theme)
}

// ReportSystemTheme is called by the frontend when the OS color scheme
// changes. The webview sees the change before the native side does.
func (a *App) ReportSystemTheme(theme string) {
	t := window.ParseTheme(theme)
	if t == window.ThemeSystem {
		t = window.ThemeLight
	}
	a.main.setSystemTheme(t)
	a.shell.ThemeChanged(t)
}

// CheckForUpdate asks the update feed for a newer build.
func (a *App) CheckForUpdate() (updater.Result, error) {
	return a.shell.CheckForUpdate(a.ctx)
}

// GetAppVersion returns the running version.
func (a *App) GetAppVersion() string {
	return a.shell.GetAppVersion()
}
