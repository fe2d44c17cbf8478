package shell

import (
	"context"
	"fmt"
	"time"

	"github.com/gruenerator/shell/internal/deeplink"
	"github.com/gruenerator/shell/internal/instance"
	"github.com/gruenerator/shell/internal/menu"
	"github.com/gruenerator/shell/internal/notify"
	"github.com/gruenerator/shell/internal/tray"
	"github.com/gruenerator/shell/internal/updater"
	"github.com/gruenerator/shell/internal/window"
)

// CloseSplashscreen is the UI's application-ready signal.
func (s *Shell) CloseSplashscreen() {
	s.sequencer.Ready()
}

// GetAutostartEnabled reports whether the app launches at login.
func (s *Shell) GetAutostartEnabled() (bool, error) {
	enabled, err := s.autostart.IsEnabled()
	if err != nil {
		return false, fmt.Errorf("query autostart: %w", err)
	}
	return enabled, nil
}

// SetAutostartEnabled turns launch at login on or off.
func (s *Shell) SetAutostartEnabled(enabled bool) error {
	var err error
	if enabled {
		err = s.autostart.Enable()
	} else {
		err = s.autostart.Disable()
	}
	if err != nil {
		return fmt.Errorf("set autostart: %w", err)
	}
	s.log.Info("autostart changed", "enabled", enabled)
	return nil
}

// GetSystemTheme returns "dark" or "light" for the main window. Anything
// unknown, including an absent window, reports as light.
func (s *Shell) GetSystemTheme() string {
	h, ok := s.windows.Lookup(window.Main)
	if !ok {
		return window.ThemeLight.String()
	}
	t, err := h.Theme()
	if err != nil {
		s.log.Debug("reading theme failed", "error", err)
		return window.ThemeLight.String()
	}
	return t.String()
}

// SetWindowTheme sets the main window theme. "dark" and "light" force a
// theme; any other value follows the system.
func (s *Shell) SetWindowTheme(theme string) error {
	h, ok := s.windows.Lookup(window.Main)
	if !ok {
		return ErrMainWindowAbsent
	}
	if err := h.SetTheme(window.ParseTheme(theme)); err != nil {
		return &window.OpError{Window: window.Main, Op: "set_theme", Err: err}
	}
	return nil
}

// ThemeChanged forwards an OS theme change of the main window to the UI.
func (s *Shell) ThemeChanged(theme window.Theme) {
	s.emitter.Emit(notify.SystemThemeChanged, theme.String())
}

// CheckForUpdate asks the update feed whether a newer build exists.
func (s *Shell) CheckForUpdate(ctx context.Context) (updater.Result, error) {
	start := time.Now()
	res, err := s.updates.CheckForUpdate(ctx)

	outcome := updater.OutcomeCurrent
	switch {
	case err != nil:
		outcome = updater.OutcomeError
	case res.Available:
		outcome = updater.OutcomeAvailable
		if s.onUpdate != nil {
			s.onUpdate(res)
		}
	}
	s.collector.RecordUpdateCheck(string(outcome), time.Since(start))
	return res, err
}

// GetAppVersion returns the running version.
func (s *Shell) GetAppVersion() string {
	return s.version
}

// DispatchMenu routes an application menu activation.
func (s *Shell) DispatchMenu(id string) menu.Result {
	res := s.menu.Dispatch(id)
	s.collector.RecordMenuDispatch(res.Action.String())
	return res
}

// HandleTrayClick feeds a tray icon click to the tray controller.
func (s *Shell) HandleTrayClick(ev tray.ClickEvent) {
	s.tray.HandleClick(ev)
}

// HandleTrayMenu feeds a tray menu activation to the tray controller.
func (s *Shell) HandleTrayMenu(id string) {
	s.tray.HandleMenu(id)
}

// OpenURLs routes deep links delivered by the OS.
func (s *Shell) OpenURLs(urls []string) int {
	return s.deeplinks.Handle(urls)
}

// HandleActivation reacts to a later launch of the application: main is
// brought to front and deep links among its arguments are routed.
func (s *Shell) HandleActivation(a instance.Activation) {
	s.collector.RecordActivation()
	s.log.Info("activated by another launch", "activation", a.ID, "args", len(a.Args))

	s.windows.ShowAndFocus(window.Main)
	if urls := deeplink.ExtractURLs(s.cfg.DeepLink.Scheme, a.Args); len(urls) > 0 {
		s.deeplinks.Handle(urls)
	}
}
