package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruenerator/shell/internal/config"
	"github.com/gruenerator/shell/internal/tray"
	"github.com/gruenerator/shell/internal/window"
	"github.com/gruenerator/shell/internal/window/memwin"
)

type fakeItem struct {
	clicked chan struct{}
}

func (i *fakeItem) SetTitle(string)          {}
func (i *fakeItem) SetTooltip(string)        {}
func (i *fakeItem) Enable()                  {}
func (i *fakeItem) Disable()                 {}
func (i *fakeItem) Show()                    {}
func (i *fakeItem) Hide()                    {}
func (i *fakeItem) Clicked() <-chan struct{} { return i.clicked }

// fakeSystray records what the tray builds and lets a test click it.
type fakeSystray struct {
	mu      sync.Mutex
	started bool
	ended   bool
	tapped  func()
	items   []*fakeItem
}

func (f *fakeSystray) Run(onReady func(), onExit func()) {}

func (f *fakeSystray) RunWithExternalLoop(onReady func(), onExit func()) (start, end func()) {
	start = func() {
		f.mu.Lock()
		f.started = true
		f.mu.Unlock()
		onReady()
	}
	end = func() {
		f.mu.Lock()
		f.ended = true
		f.mu.Unlock()
		onExit()
	}
	return start, end
}

func (f *fakeSystray) SetIcon([]byte)    {}
func (f *fakeSystray) SetTitle(string)   {}
func (f *fakeSystray) SetTooltip(string) {}
func (f *fakeSystray) AddSeparator()     {}
func (f *fakeSystray) Quit()             {}

func (f *fakeSystray) SetOnTapped(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tapped = fn
}

func (f *fakeSystray) AddMenuItem(string, string) tray.MenuItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := &fakeItem{clicked: make(chan struct{}, 1)}
	f.items = append(f.items, item)
	return item
}

func (f *fakeSystray) tap() {
	f.mu.Lock()
	fn := f.tapped
	f.mu.Unlock()
	fn()
}

func testConfig() config.ShellConfig {
	cfg := config.DefaultShellConfig()
	cfg.Startup.SplashTimeout = config.Duration(time.Hour)
	cfg.Update.Source = config.UpdateSourceNone
	return cfg
}

func startApp(t *testing.T, cfg config.ShellConfig, minimized bool) (*App, *memwin.Window, *fakeSystray) {
	t.Helper()
	main := memwin.New(window.Main, false)
	systray := &fakeSystray{}

	app, err := newApp(cfg, nil, minimized, hostDeps{
		windows: memwin.NewRegistry(main),
		tray:    systray,
	})
	require.NoError(t, err)

	app.run(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = app.shell.Stop(ctx)
	})
	return app, main, systray
}

func TestApp_MinimizedLaunchShowsFromTray(t *testing.T) {
	app, main, systray := startApp(t, testConfig(), true)

	require.NotNil(t, app.tray)
	assert.True(t, systray.started)
	require.Len(t, systray.items, 3)

	app.CloseSplashscreen()
	assert.False(t, main.State().Visible, "login launch keeps main hidden")

	systray.tap()
	assert.True(t, main.State().Visible)
	assert.True(t, main.State().Focused)
}

func TestApp_MinimizedWithoutTrayShowsMain(t *testing.T) {
	cfg := testConfig()
	cfg.Tray.Enabled = false
	app, main, systray := startApp(t, cfg, true)

	assert.Nil(t, app.tray)
	assert.False(t, systray.started)

	app.CloseSplashscreen()
	assert.True(t, main.State().Visible)
}

func TestApp_TrayQuitExitsImmediately(t *testing.T) {
	app, _, systray := startApp(t, testConfig(), false)

	exits := make(chan int, 1)
	app.exit = func(code int) { exits <- code }

	systray.items[2].clicked <- struct{}{}
	select {
	case code := <-exits:
		assert.Equal(t, 0, code)
	case <-time.After(time.Second):
		t.Fatal("tray quit did not exit")
	}
}

func TestApp_OpenURL(t *testing.T) {
	app, main, _ := startApp(t, testConfig(), true)

	app.openURL("gruenerator://open/antrag")
	assert.True(t, main.State().Visible, "a deep link brings main to front")
}

func TestApp_ShutdownEndsTray(t *testing.T) {
	app, _, systray := startApp(t, testConfig(), false)

	app.shutdown(context.Background())
	assert.True(t, systray.ended)
}
