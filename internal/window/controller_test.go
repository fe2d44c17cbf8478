package window_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruenerator/shell/internal/window"
	"github.com/gruenerator/shell/internal/window/memwin"
)

func TestController_ToggleVisibility_RoundTrip(t *testing.T) {
	main := memwin.New(window.Main, true)
	ctrl := window.NewController(memwin.NewRegistry(main))

	ctrl.ToggleVisibility(window.Main)
	assert.False(t, main.State().Visible, "first toggle from visible must hide")

	ctrl.ToggleVisibility(window.Main)
	st := main.State()
	assert.True(t, st.Visible, "second toggle must show again")
	assert.True(t, st.Focused, "showing via toggle must request focus")
}

func TestController_AbsentWindowIsNoop(t *testing.T) {
	ctrl := window.NewController(memwin.NewRegistry())

	assert.NotPanics(t, func() {
		ctrl.ToggleVisibility(window.Main)
		ctrl.ShowAndFocus(window.Main)
		ctrl.Show(window.Main)
		ctrl.Close(window.Splash)
		ctrl.ToggleFullscreen(window.Main)
		ctrl.OpenDevtools(window.Main)
	})

	_, ok := ctrl.Lookup(window.Main)
	assert.False(t, ok)
}

func TestController_NilRegistry(t *testing.T) {
	ctrl := window.NewController(nil)
	assert.NotPanics(t, func() { ctrl.ToggleVisibility(window.Main) })

	var nilCtrl *window.Controller
	_, ok := nilCtrl.Lookup(window.Main)
	assert.False(t, ok)
}

func TestController_HostFailuresAreSwallowed(t *testing.T) {
	main := memwin.New(window.Main, false)
	main.Fail("show", errors.New("toolkit busy"))
	ctrl := window.NewController(memwin.NewRegistry(main))

	assert.NotPanics(t, func() { ctrl.ToggleVisibility(window.Main) })
	assert.False(t, main.State().Visible)

	main.Fail("show", nil)
	ctrl.ToggleVisibility(window.Main)
	assert.True(t, main.State().Visible)
}

func TestController_UnreadableVisibilityShows(t *testing.T) {
	main := memwin.New(window.Main, false)
	main.Fail("is_visible", errors.New("no state"))
	ctrl := window.NewController(memwin.NewRegistry(main))

	ctrl.ToggleVisibility(window.Main)
	assert.True(t, main.State().Visible)
}

func TestController_ToggleFullscreen(t *testing.T) {
	main := memwin.New(window.Main, true)
	require.NoError(t, main.SetFullscreen(true))
	ctrl := window.NewController(memwin.NewRegistry(main))

	ctrl.ToggleFullscreen(window.Main)
	assert.False(t, main.State().Fullscreen)

	ctrl.ToggleFullscreen(window.Main)
	assert.True(t, main.State().Fullscreen)

	main.Fail("is_fullscreen", errors.New("unknown"))
	ctrl.ToggleFullscreen(window.Main)
	assert.True(t, main.State().Fullscreen, "unreadable state must leave the window alone")
}

func TestController_CloseRemovesFromRegistry(t *testing.T) {
	splash := memwin.New(window.Splash, true)
	reg := memwin.NewRegistry(splash)
	ctrl := window.NewController(reg)

	ctrl.Close(window.Splash)
	ctrl.Close(window.Splash)

	_, ok := reg.Lookup(window.Splash)
	assert.False(t, ok)
	assert.True(t, splash.State().Closed)
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, window.ThemeDark, window.ParseTheme("dark"))
	assert.Equal(t, window.ThemeDark, window.ParseTheme("DARK"))
	assert.Equal(t, window.ThemeLight, window.ParseTheme("light"))
	assert.Equal(t, window.ThemeSystem, window.ParseTheme("auto"))
	assert.Equal(t, window.ThemeSystem, window.ParseTheme(""))

	assert.Equal(t, "dark", window.ThemeDark.String())
	assert.Equal(t, "light", window.ThemeLight.String())
	assert.Equal(t, "light", window.ThemeSystem.String())
}

func TestOpError(t *testing.T) {
	base := errors.New("denied")
	err := &window.OpError{Window: "main", Op: "set_theme", Err: base}
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "window main: set_theme: denied", err.Error())
}
