package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Emit(MenuZoom, "in")
	r.Emit(MenuNew, nil)

	assert.Equal(t, []Notification{
		{Name: MenuZoom, Payload: "in"},
		{Name: MenuNew, Payload: nil},
	}, r.Notifications())

	r.Reset()
	assert.Empty(t, r.Notifications())
}

func TestFanout_SkipsNil(t *testing.T) {
	var a, b Recorder
	f := Fanout{&a, nil, &b}

	f.Emit(DeepLinkAuth, "gruenerator://auth/callback?code=1")

	assert.Len(t, a.Notifications(), 1)
	assert.Len(t, b.Notifications(), 1)
}

func TestFunc(t *testing.T) {
	var got string
	Func(func(name string, _ any) { got = name }).Emit(MenuAbout, nil)
	assert.Equal(t, MenuAbout, got)

	assert.NotPanics(t, func() { Discard.Emit(MenuAbout, nil) })
}

func TestNames_Unique(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range Names {
		assert.False(t, seen[n], "duplicate notification name %s", n)
		seen[n] = true
	}
	assert.Len(t, Names, 9)
}
