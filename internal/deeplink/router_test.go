package deeplink

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gruenerator/shell/internal/notify"
)

func TestRouter_Handle(t *testing.T) {
	tests := []struct {
		name      string
		urls      []string
		forwarded []string
	}{
		{
			name:      "callback with query",
			urls:      []string{"gruenerator://auth/callback?code=abc"},
			forwarded: []string{"gruenerator://auth/callback?code=abc"},
		},
		{
			name:      "other path dropped",
			urls:      []string{"gruenerator://settings"},
			forwarded: nil,
		},
		{
			name:      "order kept and others dropped",
			urls:      []string{"gruenerator://auth/callback#1", "https://gruenerator.de", "gruenerator://auth/callback#2"},
			forwarded: []string{"gruenerator://auth/callback#1", "gruenerator://auth/callback#2"},
		},
		{
			name:      "prefix match only",
			urls:      []string{"gruenerator://auth/callbackXYZ"},
			forwarded: []string{"gruenerator://auth/callbackXYZ"},
		},
		{
			name:      "case sensitive",
			urls:      []string{"Gruenerator://auth/callback"},
			forwarded: nil,
		},
		{
			name:      "empty",
			urls:      nil,
			forwarded: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &notify.Recorder{}
			n := NewRouter("gruenerator", rec).Handle(tt.urls)

			assert.Equal(t, len(tt.forwarded), n)
			var got []string
			for _, sent := range rec.Notifications() {
				assert.Equal(t, notify.DeepLinkAuth, sent.Name)
				got = append(got, sent.Payload.(string))
			}
			assert.Equal(t, tt.forwarded, got)
		})
	}
}

func TestRouter_Observer(t *testing.T) {
	var results []bool
	r := NewRouter("gruenerator", nil, WithObserver(func(ok bool) { results = append(results, ok) }))

	r.Handle([]string{"gruenerator://auth/callback", "gruenerator://other"})
	assert.Equal(t, []bool{true, false}, results)
}

func TestCallbackPrefix(t *testing.T) {
	assert.Equal(t, "gruenerator://auth/callback", CallbackPrefix("gruenerator"))
}

func TestExtractURLs(t *testing.T) {
	args := []string{
		"--minimized",
		"gruenerator://auth/callback?code=1",
		"GRUENERATOR://auth/callback?code=2",
		"gruenerator:",
		"https://example.com",
		"gruenerator-x://y",
	}
	assert.Equal(t, []string{
		"gruenerator://auth/callback?code=1",
		"GRUENERATOR://auth/callback?code=2",
	}, ExtractURLs("gruenerator", args))

	assert.Nil(t, ExtractURLs("gruenerator", nil))
}
