package updater

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGitHubServer(t *testing.T, latest Release, all []Release) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "Gruenerator-Updater/"))

		switch {
		case strings.HasSuffix(r.URL.Path, "/releases/latest"):
			_ = json.NewEncoder(w).Encode(latest)
		case strings.HasSuffix(r.URL.Path, "/releases"):
			_ = json.NewEncoder(w).Encode(all)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGitHubService_StableNewer(t *testing.T) {
	published := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	srv := newGitHubServer(t, Release{TagName: "v1.2.0", Body: "Fixes", PublishedAt: published}, nil)

	svc := NewGitHubService("netzbegruenung", "gruenerator", ChannelStable).WithBaseURL(srv.URL)
	upd, err := svc.Check(context.Background(), "1.1.0")
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.Equal(t, "1.2.0", upd.Version)
	assert.Equal(t, "Fixes", upd.Notes)
	assert.Equal(t, published, upd.PubDate)
}

func TestGitHubService_StableCurrent(t *testing.T) {
	srv := newGitHubServer(t, Release{TagName: "v1.2.0"}, nil)

	svc := NewGitHubService("o", "r", ChannelStable).WithBaseURL(srv.URL)
	upd, err := svc.Check(context.Background(), "1.2.0")
	require.NoError(t, err)
	assert.Nil(t, upd)
}

func TestGitHubService_PrereleaseChannel(t *testing.T) {
	now := time.Now()
	srv := newGitHubServer(t, Release{}, []Release{
		{TagName: "v1.0.0", PublishedAt: now.Add(-time.Hour)},
		{TagName: "v1.1.0-beta.2", Prerelease: true, PublishedAt: now.Add(-2 * time.Hour)},
		{TagName: "v2.0.0", Draft: true, PublishedAt: now},
	})

	svc := NewGitHubService("o", "r", ChannelPrerelease).WithBaseURL(srv.URL)
	rel, err := svc.LatestRelease(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.1.0-beta.2", rel.TagName, "drafts are skipped and order is by version")

	upd, err := svc.Check(context.Background(), "1.0.0")
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.Equal(t, "1.1.0-beta.2", upd.Version)
}

func TestGitHubService_NoReleases(t *testing.T) {
	srv := newGitHubServer(t, Release{}, []Release{{TagName: "v1.0.0", Draft: true}})

	svc := NewGitHubService("o", "r", ChannelPrerelease).WithBaseURL(srv.URL)
	upd, err := svc.Check(context.Background(), "1.0.0")
	require.NoError(t, err)
	assert.Nil(t, upd)
}

func TestGitHubService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "unknown repository",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantErr: ErrReleaseNotFound,
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.WriteHeader(http.StatusForbidden)
			},
			wantErr: ErrRateLimited,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantErr: ErrNetworkError,
		},
		{
			name: "bad tag",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(Release{TagName: "nightly"})
			},
			wantErr: ErrInvalidVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			upd, err := NewGitHubService("o", "r", ChannelStable).WithBaseURL(srv.URL).Check(context.Background(), "1.0.0")
			assert.Nil(t, upd)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGitHubService_UnknownRepositoryIsCheckError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	svc := NewGitHubService("typo", "gruenerator", ChannelStable).WithBaseURL(srv.URL)
	res, err := NewChecker(svc, "1.0.0").CheckForUpdate(context.Background())

	var checkErr *CheckError
	require.ErrorAs(t, err, &checkErr)
	assert.ErrorIs(t, err, ErrReleaseNotFound)
	assert.Contains(t, checkErr.Message, "/repos/typo/gruenerator/releases/latest")
	assert.False(t, res.Available)
}
