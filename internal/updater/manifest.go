package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// Manifest is the static update document served next to the installers.
//
//	{"version": "1.4.0", "notes": "...", "pub_date": "2025-01-10T12:00:00Z",
//	 "platforms": {"linux-x86_64": {"url": "...", "signature": "..."}}}
type Manifest struct {
	Version   string                      `json:"version"`
	Notes     string                      `json:"notes"`
	PubDate   string                      `json:"pub_date"`
	Platforms map[string]ManifestPlatform `json:"platforms,omitempty"`
}

// ManifestPlatform is the download entry of one platform.
type ManifestPlatform struct {
	URL       string `json:"url"`
	Signature string `json:"signature"`
}

// ManifestService reads a Manifest over HTTP. A 204 response means no
// update.
type ManifestService struct {
	httpClient *http.Client
	url        string
	target     string
}

// NewManifestService creates a service reading url.
func NewManifestService(url string) *ManifestService {
	return &ManifestService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        url,
		target:     PlatformTarget(runtime.GOOS, runtime.GOARCH),
	}
}

// PlatformTarget returns the manifest platform key, e.g. "darwin-aarch64".
func PlatformTarget(goos, goarch string) string {
	arch := goarch
	switch goarch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "i686"
	case "arm":
		arch = "armv7"
	}
	return goos + "-" + arch
}

// Check implements Service.
func (s *ManifestService) Check(ctx context.Context, currentVersion string) (*Update, error) {
	m, err := s.Fetch(ctx)
	if err != nil || m == nil {
		return nil, err
	}

	ok, err := newer(m.Version, currentVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if !ok {
		return nil, nil
	}

	// A platform entry only matters once there is something to install.
	if len(m.Platforms) > 0 {
		if _, ok := m.Platforms[s.target]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrPlatformNotFound, s.target)
		}
	}

	upd := &Update{Version: strings.TrimPrefix(m.Version, "v"), Notes: m.Notes}
	if m.PubDate != "" {
		if t, err := time.Parse(time.RFC3339, m.PubDate); err == nil {
			upd.PubDate = t
		}
	}
	return upd, nil
}

// Fetch downloads the manifest. It returns nil when the server answers 204.
func (s *ManifestService) Fetch(ctx context.Context) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return nil, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrNetworkError, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var m Manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if m.Version == "" {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidManifest)
	}
	return &m, nil
}

// WithTarget overrides the platform key looked up in the manifest.
func (s *ManifestService) WithTarget(target string) *ManifestService {
	s.target = target
	return s
}
