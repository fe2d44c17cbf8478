package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gruenerator/shell/internal/version"
)

const githubAPIURL = "https://api.github.com"

// Release represents a GitHub release.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	Prerelease  bool      `json:"prerelease"`
	Draft       bool      `json:"draft"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

// GitHubService checks the releases of a GitHub repository.
type GitHubService struct {
	httpClient *http.Client
	baseURL    string
	owner      string
	repo       string
	channel    Channel
}

// NewGitHubService creates a service for owner/repo.
func NewGitHubService(owner, repo string, channel Channel) *GitHubService {
	return &GitHubService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    githubAPIURL,
		owner:      owner,
		repo:       repo,
		channel:    channel,
	}
}

// WithBaseURL points the service at another API root.
func (s *GitHubService) WithBaseURL(u string) *GitHubService {
	s.baseURL = strings.TrimSuffix(u, "/")
	return s
}

// Check implements Service.
func (s *GitHubService) Check(ctx context.Context, currentVersion string) (*Update, error) {
	rel, err := s.LatestRelease(ctx)
	if errors.Is(err, ErrNoUpdateAvailable) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ok, err := newer(rel.TagName, currentVersion)
	if err != nil || !ok {
		return nil, err
	}
	return &Update{
		Version: strings.TrimPrefix(rel.TagName, "v"),
		Notes:   rel.Body,
		PubDate: rel.PublishedAt,
	}, nil
}

// LatestRelease fetches the newest release of the configured channel.
func (s *GitHubService) LatestRelease(ctx context.Context) (*Release, error) {
	if !s.channel.IsPrerelease() {
		var rel Release
		if err := s.get(ctx, fmt.Sprintf("/repos/%s/%s/releases/latest", s.owner, s.repo), &rel); err != nil {
			return nil, err
		}
		return &rel, nil
	}

	var releases []Release
	if err := s.get(ctx, fmt.Sprintf("/repos/%s/%s/releases?per_page=30", s.owner, s.repo), &releases); err != nil {
		return nil, err
	}

	valid := releases[:0]
	for _, r := range releases {
		if !r.Draft {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: no releases found", ErrNoUpdateAvailable)
	}

	// Newest first; unparseable tags fall back to publish time.
	sort.SliceStable(valid, func(i, j int) bool {
		vi, err1 := ParseVersion(valid[i].TagName)
		vj, err2 := ParseVersion(valid[j].TagName)
		if err1 == nil && err2 == nil {
			return vi.IsNewerThan(vj)
		}
		return valid[i].PublishedAt.After(valid[j].PublishedAt)
	})
	return &valid[0], nil
}

func (s *GitHubService) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func checkResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrReleaseNotFound, resp.Request.URL.Path)
	case http.StatusForbidden, http.StatusTooManyRequests:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return ErrRateLimited
		}
		return fmt.Errorf("%w: status %d", ErrNetworkError, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrNetworkError, resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

func userAgent() string {
	return "Gruenerator-Updater/" + version.Short()
}
