// Package updater answers whether a newer build of the application is
// published. Downloading and installing updates is left to the host.
package updater

import "errors"

var (
	// ErrNoUpdateAvailable indicates the current version is up to date.
	ErrNoUpdateAvailable = errors.New("no update available")

	// ErrInvalidVersion indicates the version string is malformed.
	ErrInvalidVersion = errors.New("invalid version format")

	// ErrNetworkError indicates a network-related failure.
	ErrNetworkError = errors.New("network error")

	// ErrRateLimited indicates the GitHub API rate limit was exceeded.
	ErrRateLimited = errors.New("GitHub API rate limited")

	// ErrInvalidManifest indicates the update manifest could not be used.
	ErrInvalidManifest = errors.New("invalid update manifest")

	// ErrReleaseNotFound indicates the configured repository or release
	// does not exist.
	ErrReleaseNotFound = errors.New("release not found")

	// ErrPlatformNotFound indicates the manifest has no entry for this platform.
	ErrPlatformNotFound = errors.New("no update for this platform")
)

// CheckError is returned by CheckForUpdate when the update service failed.
// Message is what the UI shows.
type CheckError struct {
	Message string
	Err     error
}

func (e *CheckError) Error() string {
	return e.Message
}

func (e *CheckError) Unwrap() error {
	return e.Err
}
