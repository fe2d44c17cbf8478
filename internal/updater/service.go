package updater

import (
	"context"
	"time"
)

// Update describes a published build newer than the running one.
type Update struct {
	Version string
	Notes   string
	PubDate time.Time
}

// Service queries an update feed. It returns a nil Update and a nil error
// when the running version is current.
type Service interface {
	Check(ctx context.Context, currentVersion string) (*Update, error)
}

// ServiceFunc adapts a function to Service.
type ServiceFunc func(ctx context.Context, currentVersion string) (*Update, error)

// Check implements Service.
func (f ServiceFunc) Check(ctx context.Context, currentVersion string) (*Update, error) {
	return f(ctx, currentVersion)
}

// Disabled is a Service that never finds an update.
var Disabled Service = ServiceFunc(func(context.Context, string) (*Update, error) {
	return nil, nil
})

// Channel specifies which release channel to follow.
type Channel string

const (
	// ChannelStable only includes stable releases.
	ChannelStable Channel = "stable"

	// ChannelPrerelease includes prereleases.
	ChannelPrerelease Channel = "prerelease"
)

// IsPrerelease returns true if the channel includes prereleases.
func (c Channel) IsPrerelease() bool {
	return c == ChannelPrerelease
}

// newer reports whether candidate is newer than current. An unparseable
// current version counts as older than any release.
func newer(candidate, current string) (bool, error) {
	cv, err := ParseVersion(candidate)
	if err != nil {
		return false, err
	}
	rv, err := ParseVersion(current)
	if err != nil {
		return true, nil
	}
	return cv.IsNewerThan(rv), nil
}
