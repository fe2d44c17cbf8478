// Package version provides build information for the Grünerator desktop shell.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables injected via ldflags
var (
	Version   = "0.0.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// AppName is the product name shown in tooltips and version output.
const AppName = "Grünerator"

// String returns a version line including commit and build time.
func String() string {
	return fmt.Sprintf("%s %s (%s) built %s", AppName, Version, GitCommit, BuildTime)
}

// Short returns the package version without a leading "v". This is the
// value reported to the UI and compared against update feeds.
func Short() string {
	return strings.TrimPrefix(Version, "v")
}

// Full returns version info with Go version and platform.
func Full() string {
	return fmt.Sprintf("%s - Go %s %s/%s", String(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Info contains structured version information.
type Info struct {
	App       string `json:"app"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns structured version information.
func GetInfo() Info {
	return Info{
		App:       AppName,
		Version:   Short(),
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
