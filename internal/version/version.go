// Package version holds hoodmatch build metadata injected via ldflags:
//
//	-X github.com/kailas-cloud/hoodmatch/internal/version.Version=v1.2.3
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for logs and the SDK user agent.
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}
