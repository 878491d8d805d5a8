// Package version holds build metadata injected via ldflags:
//
//	-X github.com/kailas-cloud/vetdex/internal/version.Version=v1.2.0
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for -version flags and startup logs.
func String() string {
	return fmt.Sprintf("vetdex %s (commit %s, built %s)", Version, Commit, Date)
}
