// Package version exposes build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/connorhough/fecho/internal/version.Version=v1.2.0"
package version

import "fmt"

// These variables are set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String returns the version followed by commit and build date when known.
func String() string {
	if GitCommit == "unknown" && BuildDate == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit: %s, date: %s)", Version, GitCommit, BuildDate)
}
