// Package version provides build-time version information.
package version

// These variables are set at build time, e.g.
//
//	go build -ldflags "-X github.com/open-cli-collective/mdt/internal/version.Version=v0.3.0"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
