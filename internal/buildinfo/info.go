// Package buildinfo carries version metadata stamped in with -ldflags -X.
package buildinfo

// Set at build time, e.g. -X github.com/moneybags-dev/moneybags/internal/buildinfo.Version=v1.2.0.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
