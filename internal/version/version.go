package version

import "fmt"

var (
	// Version is the library's semantic version; release builds override it
	// via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA baked in at build time, "none" for local
	// builds.
	Commit = "none"
	// BuildTime is the UTC timestamp baked in at build time.
	BuildTime = "unknown"
)

// Short returns the bare semantic version.
func Short() string {
	return Version
}

// Full renders the version together with the commit and build timestamp.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}
