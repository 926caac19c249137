// Package version carries build identification, overridden at link time with
// -ldflags "-X ...".
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns a one-line build identifier for CLI output.
func String() string {
	return fmt.Sprintf("windrose-report %s (%s, built %s)", Version, GitSHA, BuildTime)
}
