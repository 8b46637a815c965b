// Package version provides version information for the application.
//
// The values are set at build time via ldflags and default to development
// placeholders otherwise.
package version

import "fmt"

var (
	// Version is the release version.
	Version = "0.0.0-dev"
	// Revision is the VCS revision the binary was built from.
	Revision = "unknown"
	// BuildDate is the UTC build timestamp.
	BuildDate = "unknown"
)

// GetVersionString returns a single-line version summary.
func GetVersionString() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Revision, BuildDate)
}
