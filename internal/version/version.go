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

// String is the one-line form printed by "dggs version".
func String() string {
	return fmt.Sprintf("dggs %s (commit %s, built %s)", Version, GitSHA, BuildTime)
}
