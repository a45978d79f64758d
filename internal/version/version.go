package version

import "fmt"

// Version is the crumbler release. Set via build-time ldflags:
// go build -ldflags "-X git.home.luguber.info/inful/crumbler/internal/version.Version=v0.3.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	if GitCommit == "unknown" && BuildTime == "unknown" {
		return fmt.Sprintf("crumbler %s", Version)
	}
	return fmt.Sprintf("crumbler %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
