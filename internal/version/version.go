package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/haus/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/haus/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/haus/internal/version.Date={{.Date}}
)

// String is the line printed by --version
func String() string {
	if Commit == "unknown" {
		return fmt.Sprintf("haus %s", Version)
	}
	return fmt.Sprintf("haus %s (%s, %s)", Version, Commit, Date)
}
