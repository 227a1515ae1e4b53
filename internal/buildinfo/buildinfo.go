// Package buildinfo holds build-time variables injected via ldflags.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Populated by -ldflags at build time; defaults used for local dev.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

// String returns a one-line summary for `bmark version`. A binary installed
// with `go install` carries no ldflags, so its module version is used.
func String() string {
	version := Version
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	return fmt.Sprintf("bmark %s (commit %s, branch %s, built %s)", version, GitCommit, GitBranch, BuildDate)
}
