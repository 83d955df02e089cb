package common

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X github.com/bobmcallan/shyft/internal/common.Version=1.2.0 ..."
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// BuildInfo is the version triple reported by /api/version and get_version.
type BuildInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit"`
}

// GetBuildInfo returns the current build info.
func GetBuildInfo() BuildInfo {
	return BuildInfo{Version: Version, Build: Build, Commit: GitCommit}
}

func GetVersion() string   { return Version }
func GetBuild() string     { return Build }
func GetGitCommit() string { return GitCommit }

// GetFullVersion returns e.g. "1.2.0 (build: 2024-03-01, commit: abc1234)".
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// String renders the info on one line.
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", b.Version, b.Build, b.Commit)
}
