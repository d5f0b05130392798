package version

import (
	"fmt"
	"runtime"
	"time"
)

// These variables are set at build time via -ldflags
var (
	Version   = "dev"     // -X github.com/denischpt/portfolio/internal/version.Version=v1.2.0
	BuildTime = "unknown" // -X github.com/denischpt/portfolio/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)
	GitCommit = "unknown" // -X github.com/denischpt/portfolio/internal/version.GitCommit=$(git rev-parse HEAD)
)

// BuildInfo contains build information for the relay and the CLI
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetVersionString returns a formatted version string
func GetVersionString() string {
	buildTime, ok := parseBuildTime()
	if !ok {
		return Version
	}
	return Version + " (built " + buildTime.Format("2006-01-02 15:04:05 UTC") + ")"
}

// Info returns a formatted version info string for CLI output
func Info() string {
	info := GetBuildInfo()
	buildTime, ok := parseBuildTime()
	switch {
	case info.BuildTime == "unknown":
		return fmt.Sprintf("%s (development build, %s, %s)", info.Version, info.GoVersion, info.Platform)
	case !ok:
		return fmt.Sprintf("%s (built %s, %s)", info.Version, info.BuildTime, info.Platform)
	}

	commit := info.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (built %s, commit %s, %s, %s)",
		info.Version,
		buildTime.Format("2006-01-02 15:04:05 UTC"),
		commit,
		info.GoVersion,
		info.Platform,
	)
}

func parseBuildTime() (time.Time, bool) {
	if BuildTime == "unknown" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, BuildTime)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
