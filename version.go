package annotkit

import "runtime"

// Version is the semantic version of the annotkit library.
const Version = "0.1.0"

// VersionInfo contains detailed version information.
type VersionInfo struct {
	Version   string
	GitCommit string // set via ldflags at build time
	BuildTime string // set via ldflags at build time
	GoVersion string
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime are populated at build time via -ldflags:
//
//	go build -ldflags="-X github.com/simonhull/annotkit.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/annotkit.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/annotconv
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
