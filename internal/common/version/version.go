package version

import (
	"fmt"
	"runtime"
)

// Version information - set at build time via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns formatted version information. toolVersion is the version
// reported by the package manager, or "" when it is not installed.
func Info(toolVersion string) string {
	if toolVersion == "" {
		toolVersion = "not found"
	}
	return fmt.Sprintf("wingetkit version %s\n  commit: %s\n  built: %s\n  go: %s\n  os/arch: %s/%s\n  winget: %s",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH, toolVersion)
}

// Short returns just the version string
func Short() string {
	return Version
}

// UserAgent identifies wingetkit in outgoing HTTP requests
func UserAgent() string {
	return "wingetkit/" + Version
}
