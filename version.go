package imagemeta

import "runtime"

// Version is the semantic version of the imagemeta library.
const Version = "0.1.0"

// VersionInfo contains detailed version information.
type VersionInfo struct {
	// Version is the semantic version (e.g., "0.1.0")
	Version string `json:"version" yaml:"version"`
	// GitCommit is the git commit hash (set via ldflags at build time)
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	// BuildTime is the build timestamp (set via ldflags at build time)
	BuildTime string `json:"build_time" yaml:"build_time"`
	// GoVersion is the Go version used to build
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// GetVersionInfo returns detailed version information
//
// GitCommit, BuildTime, and GoVersion are populated at build time via -ldflags.
// If not set, they will show as "unknown".
//
// Example build command:
//
//	go build -ldflags="-X github.com/simonhull/imagemeta.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/imagemeta.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ) \
//	  -X github.com/simonhull/imagemeta.goVersion=$(go version | awk '{print $3}')"
func GetVersionInfo() VersionInfo {
	goVer := goVersion
	if goVer == "unknown" {
		// Fallback to runtime if not set via ldflags
		goVer = runtime.Version()
	}

	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: goVer,
	}
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

// PlatformInfo describes the host the library runs on.
type PlatformInfo struct {
	OS     string `json:"os" yaml:"os"`
	Arch   string `json:"arch" yaml:"arch"`
	Family string `json:"family" yaml:"family"`
}

// GetPlatformInfo returns the operating system, architecture and OS
// family ("unix", "windows" or "other") of the running host.
func GetPlatformInfo() PlatformInfo {
	return PlatformInfo{
		OS:     runtime.GOOS,
		Arch:   runtime.GOARCH,
		Family: family(runtime.GOOS),
	}
}

func family(goos string) string {
	switch goos {
	case "windows":
		return "windows"
	case "linux", "darwin", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix", "android", "ios":
		return "unix"
	default:
		return "other"
	}
}
