// Package version exposes build version information set via -ldflags.
package version

import "runtime/debug"

// Set with -ldflags "-X github.com/rshade/artgrid/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Linker-injected build metadata.
var (
	version = ""
	commit  = ""
)

// GetVersion returns the injected version, the module version from build info,
// or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// GetCommit returns the injected commit hash, or "unknown".
func GetCommit() string {
	if commit != "" {
		return commit
	}
	return "unknown"
}
