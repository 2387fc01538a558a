// Package buildinfo exposes the version stamped into bbgen at link time.
package buildinfo

import "runtime/debug"

// Set with -ldflags "-X github.com/aztecprotocol/barretenberg-go/internal/buildinfo.Version=v0.1.0".
var (
	Version = "v0.0.0-in-progress"
	Commit  = "unknown"
)

// BinaryVersion returns the stamped version, falling back to the module
// version recorded by `go install` when nothing was stamped.
func BinaryVersion() string {
	if Version != "v0.0.0-in-progress" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// Revision returns the stamped commit, or the VCS revision embedded by the
// toolchain.
func Revision() string {
	if Commit != "unknown" {
		return Commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return Commit
}
