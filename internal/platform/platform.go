// Package platform classifies the host operating system for bbgen.
package platform

import "github.com/aztecprotocol/barretenberg-go/internal/builderr"

// OSKind is the closed set of operating systems the pipeline has a discovery
// strategy for.
type OSKind int

const (
	Linux OSKind = iota
	Apple
)

func (k OSKind) String() string {
	switch k {
	case Linux:
		return "linux"
	case Apple:
		return "apple"
	default:
		return "unknown"
	}
}

// Windows is the host identifier that aborts the build.
const Windows = "windows"

// Resolve maps a host OS identifier to an OSKind. Unknown identifiers are
// treated as Linux. Windows has no discovery strategy, so Resolve panics with
// a *builderr.Error of kind unsupported-platform; the diagnostics hook reports
// it.
func Resolve(hostOS string) OSKind {
	switch hostOS {
	case "linux":
		return Linux
	case "darwin", "macos":
		return Apple
	case Windows:
		panic(builderr.New(builderr.KindUnsupportedPlatform, hostOS))
	default:
		return Linux
	}
}
