package directive

import (
	"strings"

	"github.com/aztecprotocol/barretenberg-go/internal/platform"
)

// Dedup drops repeated directives, keeping the first occurrence.
func Dedup(ds []Directive) []Directive {
	seen := make(map[Directive]bool, len(ds))
	out := make([]Directive, 0, len(ds))
	for _, d := range ds {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// LDFlags renders directives as linker flags for a #cgo LDFLAGS line. Order
// follows the input after duplicates are removed. GNU ld needs explicit
// -Bstatic/-Bdynamic toggles around a static library; ld64 has no such
// switch, so on Apple a static library is requested by name only.
func LDFlags(ds []Directive, kind platform.OSKind) []string {
	var flags []string
	for _, d := range Dedup(ds) {
		switch d.Kind {
		case LinkSearch:
			flags = append(flags, QuoteFlag("-L"+d.Path))
		case LinkLibrary:
			lib := "-l" + d.Name
			if d.Static && kind == platform.Linux {
				flags = append(flags, "-Wl,-Bstatic", lib, "-Wl,-Bdynamic")
				continue
			}
			flags = append(flags, lib)
		}
	}
	return flags
}

// QuoteFlag wraps a flag containing spaces in double quotes, which #cgo lines
// accept.
func QuoteFlag(flag string) string {
	if !strings.ContainsAny(flag, " \t") {
		return flag
	}
	return `"` + strings.ReplaceAll(flag, `"`, `\"`) + `"`
}
