// Package directive models the link instructions bbgen forwards to the build.
//
// Directives travel on standard output in a line protocol, one per line:
//
//	cgo:link-lib=static=barretenberg
//	cgo:link-lib=omp
//	cgo:link-search=/usr/lib/gcc/x86_64-linux-gnu/12
//
// The same directives are rendered into the #cgo LDFLAGS line of the
// generated bindings, which is what the Go toolchain actually consumes.
package directive

import (
	"fmt"
	"strings"
)

// Prefix starts every directive line.
const Prefix = "cgo:"

// Kind distinguishes library and search-path directives.
type Kind int

const (
	LinkLibrary Kind = iota
	LinkSearch
)

// Directive is one link instruction.
type Directive struct {
	Kind   Kind
	Name   string // library name without lib prefix, for LinkLibrary
	Static bool   // link Name statically
	Path   string // directory, for LinkSearch
}

// Library links name with the default linkage.
func Library(name string) Directive {
	return Directive{Kind: LinkLibrary, Name: name}
}

// StaticLibrary links name statically.
func StaticLibrary(name string) Directive {
	return Directive{Kind: LinkLibrary, Name: name, Static: true}
}

// Search adds dir to the linker search path.
func Search(dir string) Directive {
	return Directive{Kind: LinkSearch, Path: dir}
}

// String renders the directive as a protocol line without a trailing newline.
func (d Directive) String() string {
	switch d.Kind {
	case LinkSearch:
		return Prefix + "link-search=" + d.Path
	default:
		if d.Static {
			return Prefix + "link-lib=static=" + d.Name
		}
		return Prefix + "link-lib=" + d.Name
	}
}

// Parse reads one protocol line back into a Directive.
func Parse(line string) (Directive, error) {
	line = strings.TrimRight(line, "\r\n")
	body, ok := strings.CutPrefix(line, Prefix)
	if !ok {
		return Directive{}, fmt.Errorf("directive %q: missing %q prefix", line, Prefix)
	}
	key, value, ok := strings.Cut(body, "=")
	if !ok || value == "" {
		return Directive{}, fmt.Errorf("directive %q: missing value", line)
	}

	switch key {
	case "link-search":
		return Search(value), nil
	case "link-lib":
		if name, ok := strings.CutPrefix(value, "static="); ok {
			if name == "" {
				return Directive{}, fmt.Errorf("directive %q: missing library name", line)
			}
			return StaticLibrary(name), nil
		}
		return Library(value), nil
	default:
		return Directive{}, fmt.Errorf("directive %q: unknown instruction %q", line, key)
	}
}
