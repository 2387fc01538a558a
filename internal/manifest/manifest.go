// Package manifest holds the fixed, authoring-time description of the native
// library: its version range, the headers to parse and the allowlist of entry
// points to expose. The YAML is embedded into the binary so a build never
// reads it from disk.
package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var embedded []byte

// Manifest describes one native library binding.
type Manifest struct {
	Library   Library  `yaml:"library"`
	Runtime   Runtime  `yaml:"runtime"`
	ClangArgs []string `yaml:"clang_args"`
	Headers   []string `yaml:"headers"`
	Allowlist []string `yaml:"allowlist"`
	Output    Output   `yaml:"output"`
}

// Library is the pkg-config module and its accepted half-open version range.
type Library struct {
	Name       string `yaml:"name"`
	MinVersion string `yaml:"min_version"`
	MaxVersion string `yaml:"max_version"`
}

// Runtime is the auxiliary parallel runtime linked next to the library.
type Runtime struct {
	Library     string `yaml:"library"`
	BrewPackage string `yaml:"brew_package"`
}

// Output controls the generated Go file.
type Output struct {
	File            string `yaml:"file"`
	Package         string `yaml:"package"`
	BuildConstraint string `yaml:"build_constraint"`
}

// Default decodes the embedded manifest.
func Default() (*Manifest, error) {
	return Parse(embedded)
}

// Parse decodes and validates a manifest. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the invariants the pipeline relies on.
func (m *Manifest) Validate() error {
	var errs []error
	if m.Library.Name == "" {
		errs = append(errs, errors.New("library.name is required"))
	}
	lo, hi := canonical(m.Library.MinVersion), canonical(m.Library.MaxVersion)
	switch {
	case !semver.IsValid(lo):
		errs = append(errs, fmt.Errorf("library.min_version %q is not a version", m.Library.MinVersion))
	case !semver.IsValid(hi):
		errs = append(errs, fmt.Errorf("library.max_version %q is not a version", m.Library.MaxVersion))
	case semver.Compare(lo, hi) >= 0:
		errs = append(errs, fmt.Errorf("version range [%s, %s) is empty", m.Library.MinVersion, m.Library.MaxVersion))
	}
	if m.Runtime.Library == "" {
		errs = append(errs, errors.New("runtime.library is required"))
	}
	if m.Runtime.BrewPackage == "" {
		errs = append(errs, errors.New("runtime.brew_package is required"))
	}
	if len(m.Headers) == 0 {
		errs = append(errs, errors.New("at least one header is required"))
	}
	if len(m.Allowlist) == 0 {
		errs = append(errs, errors.New("allowlist is empty"))
	}
	seen := make(map[string]bool, len(m.Allowlist))
	for _, sym := range m.Allowlist {
		if seen[sym] {
			errs = append(errs, fmt.Errorf("allowlist entry %q is duplicated", sym))
		}
		seen[sym] = true
	}
	if m.Output.File == "" || m.Output.Package == "" {
		errs = append(errs, errors.New("output.file and output.package are required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}
	return nil
}

// WrapperHeader returns the inlined translation unit that includes every
// header, one #include per line.
func (m *Manifest) WrapperHeader() string {
	var b strings.Builder
	for _, h := range m.Headers {
		fmt.Fprintf(&b, "#include <%s>\n", h)
	}
	return b.String()
}

func canonical(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
