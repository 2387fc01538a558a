// Package builderr defines the terminal failures of the bbgen pipeline.
//
// Every failure is a *Error tagged with a Kind. Components construct the error
// at the point of detection and return it unchanged to the pipeline driver,
// which hands the first one to the diagnostics hook.
package builderr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a build failure.
type Kind string

const (
	KindPkgConfigDisabled      Kind = "pkg-config-disabled"
	KindPkgConfigProbe         Kind = "pkg-config-probe"
	KindPkgConfigGeneric       Kind = "pkg-config-generic"
	KindBindgenClangDiagnostic Kind = "bindgen-clang-diagnostic"
	KindBindgenGeneric         Kind = "bindgen-generic"
	KindBindgenWrite           Kind = "bindgen-write"
	KindUnsupportedPlatform    Kind = "unsupported-platform"
	KindEnvironment            Kind = "environment"
)

// Error is a tagged build failure. Detail carries the kind-specific payload:
// the offending variable for KindPkgConfigDisabled, trimmed tool output for the
// probe and diagnostic kinds, the destination path for KindBindgenWrite and the
// platform name for KindUnsupportedPlatform.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindPkgConfigDisabled:
		return fmt.Sprintf("Barretenberg could not be found because %s was set.", e.Detail)
	case KindPkgConfigProbe:
		return fmt.Sprintf("Failed to locate correct Barretenberg. %s.", e.Detail)
	case KindBindgenClangDiagnostic:
		return fmt.Sprintf("Clang encountered an error during binding generation: %s.", e.Detail)
	case KindBindgenGeneric:
		return fmt.Sprintf("Encountered a binding generation error: %s.", e.Detail)
	case KindBindgenWrite:
		return fmt.Sprintf("Failed to write %s with bbgen.", e.Detail)
	case KindUnsupportedPlatform:
		return fmt.Sprintf("%s is not supported", e.Detail)
	case KindEnvironment:
		return fmt.Sprintf("invalid build environment: %s", e.Detail)
	default:
		return e.Detail
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind. Sentinels carry
// no detail, so any failure of a kind matches that kind's sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Detail == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrPkgConfigDisabled      = &Error{Kind: KindPkgConfigDisabled}
	ErrPkgConfigProbe         = &Error{Kind: KindPkgConfigProbe}
	ErrPkgConfigGeneric       = &Error{Kind: KindPkgConfigGeneric}
	ErrBindgenClangDiagnostic = &Error{Kind: KindBindgenClangDiagnostic}
	ErrBindgenGeneric         = &Error{Kind: KindBindgenGeneric}
	ErrBindgenWrite           = &Error{Kind: KindBindgenWrite}
	ErrUnsupportedPlatform    = &Error{Kind: KindUnsupportedPlatform}
	ErrEnvironment            = &Error{Kind: KindEnvironment}
)

// New builds a failure of the given kind.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap builds a failure of the given kind that keeps err as its cause.
func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// Newf is New with a formatted detail.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or "" when err
// is not a build failure.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
