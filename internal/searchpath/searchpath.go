// Package searchpath discovers where the linker should look for the OpenMP
// runtime that the native library is built against.
//
// Discovery is best effort. A strategy that cannot run, or runs and finds
// nothing, yields an empty search path and a warning in the log; it never
// fails the build. If the runtime really is missing, the final link reports
// the unresolved symbols.
package searchpath

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aztecprotocol/barretenberg-go/internal/hostexec"
	"github.com/aztecprotocol/barretenberg-go/internal/logging"
	"github.com/aztecprotocol/barretenberg-go/internal/platform"
)

// LibrariesPrefix marks the library search line of `cc -print-search-dirs`.
const LibrariesPrefix = "libraries: ="

var (
	errNoLibrariesLine = errors.New("compiler output has no \"" + LibrariesPrefix + "\" line")
	errNotUTF8         = errors.New("output is not valid UTF-8")
	errEmptyPrefix     = errors.New("brew printed an empty prefix")
)

// Strategy discovers search directories on one kind of host.
type Strategy interface {
	Name() string
	Discover(ctx context.Context) ([]string, error)
}

// CompilerSearchDirs asks the C compiler for its library search directories.
type CompilerSearchDirs struct {
	Runner   hostexec.Runner
	Compiler string
}

func (s *CompilerSearchDirs) Name() string { return "compiler-search-dirs" }

// Discover runs `<compiler> -v -print-search-dirs` in the C locale, since gcc
// translates the "libraries:" label. The exit status is not consulted; only
// standard output matters.
func (s *CompilerSearchDirs) Discover(ctx context.Context) ([]string, error) {
	res, err := s.Runner.Run(ctx, hostexec.Command{
		Name: s.Compiler,
		Args: []string{"-v", "-print-search-dirs"},
		Env:  []string{"LC_ALL=C"},
	})
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(res.Stdout) {
		return nil, errNotUTF8
	}
	dirs, ok := ParseSearchDirs(string(res.Stdout))
	if !ok {
		return nil, errNoLibrariesLine
	}
	return dirs, nil
}

// ParseSearchDirs extracts the directories from every "libraries: =" line,
// in order. Empty entries are dropped. The boolean reports whether any such
// line was present.
func ParseSearchDirs(out string) ([]string, bool) {
	var dirs []string
	found := false
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		rest, ok := strings.CutPrefix(strings.TrimRight(line, "\r"), LibrariesPrefix)
		if !ok {
			continue
		}
		found = true
		for _, dir := range filepath.SplitList(rest) {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs, found
}

// HomebrewPrefix derives the runtime's library directory from `brew --prefix`.
type HomebrewPrefix struct {
	Runner  hostexec.Runner
	Brew    string
	Package string
}

func (s *HomebrewPrefix) Name() string { return "homebrew-prefix" }

// Discover returns <prefix>/opt/<package>/lib.
func (s *HomebrewPrefix) Discover(ctx context.Context) ([]string, error) {
	res, err := s.Runner.Run(ctx, hostexec.Command{Name: s.Brew, Args: []string{"--prefix"}})
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(res.Stdout) {
		return nil, errNotUTF8
	}
	prefix := strings.TrimSpace(string(res.Stdout))
	if prefix == "" {
		return nil, errEmptyPrefix
	}
	return []string{OptLibDir(prefix, s.Package)}, nil
}

// OptLibDir joins a Homebrew prefix with opt/<pkg>/lib. The prefix is kept
// verbatim apart from a trailing slash.
func OptLibDir(prefix, pkg string) string {
	return strings.TrimRight(prefix, "/") + "/" + path.Join("opt", pkg, "lib")
}

// Resolver picks the strategy for an OS kind and swallows its failures.
type Resolver struct {
	Linux  Strategy
	Apple  Strategy
	Logger logging.Logger
}

// New wires the default strategies.
func New(runner hostexec.Runner, compiler, brew, brewPackage string, logger logging.Logger) *Resolver {
	return &Resolver{
		Linux:  &CompilerSearchDirs{Runner: runner, Compiler: compiler},
		Apple:  &HomebrewPrefix{Runner: runner, Brew: brew, Package: brewPackage},
		Logger: logger,
	}
}

// Resolve returns the ordered search directories for kind. It never fails;
// an empty result means discovery found nothing.
func (r *Resolver) Resolve(ctx context.Context, kind platform.OSKind) []string {
	var s Strategy
	switch kind {
	case platform.Linux:
		s = r.Linux
	case platform.Apple:
		s = r.Apple
	}
	log := r.logger().With("os", kind.String())
	if s == nil {
		log.Warn(ctx, "no search path strategy configured")
		return nil
	}

	dirs, err := s.Discover(ctx)
	if err != nil {
		log.Warn(ctx, "search path discovery failed; continuing without search paths",
			"strategy", s.Name(), "error", err)
		return nil
	}
	if len(dirs) == 0 {
		log.Warn(ctx, "search path discovery found no directories", "strategy", s.Name())
		return nil
	}
	log.Debug(ctx, "discovered search paths", "strategy", s.Name(), "dirs", dirs)
	return dirs
}

func (r *Resolver) logger() logging.Logger {
	if r.Logger == nil {
		return logging.Discard()
	}
	return r.Logger
}
