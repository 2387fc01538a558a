// Package pkgconfig locates the native library through pkg-config and checks
// that the installed version is compatible.
package pkgconfig

import (
	"context"
	"fmt"
	"strings"

	"github.com/aztecprotocol/barretenberg-go/internal/builderr"
	"github.com/aztecprotocol/barretenberg-go/internal/directive"
	"github.com/aztecprotocol/barretenberg-go/internal/hostexec"
	"github.com/aztecprotocol/barretenberg-go/internal/logging"
)

// NoPkgConfig disables pkg-config for every library when set.
const NoPkgConfig = "NO_PKG_CONFIG"

// Library is a probed, version-compatible installation.
type Library struct {
	Name        string
	Version     string
	IncludeDirs []string
	LinkDirs    []string

	// ExtraLibs are -l flags other than the library itself.
	ExtraLibs []string

	// Directives are the link instructions the caller must forward,
	// including the static link of the library.
	Directives []directive.Directive
}

// Prober queries pkg-config. It runs at most two commands per Probe and never
// retries.
type Prober struct {
	Runner  hostexec.Runner
	Program string

	// Lookup reads environment switches; nil means nothing is set.
	Lookup func(string) (string, bool)

	Logger logging.Logger
}

// Probe finds req.Name and returns its link requirements. Failures are
// *builderr.Error values of the pkg-config kinds.
func (p *Prober) Probe(ctx context.Context, req Requirement) (*Library, error) {
	if setting, ok := p.disabledBy(req.Name); ok {
		return nil, builderr.New(builderr.KindPkgConfigDisabled, setting)
	}

	version, err := p.modversion(ctx, req)
	if err != nil {
		return nil, err
	}

	lib, err := p.flags(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	lib.Version = version
	p.logger().Info(ctx, "found native library", "library", req.Name, "version", version)
	return lib, nil
}

// DisableVariables lists the switches that turn pkg-config off for name, most
// specific first.
func DisableVariables(name string) []string {
	prefix := strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))
	return []string{prefix + "_" + NoPkgConfig, NoPkgConfig}
}

func (p *Prober) disabledBy(name string) (string, bool) {
	if p.Lookup == nil {
		return "", false
	}
	for _, key := range DisableVariables(name) {
		if _, ok := p.Lookup(key); ok {
			return key, true
		}
	}
	return "", false
}

// modversion asks pkg-config for the version of a module matching req. An
// installed module outside the range makes pkg-config exit non-zero with its
// own "Requested ... but version of ... is ..." message.
func (p *Prober) modversion(ctx context.Context, req Requirement) (string, error) {
	res, err := p.run(ctx, "--modversion", req.String())
	if err != nil {
		return "", err
	}
	// One line is printed per entry of the module list.
	for _, line := range strings.Split(string(res.Stdout), "\n") {
		if v := strings.TrimSpace(line); v != "" {
			return v, nil
		}
	}
	return "", builderr.Newf(builderr.KindPkgConfigGeneric, "pkg-config printed no version for %s", req.Name)
}

func (p *Prober) flags(ctx context.Context, name string) (*Library, error) {
	res, err := p.run(ctx, "--static", "--cflags", "--libs", name)
	if err != nil {
		return nil, err
	}
	lib := parseFlags(name, string(res.Stdout))
	for _, f := range lib.unknown {
		p.logger().Debug(ctx, "ignoring pkg-config flag", "flag", f)
	}
	return &lib.Library, nil
}

func (p *Prober) run(ctx context.Context, args ...string) (*hostexec.Result, error) {
	cmd := hostexec.Command{Name: p.program(), Args: args}
	p.logger().Debug(ctx, "running pkg-config", "command", cmd.String())

	res, err := p.Runner.Run(ctx, cmd)
	if err != nil {
		return nil, builderr.Wrap(builderr.KindPkgConfigGeneric,
			fmt.Sprintf("Could not run `%s`: %v", cmd, err), err)
	}
	if !res.Success() {
		msg := strings.TrimSpace(string(res.Stderr))
		if msg == "" {
			msg = fmt.Sprintf("`%s` exited with status %d", cmd, res.ExitCode)
		}
		return nil, builderr.New(builderr.KindPkgConfigProbe, msg)
	}
	return res, nil
}

func (p *Prober) program() string {
	if p.Program == "" {
		return "pkg-config"
	}
	return p.Program
}

func (p *Prober) logger() logging.Logger {
	if p.Logger == nil {
		return logging.Discard()
	}
	return p.Logger
}

type parsed struct {
	Library
	unknown []string
}

// parseFlags splits pkg-config output into include dirs, link dirs and
// libraries.
func parseFlags(name, out string) parsed {
	lib := parsed{Library: Library{Name: name}}
	for _, f := range strings.Fields(out) {
		switch {
		case strings.HasPrefix(f, "-I") && len(f) > 2:
			lib.IncludeDirs = append(lib.IncludeDirs, f[2:])
		case strings.HasPrefix(f, "-L") && len(f) > 2:
			lib.LinkDirs = append(lib.LinkDirs, f[2:])
		case strings.HasPrefix(f, "-l") && len(f) > 2:
			if f[2:] != name {
				lib.ExtraLibs = append(lib.ExtraLibs, f[2:])
			}
		default:
			lib.unknown = append(lib.unknown, f)
		}
	}

	for _, dir := range lib.LinkDirs {
		lib.Directives = append(lib.Directives, directive.Search(dir))
	}
	lib.Directives = append(lib.Directives, directive.StaticLibrary(name))
	for _, l := range lib.ExtraLibs {
		lib.Directives = append(lib.Directives, directive.Library(l))
	}
	return lib
}
