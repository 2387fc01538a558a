// Package pipeline drives one bbgen run from library probe to written
// bindings.
package pipeline

import (
	"context"
	"io"
	"path/filepath"

	"github.com/aztecprotocol/barretenberg-go/internal/bindgen"
	"github.com/aztecprotocol/barretenberg-go/internal/builderr"
	"github.com/aztecprotocol/barretenberg-go/internal/config"
	"github.com/aztecprotocol/barretenberg-go/internal/directive"
	"github.com/aztecprotocol/barretenberg-go/internal/hostexec"
	"github.com/aztecprotocol/barretenberg-go/internal/logging"
	"github.com/aztecprotocol/barretenberg-go/internal/manifest"
	"github.com/aztecprotocol/barretenberg-go/internal/pkgconfig"
	"github.com/aztecprotocol/barretenberg-go/internal/platform"
	"github.com/aztecprotocol/barretenberg-go/internal/searchpath"
)

// WrapperName names the inlined translation unit in diagnostics.
const WrapperName = "wrapper.hpp"

// Driver runs the steps in a fixed order and stops at the first failure.
type Driver struct {
	Config    *config.Config
	Manifest  *manifest.Manifest
	Prober    *pkgconfig.Prober
	Resolver  *searchpath.Resolver
	Generator *bindgen.Generator
	Emitter   *directive.Emitter
	Logger    logging.Logger
}

// Result describes a successful run.
type Result struct {
	Path       string
	Version    string
	OS         platform.OSKind
	Symbols    []string
	Directives []directive.Directive
}

// New wires a Driver whose host tools run through runner and whose
// directives are written to stdout.
func New(cfg *config.Config, m *manifest.Manifest, runner hostexec.Runner, stdout io.Writer, logger logging.Logger) *Driver {
	if logger == nil {
		logger = logging.Discard()
	}
	clang := &bindgen.ClangParser{Runner: runner, Clang: cfg.Clang, Logger: logger}
	return &Driver{
		Config:   cfg,
		Manifest: m,
		Prober: &pkgconfig.Prober{
			Runner:  runner,
			Program: cfg.PkgConfig,
			Lookup:  cfg.Lookup,
			Logger:  logger,
		},
		Resolver: searchpath.New(runner, cfg.CC, cfg.Brew, m.Runtime.BrewPackage, logger),
		Generator: &bindgen.Generator{
			Parser:          clang,
			Allowlist:       m.Allowlist,
			Library:         m.Library.Name,
			Package:         m.Output.Package,
			BuildConstraint: m.Output.BuildConstraint,
			Logger:          logger,
		},
		Emitter: directive.NewEmitter(stdout),
		Logger:  logger,
	}
}

// Run probes the library, emits link directives and writes the bindings.
// An unsupported host OS panics with a *builderr.Error; the caller's
// diagnostics hook turns it into a report.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	m := d.Manifest
	lib, err := d.Prober.Probe(ctx, pkgconfig.Requirement{
		Name: m.Library.Name,
		Min:  m.Library.MinVersion,
		Max:  m.Library.MaxVersion,
	})
	if err != nil {
		return nil, err
	}
	if err := d.emit(lib.Directives...); err != nil {
		return nil, err
	}

	kind := platform.Resolve(d.Config.HostOS)
	d.Logger.Debug(ctx, "classified host", "host_os", d.Config.HostOS, "os", kind.String())

	for _, dir := range d.Resolver.Resolve(ctx, kind) {
		if err := d.emit(directive.Search(dir)); err != nil {
			return nil, err
		}
	}
	if err := d.emit(directive.Library(m.Runtime.Library)); err != nil {
		return nil, err
	}

	art, err := d.Generator.Generate(ctx, bindgen.Request{
		Unit: bindgen.Unit{
			Name:        WrapperName,
			Contents:    m.WrapperHeader(),
			Args:        m.ClangArgs,
			IncludeDirs: lib.IncludeDirs,
		},
		Directives: d.Emitter.Directives(),
		OS:         kind,
	})
	if err != nil {
		return nil, err
	}
	if err := d.emit(art.Directives...); err != nil {
		return nil, err
	}

	outDir, err := d.Config.OutputDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(outDir, m.Output.File)
	if err := art.WriteFile(path); err != nil {
		return nil, err
	}
	d.Logger.Info(ctx, "wrote bindings", "path", path, "symbols", len(art.Functions))

	return &Result{
		Path:       path,
		Version:    lib.Version,
		OS:         kind,
		Symbols:    art.Symbols(),
		Directives: d.Emitter.Directives(),
	}, nil
}

func (d *Driver) emit(ds ...directive.Directive) error {
	if err := d.Emitter.Emit(ds...); err != nil {
		return builderr.Wrap(builderr.KindEnvironment, err.Error(), err)
	}
	return nil
}
