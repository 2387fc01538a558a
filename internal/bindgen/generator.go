package bindgen

import (
	"context"
	"fmt"
	"sort"

	"github.com/aztecprotocol/barretenberg-go/internal/builderr"
	"github.com/aztecprotocol/barretenberg-go/internal/directive"
	"github.com/aztecprotocol/barretenberg-go/internal/logging"
	"github.com/aztecprotocol/barretenberg-go/internal/platform"
)

// Generator filters parsed declarations through an allowlist and renders the
// bindings file.
type Generator struct {
	Parser    HeaderParser
	Allowlist []string

	// Library is linked statically by the generated file.
	Library string

	Package         string
	BuildConstraint string
	Logger          logging.Logger
}

// Request carries the per-run inputs of Generate.
type Request struct {
	Unit Unit

	// Directives are the link directives emitted before generation; they are
	// rendered into #cgo LDFLAGS together with the generator's own.
	Directives []directive.Directive
	OS         platform.OSKind
}

// Artifact is a rendered bindings file. It is immutable once returned.
type Artifact struct {
	Functions []Function

	// Directives are the link directives the generator itself requires.
	Directives []directive.Directive
	Source     []byte
}

// Symbols returns the declared function names in output order.
func (a *Artifact) Symbols() []string {
	names := make([]string, len(a.Functions))
	for i, fn := range a.Functions {
		names[i] = fn.Name
	}
	return names
}

// Generate parses the unit, keeps allowlisted functions in discovery order
// and renders the bindings source.
func (g *Generator) Generate(ctx context.Context, req Request) (*Artifact, error) {
	parsed, err := g.Parser.Parse(ctx, req.Unit)
	if err != nil {
		if builderr.KindOf(err) != "" {
			return nil, err
		}
		return nil, builderr.Wrap(builderr.KindBindgenGeneric, err.Error(), err)
	}

	fns, err := g.filter(ctx, parsed)
	if err != nil {
		return nil, err
	}

	own := []directive.Directive{directive.StaticLibrary(g.Library)}
	all := append(append([]directive.Directive(nil), req.Directives...), own...)
	src, err := Render(File{
		Package:         g.Package,
		BuildConstraint: g.BuildConstraint,
		IncludeDirs:     req.Unit.IncludeDirs,
		LDFlags:         directive.LDFlags(all, req.OS),
		Functions:       fns,
	})
	if err != nil {
		return nil, builderr.Wrap(builderr.KindBindgenGeneric, err.Error(), err)
	}

	g.logger().Info(ctx, "generated bindings", "functions", len(fns), "allowlisted", len(g.Allowlist))
	return &Artifact{Functions: fns, Directives: own, Source: src}, nil
}

func (g *Generator) filter(ctx context.Context, parsed []Function) ([]Function, error) {
	allowed := make(map[string]bool, len(g.Allowlist))
	for _, name := range g.Allowlist {
		allowed[name] = true
	}

	var fns []Function
	found := make(map[string]bool, len(g.Allowlist))
	for _, fn := range parsed {
		if !allowed[fn.Name] || found[fn.Name] {
			continue
		}
		if err := checkC(fn); err != nil {
			return nil, builderr.Wrap(builderr.KindBindgenGeneric, err.Error(), err)
		}
		found[fn.Name] = true
		fns = append(fns, fn)
	}

	var missing []string
	for name := range allowed {
		if !found[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		g.logger().Warn(ctx, "allowlisted functions not found in headers", "missing", missing)
	}
	return fns, nil
}

func checkC(fn Function) error {
	if cxxOnly(fn.Result) {
		return fmt.Errorf("function %s returns C++ type %q", fn.Name, fn.Result)
	}
	for _, p := range fn.Params {
		if cxxOnly(p.Type) {
			return fmt.Errorf("function %s takes C++ type %q", fn.Name, p.Type)
		}
	}
	return nil
}

func (g *Generator) logger() logging.Logger {
	if g.Logger == nil {
		return logging.Discard()
	}
	return g.Logger
}
