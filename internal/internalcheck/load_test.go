package internalcheck

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/aztecprotocol/barretenberg-go"

// loadModule loads every non-test package under internal/ and cmd/.
func loadModule(t *testing.T) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}

	pkgs, err := packages.Load(cfg, modulePath+"/internal/...", modulePath+"/cmd/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	var errs []string
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e.Error())
		}
	})
	if len(errs) > 0 {
		t.Fatalf("package errors:\n%s", strings.Join(errs, "\n"))
	}
	if len(pkgs) == 0 {
		t.Fatalf("no packages loaded")
	}
	return pkgs
}

// usesOf reports every selector in pkg that resolves to one of the named
// package-level objects, e.g. "fmt.Println".
func usesOf(pkg *packages.Package, names map[string]bool) []string {
	var findings []string
	for _, file := range pkg.Syntax {
		ast.Inspect(file, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			obj := pkg.TypesInfo.Uses[sel.Sel]
			if obj == nil || obj.Pkg() == nil {
				return true
			}
			switch obj.(type) {
			case *types.Func, *types.Var:
			default:
				return true
			}
			key := obj.Pkg().Path() + "." + obj.Name()
			if names[key] {
				findings = append(findings, fmt.Sprintf("%s: %s", pkg.Fset.Position(sel.Pos()), key))
			}
			return true
		})
	}
	return findings
}
