package bindgen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/aztecprotocol/barretenberg-go/internal/directive"
)

// File is the input to Render.
type File struct {
	Package         string
	BuildConstraint string
	IncludeDirs     []string
	LDFlags         []string
	Functions       []Function
}

type fileView struct {
	File
	Wrappers []wrapper
	Unsafe   bool
}

var fileTemplate = template.Must(template.New("bindings").Funcs(template.FuncMap{
	"join":    strings.Join,
	"include": includeFlags,
}).Parse(`// Code generated by bbgen. DO NOT EDIT.

{{if .BuildConstraint}}//go:build {{.BuildConstraint}}

{{end}}package {{.Package}}

/*
{{- if .IncludeDirs}}
#cgo CFLAGS: {{include .IncludeDirs}}
{{- end}}
{{- if .LDFlags}}
#cgo LDFLAGS: {{join .LDFlags " "}}
{{- end}}

#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>
{{range .Functions}}
{{.Prototype}}
{{- end}}
*/
import "C"
{{- if .Unsafe}}

import "unsafe"
{{- end}}
{{range .Wrappers}}
// {{.GoName}} calls {{.CName}}.
func {{.GoName}}({{.Params}}){{if .Result}} {{.Result}}{{end}} {
	{{if .Result}}return {{end}}C.{{.CName}}({{.Args}})
}
{{end}}`))

// Render produces the formatted Go source for f: the C prototypes in the cgo
// preamble and one exported Go function per prototype calling through to it.
// Output depends only on f.
func Render(f File) ([]byte, error) {
	if f.Package == "" {
		return nil, fmt.Errorf("rendering bindings: package name is empty")
	}
	view := fileView{File: f}
	names := make(map[string]string, len(f.Functions))
	for _, fn := range f.Functions {
		w, err := newWrapper(fn)
		if err != nil {
			return nil, fmt.Errorf("rendering bindings: %w", err)
		}
		if prev, ok := names[w.GoName]; ok {
			return nil, fmt.Errorf("rendering bindings: %s and %s both map to Go name %s", prev, fn.Name, w.GoName)
		}
		names[w.GoName] = fn.Name
		view.Wrappers = append(view.Wrappers, w)
		view.Unsafe = view.Unsafe || w.usesUnsafe()
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("rendering bindings: %w", err)
	}
	src, err := imports.Process("bindings.go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting bindings: %w", err)
	}
	return src, nil
}

func includeFlags(dirs []string) string {
	flags := make([]string, len(dirs))
	for i, d := range dirs {
		flags[i] = directive.QuoteFlag("-I" + d)
	}
	return strings.Join(flags, " ")
}
