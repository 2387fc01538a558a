package bindgen

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
)

// cgoNames maps multi-word and keyword C scalar types to their cgo names.
var cgoNames = map[string]string{
	"signed char":            "schar",
	"unsigned char":          "uchar",
	"unsigned short":         "ushort",
	"unsigned short int":     "ushort",
	"short int":              "short",
	"unsigned":               "uint",
	"unsigned int":           "uint",
	"unsigned long":          "ulong",
	"unsigned long int":      "ulong",
	"long int":               "long",
	"long long":              "longlong",
	"long long int":          "longlong",
	"unsigned long long":     "ulonglong",
	"unsigned long long int": "ulonglong",
	"_Bool":                  "bool",
}

// goType returns the Go spelling cgo uses for a C parameter or result type.
// A bare void yields "". Arrays decay to pointers and function pointers
// become *[0]byte.
func goType(ctype string) (string, error) {
	t := strings.TrimSpace(ctype)
	if strings.Contains(t, "(*)") {
		return "*[0]byte", nil
	}
	stars := 0
	if i := strings.Index(t, "["); i >= 0 {
		t = t[:i]
		stars++
	}
	stars += strings.Count(t, "*")
	t = strings.ReplaceAll(t, "*", " ")

	var words []string
	for _, w := range strings.Fields(t) {
		switch w {
		case "const", "volatile", "restrict", "__restrict":
			continue
		}
		words = append(words, w)
	}
	base := strings.Join(words, " ")

	switch {
	case base == "void" && stars == 0:
		return "", nil
	case base == "void":
		return strings.Repeat("*", stars-1) + "unsafe.Pointer", nil
	}

	name, ok := cgoNames[base]
	switch {
	case ok:
	case len(words) == 2 && (words[0] == "struct" || words[0] == "union" || words[0] == "enum"):
		name = words[0] + "_" + words[1]
	case len(words) == 1 && isCIdent(base):
		name = base
	default:
		return "", fmt.Errorf("no cgo type for %q", ctype)
	}
	return strings.Repeat("*", stars) + "C." + name, nil
}

func isCIdent(s string) bool {
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return s != ""
}

// exportedName turns a C symbol such as new_pippenger into NewPippenger.
func exportedName(sym string) string {
	var b strings.Builder
	for _, part := range strings.Split(sym, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}

// paramName turns a C parameter name into a Go identifier that cannot clash
// with keywords or the C and unsafe pseudo-packages.
func paramName(name string, i int) string {
	if name == "" {
		return fmt.Sprintf("arg%d", i)
	}
	var b strings.Builder
	for j, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		if j > 0 && b.Len() > 0 {
			part = strings.ToUpper(part[:1]) + part[1:]
		}
		b.WriteString(part)
	}
	id := b.String()
	if id == "" {
		return fmt.Sprintf("arg%d", i)
	}
	if token.IsKeyword(id) || id == "C" || id == "unsafe" {
		id += "_"
	}
	return id
}

// wrapper is the Go function rendered for one native entry point.
type wrapper struct {
	GoName string
	CName  string
	Params string
	Args   string
	Result string
}

func newWrapper(fn Function) (wrapper, error) {
	w := wrapper{GoName: exportedName(fn.Name), CName: fn.Name}
	if fn.Variadic {
		return w, fmt.Errorf("function %s is variadic and cannot be called through cgo", fn.Name)
	}

	params := make([]string, len(fn.Params))
	args := make([]string, len(fn.Params))
	used := make(map[string]bool, len(fn.Params))
	for i, p := range fn.Params {
		typ, err := goType(p.Type)
		if err != nil {
			return w, fmt.Errorf("function %s: %w", fn.Name, err)
		}
		if typ == "" {
			return w, fmt.Errorf("function %s: parameter %d has type void", fn.Name, i)
		}
		name := paramName(p.Name, i)
		if used[name] {
			name = fmt.Sprintf("%s%d", name, i)
		}
		used[name] = true
		params[i] = name + " " + typ
		args[i] = name
	}
	w.Params = strings.Join(params, ", ")
	w.Args = strings.Join(args, ", ")

	result, err := goType(fn.Result)
	if err != nil {
		return w, fmt.Errorf("function %s result: %w", fn.Name, err)
	}
	w.Result = result
	return w, nil
}

func (w wrapper) usesUnsafe() bool {
	return strings.Contains(w.Params, "unsafe.Pointer") || strings.Contains(w.Result, "unsafe.Pointer")
}
