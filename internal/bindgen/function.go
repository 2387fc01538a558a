package bindgen

import (
	"fmt"
	"strings"
)

// Function is one C-callable declaration found in the headers.
type Function struct {
	Name     string
	Result   string
	Params   []Param
	Variadic bool
}

// Param is a function parameter. Name may be empty in the headers.
type Param struct {
	Name string
	Type string
}

// Prototype renders the function as a C declaration terminated by a
// semicolon. Unnamed parameters are called arg<i>.
func (f Function) Prototype() string {
	params := make([]string, 0, len(f.Params)+1)
	for i, p := range f.Params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		params = append(params, declare(p.Type, name))
	}
	if f.Variadic {
		params = append(params, "...")
	}
	if len(params) == 0 {
		params = append(params, "void")
	}
	return fmt.Sprintf("%s(%s);", declare(f.Result, f.Name), strings.Join(params, ", "))
}

// declare places name inside a C type spelling: after a trailing pointer,
// inside a function-pointer declarator, or before array bounds.
func declare(typ, name string) string {
	typ = strings.TrimSpace(typ)
	switch {
	case strings.Contains(typ, "(*)"):
		return strings.Replace(typ, "(*)", "(*"+name+")", 1)
	case strings.Contains(typ, "["):
		i := strings.Index(typ, "[")
		return strings.TrimSpace(typ[:i]) + " " + name + typ[i:]
	case strings.HasSuffix(typ, "*"):
		return typ + name
	default:
		return typ + " " + name
	}
}

// cxxOnly reports whether a type spelling cannot appear in a C declaration.
func cxxOnly(typ string) bool {
	return strings.Contains(typ, "&") || strings.Contains(typ, "::") || strings.Contains(typ, "<")
}

// resultType extracts the return type from a function type spelling such as
// "size_t (const uint8_t *, uint8_t **)".
func resultType(fnType string) (string, bool) {
	end := strings.LastIndex(fnType, ")")
	if end < 0 {
		return "", false
	}
	depth := 0
	for i := end; i >= 0; i-- {
		switch fnType[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return strings.TrimSpace(fnType[:i]), true
			}
		}
	}
	return "", false
}
