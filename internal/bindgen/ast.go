package bindgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// The JSON dump of a translation unit that pulls in the C++ standard library
// runs to hundreds of megabytes. astDecoder walks it token by token and keeps
// only the function declarations that have C language linkage; every other
// subtree is skipped without being materialised.
type astDecoder struct {
	dec  *json.Decoder
	fns  []Function
	seen map[string]bool
}

// astNode holds the fields bbgen reads from one node. Children are consumed
// while the node is decoded and are not retained, except the parameters of a
// function declaration.
type astNode struct {
	Kind         string
	Name         string
	Language     string
	StorageClass string
	IsImplicit   bool
	Type         *astType
	Params       []Param
}

type astType struct {
	QualType          string `json:"qualType"`
	DesugaredQualType string `json:"desugaredQualType"`
}

// spelling prefers the sugared name unless it is namespace qualified.
func (t *astType) spelling() string {
	if t == nil {
		return ""
	}
	if strings.Contains(t.QualType, "::") && t.DesugaredQualType != "" {
		return t.DesugaredQualType
	}
	return t.QualType
}

// DecodeAST reads a clang -ast-dump=json translation unit and returns the
// function declarations with C language linkage, in source order. Only
// declarations reached through an extern "C" block are kept; redeclarations
// keep the first occurrence.
func DecodeAST(r io.Reader) ([]Function, error) {
	d := &astDecoder{dec: json.NewDecoder(r), seen: make(map[string]bool)}
	root, err := d.node(false)
	if err != nil {
		return nil, fmt.Errorf("decoding clang AST: %w", err)
	}
	if root.Kind != "TranslationUnitDecl" {
		return nil, fmt.Errorf("decoding clang AST: root is %q, want TranslationUnitDecl", root.Kind)
	}
	return d.fns, nil
}

// node decodes one object. inC reports whether the node sits inside an
// extern "C" block.
func (d *astDecoder) node(inC bool) (*astNode, error) {
	if err := d.delim('{'); err != nil {
		return nil, err
	}
	n := &astNode{}
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		switch key {
		case "kind":
			err = d.dec.Decode(&n.Kind)
		case "name":
			err = d.dec.Decode(&n.Name)
		case "language":
			err = d.dec.Decode(&n.Language)
		case "storageClass":
			err = d.dec.Decode(&n.StorageClass)
		case "isImplicit":
			err = d.dec.Decode(&n.IsImplicit)
		case "type":
			n.Type = &astType{}
			err = d.dec.Decode(n.Type)
		case "inner":
			err = d.inner(n, inC)
		default:
			err = d.skip()
		}
		if err != nil {
			return nil, err
		}
	}
	if err := d.delim('}'); err != nil {
		return nil, err
	}
	return n, nil
}

// inner consumes the children of n. Scopes are descended, a function
// declaration keeps its parameters and everything else is skipped.
func (d *astDecoder) inner(n *astNode, inC bool) error {
	switch n.Kind {
	case "":
		return errors.New("node children appear before its kind")
	case "TranslationUnitDecl", "NamespaceDecl", "ExportDecl", "LinkageSpecDecl":
		if n.Kind == "LinkageSpecDecl" {
			inC = n.Language == "C"
		}
		return d.array(func() error {
			child, err := d.node(inC)
			if err != nil {
				return err
			}
			if inC && child.Kind == "FunctionDecl" {
				return d.add(child)
			}
			return nil
		})
	case "FunctionDecl":
		return d.array(func() error {
			child, err := d.node(false)
			if err != nil {
				return err
			}
			if child.Kind == "ParmVarDecl" {
				n.Params = append(n.Params, Param{Name: child.Name, Type: child.Type.spelling()})
			}
			return nil
		})
	default:
		return d.skip()
	}
}

func (d *astDecoder) add(n *astNode) error {
	if n.IsImplicit || n.StorageClass == "static" || n.Name == "" || d.seen[n.Name] {
		return nil
	}
	fn, err := functionFromNode(n)
	if err != nil {
		return err
	}
	d.seen[n.Name] = true
	d.fns = append(d.fns, fn)
	return nil
}

func (d *astDecoder) array(each func() error) error {
	if err := d.delim('['); err != nil {
		return err
	}
	for d.dec.More() {
		if err := each(); err != nil {
			return err
		}
	}
	return d.delim(']')
}

func (d *astDecoder) delim(want json.Delim) error {
	tok, err := d.dec.Token()
	if err != nil {
		return err
	}
	if got, ok := tok.(json.Delim); !ok || got != want {
		return fmt.Errorf("expected %q, found %v", want, tok)
	}
	return nil
}

// skip discards the next value, however deeply nested.
func (d *astDecoder) skip() error {
	depth := 0
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return err
		}
		switch tok {
		case json.Delim('{'), json.Delim('['):
			depth++
		case json.Delim('}'), json.Delim(']'):
			depth--
		}
		if depth == 0 {
			return nil
		}
	}
}

func functionFromNode(n *astNode) (Function, error) {
	fn := Function{Name: n.Name, Params: n.Params}
	if n.Type == nil {
		return fn, fmt.Errorf("function %s has no type", n.Name)
	}
	sig := n.Type.spelling()
	result, ok := resultType(sig)
	if !ok {
		return fn, fmt.Errorf("function %s: cannot read return type from %q", n.Name, sig)
	}
	fn.Result = result
	fn.Variadic = strings.HasSuffix(strings.TrimSpace(sig[:strings.LastIndex(sig, ")")]), "...")
	return fn, nil
}
