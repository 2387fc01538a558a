package bindgen

import "context"

// Unit is the translation unit handed to the front end. Contents is the
// inlined wrapper header; nothing is read from the header tree except what
// its #include lines pull in.
type Unit struct {
	Name        string
	Contents    string
	Args        []string
	IncludeDirs []string
}

// HeaderParser parses a Unit and returns every function declaration it can
// see, in discovery order.
type HeaderParser interface {
	Parse(ctx context.Context, unit Unit) ([]Function, error)
}
