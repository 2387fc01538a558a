package directive

import (
	"fmt"
	"io"
)

// Emitter writes directives to the build as they are produced and keeps the
// ordered record used to render the generated bindings.
type Emitter struct {
	w       io.Writer
	emitted []Directive
	seen    map[Directive]bool
}

// NewEmitter returns an Emitter writing protocol lines to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w, seen: make(map[Directive]bool)}
}

// Emit writes each directive on its own line, in order. A directive already
// emitted is skipped.
func (e *Emitter) Emit(ds ...Directive) error {
	for _, d := range ds {
		if e.seen[d] {
			continue
		}
		if _, err := fmt.Fprintln(e.w, d.String()); err != nil {
			return fmt.Errorf("emitting %s: %w", d, err)
		}
		e.seen[d] = true
		e.emitted = append(e.emitted, d)
	}
	return nil
}

// Directives returns everything emitted so far.
func (e *Emitter) Directives() []Directive {
	out := make([]Directive, len(e.emitted))
	copy(out, e.emitted)
	return out
}
