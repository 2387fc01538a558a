// Package diag renders terminal build failures for humans and maps them to
// process exit codes.
//
// A Hook is installed once at the top of the process. Returned errors go
// through Report; a panic reaching the top goes through Recover, which prints
// the same report and exits with ExitPanic.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aztecprotocol/barretenberg-go/internal/builderr"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitPanic   = 2
)

// Hook writes failure reports to one writer.
type Hook struct {
	mu sync.Mutex
	w  io.Writer
}

// Install returns a Hook reporting to w, normally os.Stderr.
func Install(w io.Writer) *Hook {
	return &Hook{w: w}
}

// Report prints err and returns the exit code for it. A nil err reports
// nothing and returns ExitOK.
func (h *Hook) Report(err error) int {
	if err == nil {
		return ExitOK
	}
	h.write(Format(err))
	return ExitFailure
}

// Recover must be deferred directly. It turns a panic into a report and sets
// *code to ExitPanic; without a panic it does nothing.
func (h *Hook) Recover(code *int) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	h.write(Format(err) + "\nThe build aborted.\n")
	*code = ExitPanic
}

func (h *Hook) write(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = io.WriteString(h.w, s)
}

// Format renders err and its causes, outermost first:
//
//	Error:
//	   0: Failed to write /out/bindings.go with bbgen.
//	   1: permission denied
//
//	Kind: bindgen-write
func Format(err error) string {
	var b strings.Builder
	b.WriteString("Error:\n")
	for i, msg := range chain(err) {
		fmt.Fprintf(&b, "%4d: %s\n", i, indent(msg))
	}
	if kind := builderr.KindOf(err); kind != "" {
		fmt.Fprintf(&b, "\nKind: %s\n", kind)
	}
	return b.String()
}

// chain lists the messages along err's Unwrap chain, skipping a cause whose
// text the previous message already contains.
func chain(err error) []string {
	var msgs []string
	for ; err != nil; err = errors.Unwrap(err) {
		msg := err.Error()
		if n := len(msgs); n > 0 && strings.Contains(msgs[n-1], msg) {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func indent(msg string) string {
	return strings.ReplaceAll(strings.TrimRight(msg, "\n"), "\n", "\n      ")
}
