package hostexec

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// Response is a canned answer for Fake.
type Response struct {
	Result *Result
	Err    error
}

// Fake is a Runner that answers from a table keyed by Command.String().
// Commands missing from the table fail as if the executable were not on PATH.
type Fake struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []Command
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{responses: make(map[string]Response)}
}

// On registers the output for a command line.
func (f *Fake) On(cmdline string, stdout, stderr string, exitCode int) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = Response{Result: &Result{
		Stdout:   []byte(stdout),
		Stderr:   []byte(stderr),
		ExitCode: exitCode,
	}}
	return f
}

// OnBytes registers raw stdout for a command line that exits zero.
func (f *Fake) OnBytes(cmdline string, stdout []byte) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = Response{Result: &Result{Stdout: stdout}}
	return f
}

// OnError registers a launch failure for a command line.
func (f *Fake) OnError(cmdline string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = Response{Err: err}
	return f
}

// Run implements Runner. A command with a Stdout writer receives the canned
// output through it.
func (f *Fake) Run(_ context.Context, cmd Command) (*Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	resp, ok := f.responses[cmd.String()]
	f.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("running %s: %w", cmd.Name, exec.ErrNotFound)
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	r := *resp.Result
	if cmd.Stdout != nil {
		if _, err := cmd.Stdout.Write(r.Stdout); err != nil {
			return nil, fmt.Errorf("running %s: %w", cmd.Name, err)
		}
		r.Stdout = nil
	}
	return &r, nil
}

// Calls returns the commands run so far, in order.
func (f *Fake) Calls() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Command, len(f.calls))
	copy(out, f.calls)
	return out
}
