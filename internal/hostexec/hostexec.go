// Package hostexec is the single place bbgen spawns host processes.
//
// Discovery components depend on the Runner interface rather than os/exec so
// tests can substitute Fake and never start a real compiler, pkg-config or
// package manager.
package hostexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes one process invocation.
type Command struct {
	Name  string
	Args  []string
	Stdin []byte

	// Env is appended to the current process environment.
	Env []string

	// Stdout, when set, receives standard output as it is produced and
	// Result.Stdout stays empty.
	Stdout io.Writer
}

// String renders the command line for logs and fake lookups.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds the captured output of a process that ran to completion.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs a command and captures its output. A non-nil error means the
// process could not be started or was interrupted; a process that ran and
// exited non-zero is reported through Result.ExitCode with a nil error.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Exec runs commands on the host with os/exec.
type Exec struct{}

// NewExec returns a Runner backed by os/exec.
func NewExec() *Exec {
	return &Exec{}
}

// Run starts cmd and waits for it. No timeout is applied beyond ctx.
func (Exec) Run(ctx context.Context, cmd Command) (*Result, error) {
	//nolint:gosec // G204: command names come from bbgen configuration
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	if cmd.Stdin != nil {
		c.Stdin = bytes.NewReader(cmd.Stdin)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	if cmd.Stdout != nil {
		c.Stdout = cmd.Stdout
	}
	c.Stderr = &stderr

	err := c.Run()
	result := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("running %s: %w", cmd.Name, err)
	}
	return result, nil
}
