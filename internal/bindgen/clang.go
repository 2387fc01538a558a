package bindgen

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aztecprotocol/barretenberg-go/internal/builderr"
	"github.com/aztecprotocol/barretenberg-go/internal/hostexec"
	"github.com/aztecprotocol/barretenberg-go/internal/logging"
)

// ClangParser is the HeaderParser backed by clang's JSON AST dump.
type ClangParser struct {
	Runner hostexec.Runner
	Clang  string
	Logger logging.Logger
}

// Command returns the clang invocation for unit. The wrapper header is fed on
// standard input.
func (p *ClangParser) Command(unit Unit) hostexec.Command {
	args := make([]string, 0, len(unit.Args)+len(unit.IncludeDirs)+4)
	args = append(args, unit.Args...)
	for _, dir := range unit.IncludeDirs {
		args = append(args, "-I"+dir)
	}
	args = append(args, "-fsyntax-only", "-Xclang", "-ast-dump=json", "-")

	clang := p.Clang
	if clang == "" {
		clang = "clang"
	}
	return hostexec.Command{Name: clang, Args: args, Stdin: []byte(unit.Contents)}
}

// Parse implements HeaderParser. clang's output is decoded while clang runs.
// A clang run that exits non-zero is a front-end diagnostic carrying clang's
// trimmed standard error, and takes precedence over a decoding failure.
func (p *ClangParser) Parse(ctx context.Context, unit Unit) ([]Function, error) {
	cmd := p.Command(unit)
	log := p.logger()
	log.Debug(ctx, "parsing headers", "unit", unit.Name, "command", cmd.String())

	pr, pw := io.Pipe()
	cmd.Stdout = pw

	var (
		g   errgroup.Group
		res *hostexec.Result
	)
	g.Go(func() error {
		var err error
		res, err = p.Runner.Run(ctx, cmd)
		pw.CloseWithError(err)
		return err
	})

	fns, decodeErr := DecodeAST(pr)
	// Drain so clang never blocks on a full pipe after a decoding failure.
	_, _ = io.Copy(io.Discard, pr)

	if err := g.Wait(); err != nil {
		return nil, builderr.Wrap(builderr.KindBindgenGeneric, fmt.Sprintf("unable to run clang: %v", err), err)
	}
	stderr := strings.TrimSpace(string(res.Stderr))
	if !res.Success() {
		if stderr == "" {
			return nil, builderr.Newf(builderr.KindBindgenGeneric, "clang exited with status %d", res.ExitCode)
		}
		return nil, builderr.New(builderr.KindBindgenClangDiagnostic, stderr)
	}
	if stderr != "" {
		log.Warn(ctx, "clang reported warnings", "unit", unit.Name, "stderr", stderr)
	}
	if decodeErr != nil {
		return nil, builderr.Wrap(builderr.KindBindgenGeneric, decodeErr.Error(), decodeErr)
	}
	return fns, nil
}

func (p *ClangParser) logger() logging.Logger {
	if p.Logger == nil {
		return logging.Discard()
	}
	return p.Logger
}
