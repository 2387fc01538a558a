// Package cli defines the bbgen command line.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aztecprotocol/barretenberg-go/internal/config"
	"github.com/aztecprotocol/barretenberg-go/internal/hostexec"
	"github.com/aztecprotocol/barretenberg-go/internal/logging"
	"github.com/aztecprotocol/barretenberg-go/internal/manifest"
	"github.com/aztecprotocol/barretenberg-go/internal/pipeline"
)

// Env is what a command reads from and writes to. Stdout carries only link
// directives; logs go to Stderr.
type Env struct {
	Lookup config.LookupFunc
	Runner hostexec.Runner
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessEnv binds Env to the running process.
func ProcessEnv() Env {
	return Env{
		Lookup: os.LookupEnv,
		Runner: hostexec.NewExec(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// NewRootCommand builds the bbgen command tree.
func NewRootCommand(env Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "bbgen",
		Short: "Generate cgo bindings for the Barretenberg native library",
		Long: `bbgen locates Barretenberg through pkg-config, prints the link
directives the build needs and writes cgo bindings for the exported
entry points into $OUT_DIR.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return generate(cmd.Context(), env)
		},
	}
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs bbgen against the process environment with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(ProcessEnv()).ExecuteContext(ctx)
}

func generate(ctx context.Context, env Env) error {
	cfg, err := config.FromEnv(env.Lookup)
	if err != nil {
		return err
	}
	logger, err := logging.NewText(env.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = logger.With("run", uuid.NewString())

	m, err := manifest.Default()
	if err != nil {
		return err
	}
	logger.Debug(ctx, "starting", "out_dir", cfg.OutDir, "library", m.Library.Name, "host_os", cfg.HostOS)

	_, err = pipeline.New(cfg, m, env.Runner, env.Stdout, logger).Run(ctx)
	return err
}
