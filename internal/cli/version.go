package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aztecprotocol/barretenberg-go/internal/buildinfo"
	"github.com/aztecprotocol/barretenberg-go/internal/manifest"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := manifest.Default()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bbgen %s (%s)\n", buildinfo.BinaryVersion(), buildinfo.Revision())
			fmt.Fprintf(out, "binds %s >= %s, < %s\n", m.Library.Name, m.Library.MinVersion, m.Library.MaxVersion)
			return nil
		},
	}
}
