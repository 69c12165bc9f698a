// Package cli holds the costbench commands.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewCommand returns the root command for the costbench CLI. Reports go to
// out, diagnostics to errOut.
func NewCommand(out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costbench",
		Short: "construction, dispatch and failure cost benchmarks",
		Long: `costbench times a static dispatch type against an interface dispatch type:
stack and heap construction, method calls, and guarded failing calls.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.AddCommand(
		newRunCommand(),
		newListCommand(),
	)
	return cmd
}
