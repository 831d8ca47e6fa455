package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"datadict/internal/store"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and supported databases",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "datadict %s (%s, %s)\n", Version, GitCommit, runtime.Version())
			fmt.Fprintf(out, "registered dialects: %s\n", strings.Join(store.RegisteredDialects(), ", "))
		},
	}
}
