package cli

import (
	"github.com/spf13/cobra"

	"datadict/pkg/config"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying defaults, the config file,
DATADICT_ environment variables and flags. Secrets are masked.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := config.Dump(getConfig(cmd))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
