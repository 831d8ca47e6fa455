package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"datadict/internal/view"
)

// NewBootstrapCommand creates the bootstrap command.
func NewBootstrapCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "bootstrap <catalog> <schema>",
		Short: "Fill a dictionary from the database catalog",
		Long: `Describe every table and column of catalog.schema and write one
dictionary entry for each into catalog.schema.data_dict, which must exist.
Comments already stored in the database become the initial descriptions.

An existing, non-empty dictionary is only rebuilt with --force; its written
descriptions are kept for entries that still exist.`,
		Example: `  datadict bootstrap main sales --driver sqlite --dsn ./warehouse.db`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			logger := getLogger(cmd)
			if cfg.Demo {
				return fmt.Errorf("bootstrap needs a database, not demo mode")
			}

			st, err := openSQL(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			name := view.DatasetName(strings.TrimSpace(args[0]), strings.TrimSpace(args[1]))
			n, err := st.Bootstrap(cmd.Context(), name, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", n, name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "rebuild a dictionary that already has entries")
	return cmd
}
