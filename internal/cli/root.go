// Package cli provides the datadict command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"datadict/internal/logger"
	"datadict/pkg/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var cfgFile string

type configKey struct{}

type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "datadict",
		Short: "datadict - data dictionary editor",
		Long: `datadict browses the data dictionary table catalog.schema.data_dict of a
database, lets you edit table and column descriptions, and writes the whole
dictionary back on save.

It can serve the editor over HTTP for browsers or over stdio as MCP tools.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, log)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config YAML")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text|json)")
	rootCmd.PersistentFlags().String("driver", "", "db driver override (postgres,pgx,mysql,sqlite,sqlserver,godror,duckdb)")
	rootCmd.PersistentFlags().String("dsn", "", "dsn override")
	rootCmd.PersistentFlags().Duration("timeout", 0, "timeout of each database call (default 30s)")
	rootCmd.PersistentFlags().Bool("demo", false, "use a built-in sample dictionary held in memory")

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewMCPCommand())
	rootCmd.AddCommand(NewBootstrapCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func getConfig(cmd *cobra.Command) config.AppConfig {
	cfg, _ := cmd.Context().Value(configKey{}).(config.AppConfig)
	return cfg
}

func getLogger(cmd *cobra.Command) *slog.Logger {
	if l, ok := cmd.Context().Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
