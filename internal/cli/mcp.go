package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"datadict/internal/mcptools"
	"datadict/internal/view"
)

// NewMCPCommand creates the mcp command.
func NewMCPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the editor as MCP tools over stdio",
		Long: `Run an MCP server on stdin/stdout. The process holds a single editor
session shared by every tool call. Logs go to stderr.`,
		RunE: runMCP,
	}
	cmd.Flags().Int("page-size", 0, "rows per page (default 20)")
	return cmd
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	st, err := openStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sess := view.NewSession(view.Machine{Store: st, Timeout: cfg.Storage.Timeout}, cfg.Editor.PageSize, logger)

	s := server.NewMCPServer(
		"datadict",
		Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)
	mcptools.RegisterTools(s, sess)

	logger.Info("serving MCP over stdio")
	return server.ServeStdio(s)
}
