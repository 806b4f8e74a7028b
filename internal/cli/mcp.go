package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/esgready/internal/mcpserver"
)

// NewMCPCmd creates the mcp command.
func NewMCPCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve evaluation tools over the Model Context Protocol (stdio)",
		Long: `Runs an MCP server on stdin/stdout exposing esg_evaluate, esg_maturity,
esg_compare and esg_frameworks. Logs go to stderr or the configured log file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := newEngine(currentConfig())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info().Ctx(ctx).Msg("MCP server listening on stdio")
			return mcpserver.ServeStdio(ctx, mcpserver.New(eng, ver), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
