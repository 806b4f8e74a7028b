package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/esgready/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var (
		addr string
		ai   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the evaluation HTTP API",
		Long: `Starts the HTTP API:

  GET  /healthz
  POST /v1/evaluate
  POST /v1/compare
  POST /v1/maturity
  GET  /v1/frameworks
  POST /v1/narrative

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  esgready serve
  esgready serve --addr 127.0.0.1:9090 --ai`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := currentConfig()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			eng, err := newEngine(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cmd.Printf("Listening on %s\n", addr)
			return server.New(eng, newNarrator(cfg, ai), logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&ai, "ai", false, "generate narratives with Gemini (needs GEMINI_API_KEY)")

	return cmd
}
