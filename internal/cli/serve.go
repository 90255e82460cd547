package cli

import (
	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/internal/server"
)

// newServeCmd creates the serve command for running the HTTP render service.
func newServeCmd() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run an HTTP service exposing the render pipeline.

Endpoints:

  GET  /healthz   liveness probe
  GET  /version   build and Graphviz version info
  POST /render    render a JSON request body to an artifact

With [cache] redis_addr configured, artifacts are cached in Redis so
multiple instances share a cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner := newRunner(ctx, cfg, noCache, logger)
			defer func() { _ = runner.Cache.Close() }()

			srv := server.New(runner, logger, addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8480)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
