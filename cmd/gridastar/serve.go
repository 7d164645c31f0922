package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridastar/internal/server"
)

// defaultAddr reads GRIDASTAR_ADDR, then PORT, then falls back to :8080.
func defaultAddr() string {
	if addr := os.Getenv("GRIDASTAR_ADDR"); addr != "" {
		return addr
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return server.DefaultAddr
}

func newServeCmd(root *rootOptions) *cobra.Command {
	cfg := server.Config{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the path finding HTTP API",
		Long: `Serve the path finding HTTP API.

Endpoints:
  POST /api/path         find one path
  POST /api/paths        find several paths on one grid
  POST /api/render       render a search as an HTML table
  GET  /api/grid/random  generate a demo grid
  GET  /healthz

The listen address defaults to $GRIDASTAR_ADDR, then :$PORT, then :8080.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := root.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg.Logger = logger
			gin.SetMode(gin.ReleaseMode)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", defaultAddr(), "Listen address")
	cmd.Flags().StringVar(&cfg.AllowOrigin, "allow-origin", "*", "Access-Control-Allow-Origin value")
	cmd.Flags().DurationVar(&cfg.SearchTimeout, "timeout", server.DefaultSearchTimeout, "Per-request search timeout")
	cmd.Flags().IntVar(&cfg.MaxCells, "max-cells", server.DefaultMaxCells, "Largest grid accepted, in cells")
	cmd.Flags().IntVar(&cfg.MaxExpansions, "max-expansions", 0, "Expansion cap per search (0 = no cap)")
	cmd.Flags().IntVar(&cfg.Workers, "workers", 0, "Goroutines for /api/paths (0 = one per CPU)")

	return cmd
}
