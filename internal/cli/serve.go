package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reoring/draftkit/internal/server"
)

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start an HTTP server exposing detection, migration and validation.

The server provides:
- REST API under /api/v1
- Prometheus metrics at /metrics
- Health check at /health

Examples:
  draftkit serve
  draftkit serve --host 0.0.0.0 --port 9000 --cors`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(a.serverConfig()).Run(ctx)
		},
	}

	f := cmd.Flags()
	f.StringP("host", "H", "localhost", "server host")
	f.IntP("port", "p", 8080, "server port")
	f.Bool("metrics", true, "enable the /metrics endpoint")
	f.Bool("cors", false, "enable CORS headers")
	f.Int64("max-body", 10<<20, "maximum request body size in bytes")
	for _, name := range []string{"host", "port", "metrics", "cors", "max-body"} {
		_ = a.v.BindPFlag("server."+name, f.Lookup(name))
	}
	return cmd
}

func (a *app) serverConfig() *server.Config {
	cfg := server.DefaultConfig()
	cfg.Host = a.v.GetString("server.host")
	cfg.Port = a.v.GetInt("server.port")
	cfg.EnableMetrics = a.v.GetBool("server.metrics")
	cfg.EnableCORS = a.v.GetBool("server.cors")
	cfg.MaxBodyBytes = a.v.GetInt64("server.max-body")
	return cfg
}
