package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronlens/internal/logger"
	"github.com/aatumaykin/cronlens/internal/metrics"
	"github.com/aatumaykin/cronlens/internal/server"
	"github.com/aatumaykin/cronlens/internal/version"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	Long: `Serve starts the HTTP API (validate, parse, describe, next) and,
when metrics are enabled, a Prometheus endpoint. It shuts down
gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.cfg
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	var (
		m   *metrics.Metrics
		reg = prometheus.NewRegistry()
	)
	if cfg.Metrics.Enabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(cfg.Metrics.Namespace, reg)
	}

	srv, err := server.New(server.Options{
		Config:   cfg,
		Logger:   app.log,
		Metrics:  m,
		Gatherer: reg,
	})
	if err != nil {
		return err
	}

	app.log.Info("🚀 Starting cronlens API",
		logger.Field{Key: "version", Value: version.Version},
		logger.Field{Key: "git_commit", Value: version.GitCommit},
		logger.Field{Key: "addr", Value: cfg.Server.Addr},
		logger.Field{Key: "locale", Value: cfg.Describe.Locale},
		logger.Field{Key: "metrics", Value: cfg.Metrics.Enabled})

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		app.log.Error("api server failed", err)
		return err
	}

	app.log.Info("👋 cronlens API stopped")
	return nil
}
