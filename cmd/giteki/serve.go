package main

import (
	"fmt"

	"github.com/nao1215/giteki/internal/config"
	"github.com/nao1215/giteki/internal/database"
	"github.com/nao1215/giteki/internal/metrics"
	"github.com/nao1215/giteki/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the equipment database over HTTP",
		Long: `Serve starts a web server for the database written by "giteki load".

Endpoints:
  GET /                  search page
  GET /api/equipments    records as JSON (?q=, ?file=, ?limit=, ?offset=)
  GET /healthz           database health
  GET /metrics           Prometheus metrics

Examples:
  giteki serve
  giteki serve -b 127.0.0.1:8080 --db ./giteki.db`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("bind", "b", config.DefaultBind,
		"Address and port to listen on")
	cmd.Flags().StringP("db", "d", "",
		"Database file (default: $XDG_DATA_HOME/giteki/giteki.db)")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Bind, err = cmd.Flags().GetString("bind"); err != nil {
		return err
	}
	if err := applyDBFlag(cmd, cfg); err != nil {
		return err
	}

	logger, err := setupLogger(cmd)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBPath, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	srv := server.New(db,
		server.WithLogger(logger),
		server.WithMetrics(metrics.New()),
	)
	return srv.ListenAndServe(ctx, cfg.Bind)
}
