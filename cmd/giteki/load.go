package main

import (
	"fmt"

	"github.com/nao1215/giteki/internal/config"
	"github.com/nao1215/giteki/internal/database"
	"github.com/nao1215/giteki/internal/importer"
	"github.com/nao1215/giteki/internal/metrics"
	"github.com/spf13/cobra"
)

// NewLoadCmd creates the load command.
func NewLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load downloaded spreadsheets into the database",
		Long: `Load imports every .xls file of the source directory into a SQLite
database. Files that were loaded before are skipped, and records already
present in the database are not duplicated.

Examples:
  giteki load
  giteki load -s /var/lib/giteki --db ./giteki.db`,
		Args: cobra.NoArgs,
		RunE: runLoadCmd,
	}

	cmd.Flags().StringP("src", "s", config.DefaultDownloadDir,
		"Source directory of the spreadsheets to load")
	cmd.Flags().StringP("db", "d", "",
		"Database file (default: $XDG_DATA_HOME/giteki/giteki.db)")

	return cmd
}

// runLoadCmd executes the load command.
func runLoadCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := setupLogger(cmd)
	if err != nil {
		return err
	}

	src := cfg.DownloadDir
	if cmd.Flags().Changed("src") {
		if src, err = cmd.Flags().GetString("src"); err != nil {
			return err
		}
	}
	if err := applyDBFlag(cmd, cfg); err != nil {
		return err
	}

	db, err := database.Open(cfg.DBPath, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	logger.Info("database opened", "path", cfg.DBPath)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	m := metrics.New()
	results, err := importer.New(db, importer.WithLogger(logger), importer.WithMetrics(m)).ImportDir(ctx, src)
	if err != nil {
		return err
	}

	rows, err := m.StatusTotals(metrics.ImportedRowsTotal)
	if err != nil {
		return err
	}
	logger.Info("done load",
		"files", len(results),
		"inserted", rows[metrics.StatusOK],
		"skipped", rows[metrics.StatusSkipped],
	)
	return nil
}

// applyDBFlag overrides cfg.DBPath with --db when it is set.
func applyDBFlag(cmd *cobra.Command, cfg *config.Config) error {
	db, err := cmd.Flags().GetString("db")
	if err != nil {
		return err
	}
	if db != "" {
		cfg.DBPath = db
	}
	return nil
}
