package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/nao1215/giteki/internal/config"
	"github.com/nao1215/giteki/internal/crawler"
	"github.com/nao1215/giteki/internal/metrics"
	"github.com/nao1215/giteki/internal/report"
	"github.com/spf13/cobra"
)

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the certified radio equipment spreadsheets",
		Long: `Download fetches the certified radio equipment list page, saves the .xls
files it links to, and writes download_summary_YYYYMMDD.csv listing the
files saved by this run.

Only the domestic category is downloaded by default. Files already present
in the destination are skipped unless --update is given.

Examples:
  # Download the current domestic lists into ./downloads
  giteki download

  # Download every category including past lists
  giteki download --all

  # Re-download files that already exist
  giteki download -U -d /var/lib/giteki`,
		Args: cobra.NoArgs,
		RunE: runDownloadCmd,
	}

	cmd.Flags().StringP("dst", "d", config.DefaultDownloadDir,
		"Destination directory of the files to download")
	cmd.Flags().BoolP("all", "A", false,
		"Download all of the files, including the past lists")
	cmd.Flags().BoolP("update", "U", false,
		"Overwrite files that already exist")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout for each request (0 disables the timeout)")
	cmd.Flags().String("encoding", "",
		"Character encoding of the list page (default: detect)")

	return cmd
}

// runDownloadCmd executes the download command.
func runDownloadCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildDownloadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := setupLogger(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DownloadDir, 0750); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	m := metrics.New()
	c := crawler.NewCrawler(&http.Client{Timeout: cfg.Timeout}, cfg.DownloadDir,
		crawler.WithMetrics(m),
		crawler.WithBaseURL(cfg.BaseURL),
		crawler.WithDownloadTargets(cfg.DownloadTargets),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithEncoding(cfg.Encoding),
		crawler.WithLogger(logger),
	)
	results := c.Crawl(ctx, cfg.IndexURL, crawler.Options{
		DownloadAll: cfg.DownloadAll,
		Update:      cfg.Update,
	})

	path, err := report.WriteSummaryFile(cfg.DownloadDir, results, time.Now())
	if err != nil {
		return err
	}
	if path != "" {
		logger.Info("summary", "path", path, "files", len(results))
	}
	return logDownloadTotals(logger, m)
}

// logDownloadTotals reports the page and spreadsheet counters of one run.
func logDownloadTotals(logger *slog.Logger, m *metrics.Metrics) error {
	pages, err := m.StatusTotals(metrics.PagesTotal)
	if err != nil {
		return err
	}
	downloads, err := m.StatusTotals(metrics.DownloadsTotal)
	if err != nil {
		return err
	}
	logger.Info("download totals",
		"pages", pages[metrics.StatusOK],
		"pages_failed", pages[metrics.StatusError],
		"downloaded", downloads[metrics.StatusOK],
		"skipped", downloads[metrics.StatusSkipped],
		"failed", downloads[metrics.StatusError],
	)
	return nil
}

// buildDownloadConfig overlays changed flags on the file configuration.
func buildDownloadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if cfg.DownloadAll, err = flags.GetBool("all"); err != nil {
		return nil, err
	}
	if cfg.Update, err = flags.GetBool("update"); err != nil {
		return nil, err
	}
	if flags.Changed("dst") {
		if cfg.DownloadDir, err = flags.GetString("dst"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("encoding") {
		if cfg.Encoding, err = flags.GetString("encoding"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
