package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nao1215/giteki/internal/config"
	"github.com/nao1215/giteki/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for giteki.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "giteki",
		Short: "Download and browse the Japanese certified radio equipment list",
		Long: `giteki collects the list of radio equipment that received construction
design certification (技適) from the Ministry of Internal Affairs and
Communications.

  download  fetch the published spreadsheets and write a summary CSV
  read      print the first sheet of a spreadsheet as JSON
  load      import downloaded spreadsheets into a SQLite database
  serve     browse the database over HTTP`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .giteki in current or home directory)")

	cmd.AddCommand(NewDownloadCmd())
	cmd.AddCommand(NewReadCmd())
	cmd.AddCommand(NewLoadCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the logger selected by --verbose and --log-format.
// Logs go to the command's stderr.
func setupLogger(cmd *cobra.Command) (*slog.Logger, error) {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, err
	}
	return newLogger(cmd.ErrOrStderr(), format, getVerboseFlag(cmd))
}

func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return log.NewLogger(w, verbose), nil
	case "json":
		return log.NewJSONLogger(w, verbose), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
}

// loadConfig builds a Config from defaults and the configuration file.
// A file named with --config must exist; otherwise a missing file is
// ignored.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = path
	cfg.Verbose = getVerboseFlag(cmd)

	found := config.FindConfigFile(path)
	switch {
	case found != "":
		f, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cfg.Apply(f)
	case path != "":
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}
	return cfg, nil
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
