package main

import (
	"path/filepath"
	"strings"

	"github.com/nao1215/giteki/internal/report"
	"github.com/nao1215/giteki/internal/workbook"
	"github.com/spf13/cobra"
)

// NewReadCmd creates the read command.
func NewReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print the first sheet of a spreadsheet as JSON",
		Long: `Read prints the rows of the first sheet of a downloaded spreadsheet.

The default output is {"Result": [[...], ...]} on one line. Numbers are
printed without ".0", date cells as YYYY-MM-DD, and other cells as they
are stored.

Examples:
  giteki read --src downloads/2015_01.xls
  giteki read -s downloads/2015_01.xls --format markdown`,
		Args: cobra.NoArgs,
		RunE: runReadCmd,
	}

	cmd.Flags().StringP("src", "s", "", "Path of the spreadsheet to read (.xls, .xlsx)")
	cmd.Flags().StringP("format", "f", report.FormatJSON, "Output format: json or markdown")
	cmd.Flags().Bool("pretty", false, "Indent JSON output")
	_ = cmd.MarkFlagRequired("src")

	return cmd
}

// runReadCmd executes the read command.
func runReadCmd(cmd *cobra.Command, _ []string) error {
	src, err := cmd.Flags().GetString("src")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	pretty, err := cmd.Flags().GetBool("pretty")
	if err != nil {
		return err
	}

	var w report.RowsWriter
	switch {
	case format == report.FormatJSON && pretty:
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	case format == report.FormatMarkdown:
		w = report.NewMarkdownWriter(cmd.OutOrStdout(), report.WithTitle(filepath.Base(src)))
	default:
		if w, err = report.NewRowsWriter(format, cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	rows, err := workbook.ReadFile(src)
	if err != nil {
		return err
	}
	_, err = w.WriteRows(rows)
	return err
}
