package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/giteki/internal/model"
)

// SummaryFileName returns the name of the download summary written on t,
// for example "download_summary_20150301.csv".
func SummaryFileName(t time.Time) string {
	return "download_summary_" + t.Format("20060102") + ".csv"
}

// CSVWriter writes download results as CSV rows without a header:
// filename, association, timestamp. Lines end with CRLF.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// WriteResults writes one row per result.
func (w *CSVWriter) WriteResults(results []model.DownloadResult) error {
	cw := csv.NewWriter(w.output)
	cw.UseCRLF = true
	for _, r := range results {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryFile writes results to SummaryFileName(now) inside dir and
// returns its path. Nothing is written when results is empty; the path is
// then "". An existing summary for the same day is replaced.
func WriteSummaryFile(dir string, results []model.DownloadResult, now time.Time) (path string, err error) {
	if len(results) == 0 {
		return "", nil
	}

	path = filepath.Join(dir, SummaryFileName(now))
	f, err := os.Create(path) //nolint:gosec // path is built from the download directory
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close summary file: %w", cerr)
		}
	}()

	if err := NewCSVWriter(f).WriteResults(results); err != nil {
		return "", fmt.Errorf("failed to write summary file: %w", err)
	}
	return path, nil
}
