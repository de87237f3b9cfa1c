package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/giteki/internal/workbook"
)

// Output format names accepted by NewRowsWriter.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// RowsWriter writes the coerced rows of a spreadsheet.
type RowsWriter interface {
	// WriteRows writes rows and returns the number of bytes written.
	WriteRows(rows [][]workbook.Value) (int, error)
}

// NewRowsWriter returns the RowsWriter for format.
func NewRowsWriter(format string, output io.Writer) (RowsWriter, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		return NewJSONWriter(output), nil
	case FormatMarkdown, "md":
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s or %s)", format, FormatJSON, FormatMarkdown)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
