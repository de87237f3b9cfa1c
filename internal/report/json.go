package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/giteki/internal/workbook"
)

// JSONWriter outputs values as JSON. Non-ASCII text and HTML characters
// are written verbatim.
type JSONWriter struct {
	baseWriter

	// indent is the per-level indentation; empty means compact output.
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ReadResult is the document printed by the read command.
type ReadResult struct {
	Result [][]workbook.Value `json:"Result"`
}

// WriteRows writes {"Result": rows} followed by a newline.
func (w *JSONWriter) WriteRows(rows [][]workbook.Value) (int, error) {
	if rows == nil {
		rows = [][]workbook.Value{}
	}
	return w.Write(ReadResult{Result: rows})
}

// Write marshals v and writes it followed by a newline.
func (w *JSONWriter) Write(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indent != "" {
		enc.SetIndent("", w.indent)
	}
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
