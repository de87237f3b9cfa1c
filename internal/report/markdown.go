package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/giteki/internal/workbook"
	"github.com/nao1215/markdown"
)

// MarkdownWriter renders spreadsheet rows as a Markdown table. The first
// row becomes the header.
type MarkdownWriter struct {
	baseWriter

	title string
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithTitle adds a level-one heading above the table.
func WithTitle(title string) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.title = title
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteRows writes rows as a table. Rows shorter than the header are
// padded with empty cells.
func (w *MarkdownWriter) WriteRows(rows [][]workbook.Value) (int, error) {
	md := markdown.NewMarkdown(w.output)
	if w.title != "" {
		md.H1(w.title)
		md.PlainText("")
	}

	if len(rows) == 0 {
		md.PlainText("_No rows._")
		return len(md.String()), md.Build()
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	md.Table(markdown.TableSet{
		Header: markdownRow(rows[0], width),
		Rows:   markdownRows(rows[1:], width),
	})
	return len(md.String()), md.Build()
}

func markdownRows(rows [][]workbook.Value, width int) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, markdownRow(r, width))
	}
	return out
}

func markdownRow(row []workbook.Value, width int) []string {
	out := make([]string, width)
	for i, v := range row {
		out[i] = markdownCell(v)
	}
	return out
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func markdownCell(v workbook.Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return cellEscaper.Replace(x)
	default:
		return cellEscaper.Replace(fmt.Sprint(x))
	}
}
