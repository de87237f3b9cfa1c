// Package report writes command output.
//
//   - CSVWriter: the download summary, one row per saved spreadsheet
//   - JSONWriter: spreadsheet rows as {"Result": [[...], ...]}
//   - MarkdownWriter: spreadsheet rows as a Markdown table
//
// JSONWriter and MarkdownWriter implement RowsWriter so the read command
// can pick one by name.
package report
