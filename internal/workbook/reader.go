package workbook

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned by Open for file extensions other
	// than .xls, .xlsx and .xlsm.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

	// ErrNoSheet is returned when a workbook contains no worksheet.
	ErrNoSheet = errors.New("workbook has no sheet")
)

// Source yields the raw cells of the first sheet of a workbook.
type Source interface {
	// Rows returns the cells of the first sheet, top to bottom.
	Rows() ([][]Cell, error)

	// Close releases the underlying file.
	Close() error
}

// Open opens the spreadsheet at path, choosing the reader by extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		return openXLS(path)
	case ".xlsx", ".xlsm":
		return openXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Read coerces every row of src. Short rows are padded with blank cells
// to the width of the widest row, and rows keep their position even when
// all of their cells are dropped.
func Read(src Source) ([][]Value, error) {
	rows, err := src.Rows()
	if err != nil {
		return nil, err
	}

	width := 0
	for _, cells := range rows {
		width = max(width, len(cells))
	}

	result := make([][]Value, 0, len(rows))
	for _, cells := range rows {
		for len(cells) < width {
			cells = append(cells, Cell{Type: CellEmpty})
		}
		result = append(result, CoerceRow(cells))
	}
	return result, nil
}

// ReadFile opens path, reads it and closes it.
func ReadFile(path string) (result [][]Value, err error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return Read(src)
}
