package workbook

import (
	"fmt"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"
)

// xlsSource reads a BIFF workbook. The whole file is parsed on open.
type xlsSource struct {
	path string
	wb   xls.Workbook
}

func openXLS(path string) (*xlsSource, error) {
	wb, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &xlsSource{path: path, wb: wb}, nil
}

func (s *xlsSource) Rows() ([][]Cell, error) {
	if s.wb.GetNumberSheets() == 0 {
		return nil, ErrNoSheet
	}
	sheet, err := s.wb.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read first sheet of %s: %w", s.path, err)
	}

	n := sheet.GetNumberRows()
	rows := make([][]Cell, 0, n)
	for i := range n {
		// Absent rows come back as a single FakeBlank; padding in Read
		// widens them like any other short row.
		row, err := sheet.GetRow(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d of %s: %w", i, s.path, err)
		}
		cols := row.GetCols()
		if n == 1 && isAbsentRow(cols) {
			// GetNumberRows reports one row for an empty sheet.
			return [][]Cell{}, nil
		}
		cells := make([]Cell, 0, len(cols))
		for _, c := range cols {
			cells = append(cells, s.cell(c))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// isAbsentRow reports whether cols is the placeholder xlsReader returns for
// a row without records.
func isAbsentRow(cols []structure.CellData) bool {
	return len(cols) == 1 && strings.HasSuffix(cols[0].GetType(), ".FakeBlank")
}

func (s *xlsSource) cell(c structure.CellData) Cell {
	switch classifyXLS(c.GetType()) {
	case CellNumber:
		v := c.GetFloat64()
		if IsDateFormat(s.formatIndex(c), "") {
			return Cell{Type: CellDate, Number: v}
		}
		return Cell{Type: CellNumber, Number: v}
	case CellEmpty:
		return Cell{Type: CellEmpty}
	case CellBoolean:
		switch strings.ToUpper(c.GetString()) {
		case "TRUE", "1":
			return Cell{Type: CellBoolean, Bool: true}
		case "FALSE", "0":
			return Cell{Type: CellBoolean, Bool: false}
		default:
			return Cell{Type: CellError, Text: c.GetString()}
		}
	default:
		return Cell{Type: CellText, Text: c.GetString()}
	}
}

func (s *xlsSource) formatIndex(c structure.CellData) int {
	xf := s.wb.GetXFbyIndex(c.GetXFIndex())
	return xf.GetFormatIndex()
}

func (s *xlsSource) Close() error {
	return nil
}

// classifyXLS maps an xlsReader record type name such as "*record.LabelSSt"
// to a cell type. Number-like records are reported as CellNumber; the
// caller decides whether the format makes them a date.
func classifyXLS(recordType string) CellType {
	name := recordType[strings.LastIndex(recordType, ".")+1:]
	switch name {
	case "Number", "Rk", "MulRk":
		return CellNumber
	case "Blank", "MulBlank", "FakeBlank":
		return CellEmpty
	case "BoolErr":
		return CellBoolean
	default:
		return CellText
	}
}
