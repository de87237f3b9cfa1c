package workbook

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// xlsxSource reads an Office Open XML workbook.
type xlsxSource struct {
	path string
	f    *excelize.File
}

func openXLSX(path string) (*xlsxSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &xlsxSource{path: path, f: f}, nil
}

func (s *xlsxSource) Rows() ([][]Cell, error) {
	sheets := s.f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	sheet := sheets[0]

	raw, err := s.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", s.path, err)
	}

	rows := make([][]Cell, 0, len(raw))
	for r, values := range raw {
		cells := make([]Cell, 0, len(values))
		for c, v := range values {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			cell, err := s.cell(sheet, name, v)
			if err != nil {
				return nil, err
			}
			cells = append(cells, cell)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (s *xlsxSource) cell(sheet, name, v string) (Cell, error) {
	if v == "" {
		return Cell{Type: CellEmpty}, nil
	}
	typ, err := s.f.GetCellType(sheet, name)
	if err != nil {
		return Cell{}, fmt.Errorf("failed to get type of %s: %w", name, err)
	}

	switch typ {
	case excelize.CellTypeBool:
		return Cell{Type: CellBoolean, Bool: v == "1" || v == "TRUE"}, nil
	case excelize.CellTypeError:
		return Cell{Type: CellError, Text: v}, nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return Cell{Type: CellText, Text: v}, nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeFormula:
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			return Cell{Type: CellText, Text: v}, nil
		}
		isDate, err := s.isDate(sheet, name)
		if err != nil {
			return Cell{}, err
		}
		if isDate {
			return Cell{Type: CellDate, Number: f}, nil
		}
		return Cell{Type: CellNumber, Number: f}, nil
	default:
		return Cell{Type: CellText, Text: v}, nil
	}
}

func (s *xlsxSource) isDate(sheet, name string) (bool, error) {
	idx, err := s.f.GetCellStyle(sheet, name)
	if err != nil {
		return false, fmt.Errorf("failed to get style of %s: %w", name, err)
	}
	if idx == 0 {
		return false, nil
	}
	style, err := s.f.GetStyle(idx)
	if err != nil {
		return false, fmt.Errorf("failed to get style %d: %w", idx, err)
	}
	code := ""
	if style.CustomNumFmt != nil {
		code = *style.CustomNumFmt
	}
	return IsDateFormat(style.NumFmt, code), nil
}

func (s *xlsxSource) Close() error {
	return s.f.Close()
}
