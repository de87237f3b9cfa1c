package workbook

import (
	"math"
	"strconv"
	"strings"
)

// DateLayout is the output format of date cells.
const DateLayout = "2006-01-02"

// Coerce converts a raw cell to its output value. The second result is
// false when the cell must be dropped from the row, which happens only for
// dates that cannot be converted.
func Coerce(c Cell) (Value, bool) {
	switch c.Type {
	case CellNumber:
		return strings.ReplaceAll(FormatFloat(c.Number), ".0", ""), true
	case CellDate:
		t, ok := SerialToTime(c.Number)
		if !ok {
			return nil, false
		}
		return t.Format(DateLayout), true
	case CellBoolean:
		return c.Bool, true
	case CellEmpty:
		return "", true
	default:
		return c.Text, true
	}
}

// CoerceRow applies Coerce to each cell, omitting dropped cells.
func CoerceRow(cells []Cell) []Value {
	row := make([]Value, 0, len(cells))
	for _, c := range cells {
		if v, ok := Coerce(c); ok {
			row = append(row, v)
		}
	}
	return row
}

// FormatFloat renders f as its shortest round-trip decimal. Integral
// values keep a ".0" suffix and magnitudes at or above 1e16 or below 1e-4
// use exponent notation: 42 -> "42.0", 10.05 -> "10.05", 1e16 -> "1e+16".
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		switch {
		case math.IsNaN(f):
			return "nan"
		case f > 0:
			return "inf"
		default:
			return "-inf"
		}
	}

	abs := math.Abs(f)
	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
