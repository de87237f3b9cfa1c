package workbook

// CellType classifies a spreadsheet cell.
type CellType int

const (
	// CellEmpty is a blank cell.
	CellEmpty CellType = iota
	// CellText is a string cell.
	CellText
	// CellNumber is a numeric cell without a date format.
	CellNumber
	// CellDate is a numeric cell formatted as a date; Number holds the
	// serial in the 1900 date system.
	CellDate
	// CellBoolean is a TRUE/FALSE cell.
	CellBoolean
	// CellError is a formula error such as #N/A; Text holds the error.
	CellError
)

// String returns the name of the cell type.
func (t CellType) String() string {
	switch t {
	case CellEmpty:
		return "empty"
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellDate:
		return "date"
	case CellBoolean:
		return "boolean"
	case CellError:
		return "error"
	default:
		return "unknown"
	}
}

// Cell is one raw cell as read from a workbook.
type Cell struct {
	Type   CellType
	Text   string
	Number float64
	Bool   bool
}

// Value is a coerced cell: a string for text, numbers, dates and errors,
// a bool for boolean cells, and "" for blank cells.
type Value = any
