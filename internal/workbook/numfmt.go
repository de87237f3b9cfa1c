package workbook

import "strings"

// builtinDateFormats are the built-in number format IDs that render a
// date or time. 27-36 and 50-58 are the East Asian locale formats such as
// yyyy"年"m"月"d"日".
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// IsDateFormat reports whether a number format renders dates. id is the
// format ID; code is the format string of a custom format and is ignored
// for built-in IDs.
func IsDateFormat(id int, code string) bool {
	if builtinDateFormats[id] {
		return true
	}
	if code == "" {
		return false
	}
	return isDateFormatCode(code)
}

// isDateFormatCode looks for date or time tokens outside quoted literals,
// escapes and bracketed sections of a format code.
func isDateFormatCode(code string) bool {
	// Only the positive section decides.
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}

	inQuote := false
	inBracket := false
	escaped := false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			if r == '"' {
				inQuote = false
			}
		case inBracket:
			if r == ']' {
				inBracket = false
			}
		case r == '\\', r == '_', r == '*':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			switch r {
			case 'y', 'Y', 'm', 'M', 'd', 'D', 'h', 'H', 's', 'S':
				return true
			}
		}
	}
	return false
}
