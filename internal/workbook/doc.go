// Package workbook reads the first sheet of a spreadsheet and converts its
// cells to the values printed by "giteki read".
//
// Numbers are rendered as their shortest decimal form with a trailing ".0"
// for integral values, after which every ".0" substring is removed. Date
// cells become YYYY-MM-DD strings; a date that cannot be represented drops
// the cell from its row. Everything else passes through unchanged.
//
// Legacy BIFF workbooks (.xls) are read with github.com/shakinm/xlsReader,
// Office Open XML workbooks (.xlsx, .xlsm) with github.com/xuri/excelize/v2.
// Both are adapted to the Source interface.
package workbook
