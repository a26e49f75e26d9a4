// Package sheet reads library categories from a Google spreadsheet and writes
// generated cell values back to it.
package sheet

import (
	"fmt"
	"strings"
)

// Tab is one spreadsheet tab: a category name, the number of rows the sheet
// advertises (header included) and the header row.
type Tab struct {
	Title    string
	RowCount int
	Headers  []string
}

// ColumnName returns the A1 column letters for a 0-based column index:
// 0 -> A, 25 -> Z, 26 -> AA.
func ColumnName(index int) string {
	if index < 0 {
		return ""
	}
	var b []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		b = append(b, byte('A'+(n-1)%26))
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// quoteTitle quotes a tab title for A1 notation.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// HeaderRange is the A1 range of a tab's header row.
func HeaderRange(title string) string {
	return quoteTitle(title) + "!1:1"
}

// DataRange is the A1 range of a tab's data rows, 2 through lastRow.
func DataRange(title string, lastRow int) string {
	return fmt.Sprintf("%s!2:%d", quoteTitle(title), lastRow)
}

// CellRange is the A1 reference of a single cell; column is 0-based and row
// 1-based as displayed in the sheet.
func CellRange(title string, column, row int) string {
	return fmt.Sprintf("%s!%s%d", quoteTitle(title), ColumnName(column), row)
}

// cellsToStrings converts an API value row to strings.
func cellsToStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			out[i] = s
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
