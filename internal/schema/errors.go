package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError reports a category that cannot be synced because required
// headers are missing, header cells are empty or a link header is too long.
type ValidationError struct {
	Category     string
	Missing      []string // required display names not found
	EmptyColumns []int    // 1-based columns with an empty header
	LongLinks    []string // link display names too long for their description column
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required field(s): "+strings.Join(e.Missing, ", "))
	}
	if len(e.EmptyColumns) > 0 {
		cols := make([]string, len(e.EmptyColumns))
		for i, c := range e.EmptyColumns {
			cols[i] = strconv.Itoa(c)
		}
		parts = append(parts, "empty header in column(s): "+strings.Join(cols, ", "))
	}
	if len(e.LongLinks) > 0 {
		parts = append(parts, fmt.Sprintf("link header(s) longer than %d characters: %s",
			MaxLinkNameLength, strings.Join(e.LongLinks, ", ")))
	}
	return fmt.Sprintf("category %q: %s", e.Category, strings.Join(parts, "; "))
}

// CollisionError reports two or more fields that map to the same column.
// Column names are compared case-insensitively.
type CollisionError struct {
	Category     string
	StorageName  string
	DisplayNames []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("category %q: storage name collision on %q between fields %q",
		e.Category, e.StorageName, e.DisplayNames)
}
