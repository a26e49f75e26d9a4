package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/dblibsync/internal/logging"
	"github.com/JonMunkholm/dblibsync/internal/schema"
)

// FieldPopulator computes a value for one cell of a component row. It
// returns the value and the 0-based column to write it to, or a negative
// column to leave the row unchanged. Written values go back to the
// spreadsheet as well as into the database row.
type FieldPopulator func(category *schema.ResolvedCategory, row []string) (value string, column int)

// insertComponents reads a category's rows, fills in missing component IDs,
// runs the populators and inserts the rows in one transaction.
func (s *Service) insertComponents(ctx context.Context, cat *schema.ResolvedCategory) (inserted, newIDs int, err error) {
	log := logging.WithFields(ctx, "category", cat.Name())

	rows, err := s.src.Rows(ctx, cat.Name(), cat.RowCount())
	if err != nil {
		return 0, 0, fmt.Errorf("read rows of %q: %w", cat.Name(), err)
	}

	columns := cat.Columns()
	idIndex := cat.FieldIndex(schema.ComponentIDStorageName)
	if idIndex < 0 {
		return 0, 0, fmt.Errorf("category %q has no %s field", cat.Name(), schema.ComponentIDDisplayName)
	}

	batch := make([][]string, 0, len(rows))
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		sheetRow := i + 2

		if len(row) > len(columns) {
			row = row[:len(columns)]
		}
		row = padRow(row, idIndex+1)

		if row[idIndex] == "" {
			id := s.opts.NewID()
			if err := s.src.UpdateCell(ctx, cat.Name(), idIndex, sheetRow, id); err != nil {
				return 0, 0, fmt.Errorf("assign component id: %w", err)
			}
			row[idIndex] = id
			newIDs++
			log.Info("assigned component id", "row", sheetRow, "component_id", id)
		}

		for _, populate := range s.opts.Populators {
			value, col := populate(cat, row)
			if col < 0 {
				continue
			}
			if col >= len(columns) {
				return 0, 0, fmt.Errorf("populator wrote column %d of %q, which has %d fields", col, cat.Name(), len(columns))
			}
			if err := s.src.UpdateCell(ctx, cat.Name(), col, sheetRow, value); err != nil {
				return 0, 0, fmt.Errorf("populate field: %w", err)
			}
			row = padRow(row, col+1)
			row[col] = value
		}

		batch = append(batch, row)
	}

	inserted, err = s.st.InsertRows(ctx, cat.Name(), columns, batch)
	if err != nil {
		return 0, 0, fmt.Errorf("insert components into %q: %w", cat.Name(), err)
	}
	log.Debug("inserted components", "components", inserted, "new_ids", newIDs)
	return inserted, newIDs, nil
}

// padRow extends row with empty cells to at least n entries.
func padRow(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
