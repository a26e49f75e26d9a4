package schema

import (
	"unicode/utf8"

	"github.com/JonMunkholm/dblibsync/internal/ddl"
)

// RowIDColumn is the auto-increment primary key every table carries.
const RowIDColumn = "id"

const (
	componentIDWidth = 36
	textColumnWidth  = 255
)

// MaxLinkNameLength is the longest link display name, in characters. The name
// is the default of a CHAR column, and CHAR holds at most 255 characters.
const MaxLinkNameLength = 255

// ResolvedCategory is a category after table derivation: link fields carry
// their final storage name ComponentLink{N}URL. It can only be produced by
// DeriveTable, so anything that consumes it runs after the table exists.
type ResolvedCategory struct {
	name      string
	rowCount  int
	fields    []Field
	linkCount int
}

// Name returns the table/tab name.
func (r *ResolvedCategory) Name() string { return r.name }

// RowCount returns the number of rows advertised by the source.
func (r *ResolvedCategory) RowCount() int { return r.rowCount }

// LinkCount returns the number of link fields.
func (r *ResolvedCategory) LinkCount() int { return r.linkCount }

// Fields returns a copy of the resolved fields in column order.
func (r *ResolvedCategory) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// FieldIndex returns the column index of the field with the given resolved
// storage name, or -1.
func (r *ResolvedCategory) FieldIndex(storage string) int {
	return fieldIndex(r.fields, storage)
}

// Columns returns, per spreadsheet column, the table column its cell value
// is stored in.
func (r *ResolvedCategory) Columns() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.StorageName
	}
	return out
}

// DeriveTable derives the table definition for c and the resolved category
// whose storage names match the table's columns. c is not modified.
//
// Column rules, in field order after the row id:
//   - component_id: CHAR(36) ASCII NOT NULL
//   - link field N: ComponentLinkNDescription CHAR(len) DEFAULT display name,
//     then ComponentLinkNURL VARCHAR(255); the field is stored as the URL
//   - anything else: VARCHAR(255) named after the storage name
func DeriveTable(c *Category) (ddl.Table, *ResolvedCategory, error) {
	if cols := c.Collisions(); len(cols) > 0 {
		return ddl.Table{}, nil, cols[0]
	}

	table := ddl.Table{
		Name:       c.Name,
		Columns:    []ddl.Column{{Name: RowIDColumn, Type: ddl.Int(), NotNull: true, AutoIncrement: true}},
		PrimaryKey: []string{RowIDColumn},
	}

	resolved := &ResolvedCategory{
		name:      c.Name,
		rowCount:  c.RowCount,
		fields:    make([]Field, len(c.fields)),
		linkCount: c.linkCount,
	}

	for i, f := range c.fields {
		cols := physicalColumns(f)
		table.Columns = append(table.Columns, cols...)
		if f.ExpandsToLink() {
			f.StorageName = LinkURLColumn(f.LinkIndex)
		}
		resolved.fields[i] = f
	}

	return table, resolved, nil
}

// CreateTableStatement derives and renders the CREATE TABLE statement for c.
func (c *Category) CreateTableStatement(d ddl.Dialect) (string, *ResolvedCategory, error) {
	table, resolved, err := DeriveTable(c)
	if err != nil {
		return "", nil, err
	}
	stmt, err := ddl.BuildCreateTableSQL(d, table)
	if err != nil {
		return "", nil, err
	}
	return stmt, resolved, nil
}

// physicalColumns returns the one or two table columns a field expands to.
func physicalColumns(f Field) []ddl.Column {
	switch {
	case f.StorageName == ComponentIDStorageName:
		return []ddl.Column{{Name: ComponentIDStorageName, Type: ddl.ASCIIChar(componentIDWidth), NotNull: true}}
	case f.ExpandsToLink():
		width := utf8.RuneCountInString(f.DisplayName)
		if width == 0 {
			width = 1
		}
		return []ddl.Column{
			{Name: LinkDescriptionColumn(f.LinkIndex), Type: ddl.Char(width), Default: ddl.StringDefault(f.DisplayName)},
			{Name: LinkURLColumn(f.LinkIndex), Type: ddl.Varchar(textColumnWidth)},
		}
	default:
		return []ddl.Column{{Name: f.StorageName, Type: ddl.Varchar(textColumnWidth)}}
	}
}
