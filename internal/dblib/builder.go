package dblib

import (
	"strconv"

	"github.com/JonMunkholm/dblibsync/internal/schema"
)

// Version is the DbLib file format version written to OutputDatabaseLinkFile.
const Version = "1.1"

// Global edit policy of the link. Field maps always disable editing.
const (
	linkAddMode    = 3
	linkRemoveMode = 1
	linkUpdateMode = 2
	linkViewMode   = 0
)

// IDFieldType is the field type of the synthetic row-id field map. It is
// written as key (FieldType=0); DbLib files from older sync tools mark this
// field as text (FieldType=1), so output differs from theirs on this one value.
const IDFieldType = FieldTypeKey

type options struct {
	leftQuote, rightQuote string
	librarySearchPath     string
}

// Option configures Build.
type Option func(*options)

// WithQuotes sets the identifier quote characters the EDA tool uses when
// querying the database.
func WithQuotes(left, right string) Option {
	return func(o *options) {
		o.leftQuote, o.rightQuote = left, right
	}
}

// WithLibrarySearchPath overrides the symbol/footprint search path.
func WithLibrarySearchPath(path string) Option {
	return func(o *options) { o.librarySearchPath = path }
}

// Build derives the DbLib sections for the resolved categories, in order:
// the global link settings, one TableN per category, then FieldMapN sections
// for every category's fields. Section suffixes are 1-based and gap-free.
func Build(categories []*schema.ResolvedCategory, connectionString string, opts ...Option) *File {
	o := options{leftQuote: "`", rightQuote: "`", librarySearchPath: "symbols;footprints"}
	for _, opt := range opts {
		opt(&o)
	}

	f := &File{}
	f.AddSection("OutputDatabaseLinkFile").Set("Version", Version)
	f.AddSection("DatabaseLinks").
		Set("ConnectionString", connectionString).
		Set("AddMode", itoa(linkAddMode)).
		Set("RemoveMode", itoa(linkRemoveMode)).
		Set("UpdateMode", itoa(linkUpdateMode)).
		Set("ViewMode", itoa(linkViewMode)).
		Set("LeftQuote", o.leftQuote).
		Set("RightQuote", o.rightQuote).
		Set("QuoteTableNames", "1").
		Set("UseTableSchemaName", "0").
		Set("DefaultColumnType", "VARCHAR(255)").
		Set("LibraryDatabaseType", "").
		Set("LibraryDatabasePath", "").
		Set("DatabasePathRelative", "0").
		Set("TopPanelCollapsed", "0").
		Set("LibrarySearchPath", o.librarySearchPath).
		Set("OrcadMultiValueDelimiter", ",").
		Set("SearchSubDirectories", "0").
		Set("SchemaName", "").
		Set("LastFocusedTable", "")

	for i, c := range categories {
		f.AddSection("Table"+itoa(i+1)).
			Set("SchemaName", "").
			Set("TableName", c.Name()).
			Set("Enabled", boolWord(true)).
			Set("UserWhere", "0").
			Set("UserWhereText", "").
			Set("BrowserOrder_Sorting", "").
			Set("BrowserOrder_Grouping", "")
	}

	n := 0
	emit := func(m FieldMap) {
		n++
		f.AddSection("FieldMap"+itoa(n)).Set("Options", m.Options())
	}

	for _, c := range categories {
		for _, m := range FieldMaps(c) {
			emit(m)
		}
	}

	return f
}

// FieldMaps returns the field maps of one category in emission order: the
// row id first, then one or two maps per field in column order.
func FieldMaps(c *schema.ResolvedCategory) []FieldMap {
	table := c.Name()
	maps := []FieldMap{{
		Table: table,
		Field: schema.RowIDColumn,
		Type:  IDFieldType,
	}}

	for _, fld := range c.Fields() {
		m := FieldMap{
			Table:        table,
			Field:        fld.StorageName,
			Type:         FieldTypeText,
			VisibleOnAdd: fld.VisibleOnAdd,
		}
		if fld.StorageName == schema.ComponentIDStorageName {
			m.Type = FieldTypeKey
		}

		switch {
		case schema.IsSpecial(fld.DisplayName):
			m.ParameterName = "[" + fld.DisplayName + "]"
		case fld.ExpandsToLink():
			desc := schema.LinkDescriptionColumn(fld.LinkIndex)
			maps = append(maps, FieldMap{
				Table:         table,
				Field:         desc,
				Type:          FieldTypeText,
				ParameterName: desc,
			})
			m.ParameterName = schema.LinkURLColumn(fld.LinkIndex)
		default:
			m.ParameterName = fld.DisplayName
		}

		maps = append(maps, m)
	}
	return maps
}

func itoa(i int) string { return strconv.Itoa(i) }
