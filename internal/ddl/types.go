// Package ddl defines a small AST for CREATE TABLE statements and renders it
// for the SQL dialects the library database can live in.
//
// Derivation code builds Table values; quoting and escaping of identifiers
// and string literals happen only at render time, inside a Dialect.
package ddl

// TypeKind is the family of a column type.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeChar
	TypeVarchar
)

// ColumnType is a column type with an optional length.
type ColumnType struct {
	Kind   TypeKind
	Length int  // CHAR/VARCHAR length; ignored for TypeInt
	ASCII  bool // restrict the character set to ASCII where the dialect supports it
}

// Int is a plain integer column type.
func Int() ColumnType { return ColumnType{Kind: TypeInt} }

// Char is a fixed-width character column type.
func Char(n int) ColumnType { return ColumnType{Kind: TypeChar, Length: n} }

// ASCIIChar is a fixed-width ASCII character column type.
func ASCIIChar(n int) ColumnType { return ColumnType{Kind: TypeChar, Length: n, ASCII: true} }

// Varchar is a variable-length character column type.
func Varchar(n int) ColumnType { return ColumnType{Kind: TypeVarchar, Length: n} }

// Column describes a single column. Name is unquoted; Default, when non-nil,
// is a string literal and is escaped by the renderer.
type Column struct {
	Name          string
	Type          ColumnType
	NotNull       bool
	AutoIncrement bool
	Default       *string
}

// Table holds the table name, its columns in declaration order, and the
// primary key column names. The PRIMARY KEY clause is rendered last.
type Table struct {
	Name       string
	Columns    []Column
	PrimaryKey []string
}

// StringDefault returns a pointer suitable for Column.Default.
func StringDefault(s string) *string { return &s }
