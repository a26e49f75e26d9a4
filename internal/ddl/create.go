package ddl

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL renders t as a CREATE TABLE statement in dialect d.
//
// Each column is rendered as
//
//	<name> <type> [NOT NULL] [AUTO_INCREMENT] [DEFAULT '<literal>']
//
// in declaration order, followed by PRIMARY KEY (<cols>) when t.PrimaryKey is
// non-empty.
func BuildCreateTableSQL(d Dialect, t Table) (string, error) {
	if strings.TrimSpace(t.Name) == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: table %s has no columns", t.Name)
	}

	clauses := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		if c.Name == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", t.Name)
		}
		if c.Type.Kind != TypeInt && c.Type.Length <= 0 {
			return "", fmt.Errorf("ddl: column %s in table %s has no length", c.Name, t.Name)
		}

		var sb strings.Builder
		sb.WriteString(d.QuoteIdent(c.Name))
		sb.WriteByte(' ')
		sb.WriteString(d.columnType(c))
		if c.NotNull {
			sb.WriteString(" NOT NULL")
		}
		if c.AutoIncrement {
			sb.WriteString(autoIncrementSuffix(d))
		}
		if c.Default != nil {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(d.QuoteString(*c.Default))
		}
		clauses = append(clauses, sb.String())
	}

	if len(t.PrimaryKey) > 0 {
		pk := make([]string, len(t.PrimaryKey))
		for i, name := range t.PrimaryKey {
			pk[i] = d.QuoteIdent(name)
		}
		clauses = append(clauses, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pk, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);",
		d.QuoteIdent(t.Name),
		strings.Join(clauses, ",\n  "),
	), nil
}

// DropTableIfExistsSQL renders a DROP TABLE IF EXISTS statement.
func DropTableIfExistsSQL(d Dialect, table string) string {
	return "DROP TABLE IF EXISTS " + d.QuoteIdent(table)
}

// InsertSQL renders a parameterized INSERT for the given columns.
func InsertSQL(d Dialect, table string, columns []string) string {
	cols := make([]string, len(columns))
	params := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = d.QuoteIdent(c)
		params[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(table),
		strings.Join(cols, ", "),
		strings.Join(params, ", "),
	)
}
