package ddl

import (
	"fmt"
	"strings"
)

// Dialect renders identifiers, literals and types for one SQL backend.
type Dialect interface {
	// Name is the backend name ("mysql", "postgres").
	Name() string

	// QuoteIdent quotes an identifier, escaping embedded quote characters.
	QuoteIdent(name string) string

	// QuoteString renders a string literal.
	QuoteString(s string) string

	// IdentQuotes returns the left and right identifier quote characters.
	IdentQuotes() (left, right string)

	// Placeholder returns the bind parameter marker for the n-th (1-based) argument.
	Placeholder(n int) string

	columnType(c Column) string
}

// MySQL is the MySQL/MariaDB dialect.
var MySQL Dialect = mysqlDialect{}

// Postgres is the PostgreSQL dialect.
var Postgres Dialect = postgresDialect{}

// ForDriver returns the dialect for a driver name.
func ForDriver(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return nil, fmt.Errorf("ddl: unknown dialect %q", driver)
	}
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return "mysql" }

func (mysqlDialect) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (mysqlDialect) QuoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (mysqlDialect) IdentQuotes() (string, string) { return "`", "`" }

func (mysqlDialect) Placeholder(int) string { return "?" }

func (mysqlDialect) columnType(c Column) string {
	switch c.Type.Kind {
	case TypeInt:
		return "INT"
	case TypeChar:
		if c.Type.ASCII {
			return fmt.Sprintf("CHAR(%d) CHARACTER SET ascii", c.Type.Length)
		}
		return fmt.Sprintf("CHAR(%d)", c.Type.Length)
	default:
		return fmt.Sprintf("VARCHAR(%d)", c.Type.Length)
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (postgresDialect) QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (postgresDialect) IdentQuotes() (string, string) { return `"`, `"` }

func (postgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (postgresDialect) columnType(c Column) string {
	switch c.Type.Kind {
	case TypeInt:
		if c.AutoIncrement {
			return "SERIAL"
		}
		return "INTEGER"
	case TypeChar:
		return fmt.Sprintf("CHAR(%d)", c.Type.Length)
	default:
		return fmt.Sprintf("VARCHAR(%d)", c.Type.Length)
	}
}

// autoIncrementSuffix returns the trailing column attribute for
// auto-incrementing columns; PostgreSQL expresses it through SERIAL.
func autoIncrementSuffix(d Dialect) string {
	if d.Name() == "mysql" {
		return " AUTO_INCREMENT"
	}
	return ""
}
