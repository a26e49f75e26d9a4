// Package store executes the generated schema and component rows against the
// library database.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/dblibsync/internal/ddl"
)

// Store is the library database as seen by the sync driver.
type Store interface {
	// Dialect renders DDL and DML for this backend.
	Dialect() ddl.Dialect
	Ping(ctx context.Context) error
	// DropAllTables drops every table in the configured database and returns
	// how many were dropped.
	DropAllTables(ctx context.Context) (int, error)
	// Exec runs one statement without arguments.
	Exec(ctx context.Context, query string) error
	// InsertRows inserts rows into table in a single transaction. Each row
	// fills the leading len(row) entries of columns; rows longer than columns
	// are rejected.
	InsertRows(ctx context.Context, table string, columns []string, rows [][]string) (int, error)
	// ConnectionString is the ODBC connection string the EDA tool uses to
	// reach the same database.
	ConnectionString() string
	Close() error
}

// Config holds the connection settings shared by all backends.
type Config struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	ODBCDriver      string
	MaxConns        int
	ConnMaxLifetime time.Duration
}

// Open connects to the backend named by cfg.Driver and verifies the
// connection.
func Open(ctx context.Context, cfg Config) (Store, error) {
	d, err := ddl.ForDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var st Store
	switch d.Name() {
	case "mysql":
		st, err = OpenMySQL(cfg)
	default:
		st, err = OpenPostgres(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Ping(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("ping %s database %q: %w", d.Name(), cfg.Name, err)
	}
	return st, nil
}

// checkWidths rejects rows with more values than columns.
func checkWidths(table string, columns []string, rows [][]string) error {
	for i, r := range rows {
		if len(r) > len(columns) {
			return fmt.Errorf("insert into %q: row %d has %d values for %d columns", table, i+1, len(r), len(columns))
		}
	}
	return nil
}

func toArgs(row []string) []any {
	args := make([]any, len(row))
	for i, v := range row {
		args[i] = v
	}
	return args
}

// odbcValue wraps a value in braces when it contains a separator.
func odbcValue(v string) string {
	if strings.ContainsAny(v, ";{}") {
		return "{" + strings.ReplaceAll(v, "}", "}}") + "}"
	}
	return v
}
