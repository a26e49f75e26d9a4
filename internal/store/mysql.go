package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/JonMunkholm/dblibsync/internal/ddl"
)

// DefaultMySQLODBCDriver is the ODBC driver named in MySQL connection strings
// when none is configured.
const DefaultMySQLODBCDriver = "MySQL ODBC 8.0 Unicode Driver"

// MySQL is a MySQL/MariaDB library database.
type MySQL struct {
	db  *sql.DB
	cfg Config
}

// MySQLDSN builds the go-sql-driver DSN for cfg.
func MySQLDSN(cfg Config) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	return mc.FormatDSN()
}

// OpenMySQL opens a connection pool. The pool connects lazily; Open pings it.
func OpenMySQL(cfg Config) (*MySQL, error) {
	db, err := sql.Open("mysql", MySQLDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(cfg.MaxConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return NewMySQL(db, cfg), nil
}

// NewMySQL wraps an existing handle.
func NewMySQL(db *sql.DB, cfg Config) *MySQL {
	return &MySQL{db: db, cfg: cfg}
}

func (m *MySQL) Dialect() ddl.Dialect { return ddl.MySQL }

func (m *MySQL) Ping(ctx context.Context) error { return m.db.PingContext(ctx) }

func (m *MySQL) Close() error { return m.db.Close() }

const mysqlListTables = "SELECT table_name FROM information_schema.tables WHERE table_schema = ? AND table_type = 'BASE TABLE'"

func (m *MySQL) DropAllTables(ctx context.Context) (int, error) {
	rows, err := m.db.QueryContext(ctx, mysqlListTables, m.cfg.Name)
	if err != nil {
		return 0, fmt.Errorf("list tables: %w", err)
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("list tables: %w", err)
	}

	for i, t := range tables {
		if _, err := m.db.ExecContext(ctx, ddl.DropTableIfExistsSQL(ddl.MySQL, t)); err != nil {
			return i, fmt.Errorf("drop table %q: %w", t, err)
		}
		slog.Debug("dropped table", "table", t)
	}
	return len(tables), nil
}

func (m *MySQL) Exec(ctx context.Context, query string) error {
	_, err := m.db.ExecContext(ctx, query)
	return err
}

func (m *MySQL) InsertRows(ctx context.Context, table string, columns []string, rows [][]string) (int, error) {
	if err := checkWidths(table, columns, rows); err != nil {
		return 0, err
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmts := make(map[int]*sql.Stmt)
	defer func() {
		for _, s := range stmts {
			s.Close()
		}
	}()

	inserted := 0
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		stmt, ok := stmts[len(r)]
		if !ok {
			stmt, err = tx.PrepareContext(ctx, ddl.InsertSQL(ddl.MySQL, table, columns[:len(r)]))
			if err != nil {
				return 0, fmt.Errorf("prepare insert into %q: %w", table, err)
			}
			stmts[len(r)] = stmt
		}
		if _, err := stmt.ExecContext(ctx, toArgs(r)...); err != nil {
			return 0, fmt.Errorf("insert row %d into %q: %w", i+1, table, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit inserts into %q: %w", table, err)
	}
	return inserted, nil
}

// ConnectionString is the MySQL ODBC connection string for the database.
func (m *MySQL) ConnectionString() string {
	return MySQLConnectionString(m.cfg)
}

// MySQLConnectionString formats cfg as a MySQL ODBC connection string.
func MySQLConnectionString(cfg Config) string {
	driver := cfg.ODBCDriver
	if driver == "" {
		driver = DefaultMySQLODBCDriver
	}
	return fmt.Sprintf("Driver={%s};SERVER=%s;USER=%s;PASSWORD=%s;DATABASE=%s;PORT=%d",
		driver, odbcValue(cfg.Host), odbcValue(cfg.User), odbcValue(cfg.Password), odbcValue(cfg.Name), cfg.Port)
}
