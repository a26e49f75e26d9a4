package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/dblibsync/internal/ddl"
)

// DefaultPostgresODBCDriver is the ODBC driver named in PostgreSQL
// connection strings when none is configured.
const DefaultPostgresODBCDriver = "PostgreSQL Unicode"

// Postgres is a PostgreSQL library database.
type Postgres struct {
	pool *pgxpool.Pool
	cfg  Config
}

// OpenPostgres creates a pgx pool for cfg.
func OpenPostgres(ctx context.Context, cfg Config) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig("")
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	poolConfig.ConnConfig.Host = cfg.Host
	poolConfig.ConnConfig.Port = uint16(cfg.Port)
	poolConfig.ConnConfig.User = cfg.User
	poolConfig.ConnConfig.Password = cfg.Password
	poolConfig.ConnConfig.Database = cfg.Name
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Postgres{pool: pool, cfg: cfg}, nil
}

func (p *Postgres) Dialect() ddl.Dialect { return ddl.Postgres }

func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) DropAllTables(ctx context.Context) (int, error) {
	rows, err := p.pool.Query(ctx, "SELECT tablename FROM pg_tables WHERE schemaname = current_schema()")
	if err != nil {
		return 0, fmt.Errorf("list tables: %w", err)
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return 0, fmt.Errorf("list tables: %w", err)
	}

	for i, t := range tables {
		if _, err := p.pool.Exec(ctx, ddl.DropTableIfExistsSQL(ddl.Postgres, t)); err != nil {
			return i, fmt.Errorf("drop table %q: %w", t, err)
		}
		slog.Debug("dropped table", "table", t)
	}
	return len(tables), nil
}

func (p *Postgres) Exec(ctx context.Context, query string) error {
	_, err := p.pool.Exec(ctx, query)
	return err
}

func (p *Postgres) InsertRows(ctx context.Context, table string, columns []string, rows [][]string) (int, error) {
	if err := checkWidths(table, columns, rows); err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		batch.Queue(ddl.InsertSQL(ddl.Postgres, table, columns[:len(r)]), toArgs(r)...)
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert into %q: %w", table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit inserts into %q: %w", table, err)
	}
	return batch.Len(), nil
}

// ConnectionString is the PostgreSQL ODBC connection string for the database.
func (p *Postgres) ConnectionString() string {
	return PostgresConnectionString(p.cfg)
}

// PostgresConnectionString formats cfg as a PostgreSQL ODBC connection string.
func PostgresConnectionString(cfg Config) string {
	driver := cfg.ODBCDriver
	if driver == "" {
		driver = DefaultPostgresODBCDriver
	}
	return fmt.Sprintf("Driver={%s};Server=%s;Port=%d;Database=%s;Uid=%s;Pwd=%s;",
		driver, odbcValue(cfg.Host), cfg.Port, odbcValue(cfg.Name), odbcValue(cfg.User), odbcValue(cfg.Password))
}
