// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sheet    SheetConfig
	DbLib    DbLibConfig
	Sync     SyncConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout must outlast a sync triggered over HTTP (default: 10m)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"10m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds library database connection settings.
type DatabaseConfig struct {
	// Driver selects the backend: mysql (also MariaDB) or postgres (default: mysql)
	Driver string `env:"DB_DRIVER" default:"mysql"`

	Host     string `env:"DB_HOST" default:"localhost"`
	Port     int    `env:"DB_PORT" default:"3306"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`

	// Name is the library database; every table in it is dropped on sync (required)
	Name string `env:"DB_NAME" envAlt:"DB_DATABASE" required:"true"`

	// ODBCDriver is the driver named in the DbLib connection string.
	// Empty picks the default for DB_DRIVER.
	ODBCDriver string `env:"DB_ODBC_DRIVER"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// ConnMaxLifetime is the maximum lifetime of a connection (default: 1h)
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

// SheetConfig holds Google Sheets settings.
type SheetConfig struct {
	// ID is the spreadsheet ID from its URL (required)
	ID string `env:"SHEET_ID" required:"true"`

	// CredentialsFile is the service-account JSON key. Empty uses
	// application default credentials.
	CredentialsFile string `env:"SHEET_CREDENTIALS_FILE" envAlt:"GOOGLE_APPLICATION_CREDENTIALS"`

	// CustomRequiredFields are extra display names every tab must have
	CustomRequiredFields []string `env:"SHEET_CUSTOM_REQUIRED_FIELDS"`
}

// DbLibConfig holds DbLib output settings.
type DbLibConfig struct {
	// File is where the DbLib file is written (default: Library.DbLib)
	File string `env:"DBLIB_FILE" default:"Library.DbLib"`
}

// SyncConfig holds sync driver settings.
type SyncConfig struct {
	// Timeout bounds one sync run (default: 10m)
	Timeout time.Duration `env:"SYNC_TIMEOUT" default:"10m"`

	// MaxWait is how long a request waits for a running sync (default: 30s)
	MaxWait time.Duration `env:"SYNC_MAX_WAIT" default:"30s"`

	// Interval enables periodic resyncs in serve mode; 0 disables (default: 0)
	Interval time.Duration `env:"SYNC_INTERVAL" default:"0s"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// RequireAPIKey protects the /api routes with X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
