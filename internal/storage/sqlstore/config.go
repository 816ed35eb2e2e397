package sqlstore

import (
	"strings"
	"time"
)

// Dialect selects the SQL driver and migration set
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// Config holds SQL connection settings
type Config struct {
	Dialect Dialect
	// DSN is a file path for sqlite3 or a connection URL for postgres
	DSN string

	// Pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Migrate applies embedded schema migrations on Open
	Migrate bool
}

// sqliteOptions are applied to sqlite DSNs that carry no query of their own
const sqliteOptions = "_busy_timeout=5000&_journal_mode=WAL"

// ConnString returns the DSN handed to the driver. Bare sqlite paths get a
// busy timeout and WAL journaling.
func (c Config) ConnString() string {
	if c.Dialect != DialectSQLite || strings.Contains(c.DSN, "?") {
		return c.DSN
	}
	return c.DSN + "?" + sqliteOptions
}

// DefaultConfig returns a local sqlite configuration
func DefaultConfig() Config {
	return Config{
		Dialect:         DialectSQLite,
		DSN:             "battleship.db",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 15 * time.Minute,
		Migrate:         true,
	}
}
