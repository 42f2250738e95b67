// Package database owns the connection to the local store and its schema.
//
// Every operation asks the Provider for a fresh Conn, runs its statement,
// and closes the Conn before returning. No pool is shared between calls.
// SQLite (modernc.org/sqlite) is the default store; PostgreSQL through pgx's
// database/sql driver is available for running the same statements against
// a server.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/inventory/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"            // registers the "sqlite" driver
)

// Provider opens connections to the configured store.
type Provider struct {
	driverName     string
	dsn            string
	target         string
	dialect        Dialect
	connectTimeout time.Duration
}

// NewProvider builds a Provider from the database configuration.
func NewProvider(cfg config.DatabaseConfig) (*Provider, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	switch cfg.Driver {
	case config.DriverSQLite, "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite path is empty")
		}
		return &Provider{
			driverName:     "sqlite",
			dsn:            sqliteDSN(cfg.Path, cfg.BusyTimeout),
			target:         cfg.Path,
			dialect:        SQLite,
			connectTimeout: timeout,
		}, nil

	case config.DriverPostgres:
		if cfg.URL == "" {
			return nil, fmt.Errorf("postgres URL is empty")
		}
		return &Provider{
			driverName:     "pgx",
			dsn:            cfg.URL,
			target:         redactURL(cfg.URL),
			dialect:        Postgres,
			connectTimeout: timeout,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Driver)
	}
}

// sqliteDSN builds a modernc URI filename with the busy timeout applied to
// every new connection.
func sqliteDSN(path string, busy time.Duration) string {
	v := url.Values{}
	v.Set("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	return "file:" + filepath.ToSlash(path) + "?" + v.Encode()
}

// redactURL strips credentials from a connection URL for logging.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[unparseable url]"
	}
	return u.Redacted()
}

// Dialect returns the SQL dialect of the configured store.
func (p *Provider) Dialect() Dialect {
	return p.dialect
}

// Target describes the store for log output. Credentials are redacted.
func (p *Provider) Target() string {
	return p.dialect.Name() + ":" + p.target
}

// Open returns a new connection. The caller owns it and must Close it.
func (p *Provider) Open(ctx context.Context) (*Conn, error) {
	db, err := sql.Open(p.driverName, p.dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.Target(), err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, p.connectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", p.Target(), err)
	}

	return &Conn{db: db, dialect: p.dialect}, nil
}

// Ping verifies the store is reachable by opening and releasing a connection.
func (p *Provider) Ping(ctx context.Context) error {
	conn, err := p.Open(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

// Conn is a single-use handle to the store. Queries are written with "?"
// placeholders and rebound for the dialect.
type Conn struct {
	db      *sql.DB
	dialect Dialect
}

// ExecContext executes a statement that returns no rows.
func (c *Conn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, c.dialect.Rebind(query), args...)
}

// QueryContext executes a statement that returns rows.
func (c *Conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, c.dialect.Rebind(query), args...)
}

// QueryRowContext executes a statement that returns at most one row.
func (c *Conn) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return c.db.QueryRowContext(ctx, c.dialect.Rebind(query), args...)
}

// Close releases the connection.
func (c *Conn) Close() error {
	return c.db.Close()
}
