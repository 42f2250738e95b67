package database

import (
	"strconv"
	"strings"
)

// Dialect covers the few places where SQLite and PostgreSQL disagree.
type Dialect interface {
	// Name is a short identifier: "sqlite" or "postgres".
	Name() string

	// Rebind rewrites "?" placeholders into the dialect's bind syntax.
	Rebind(query string) string

	// SchemaStatements returns the idempotent DDL for the entity tables.
	SchemaStatements() []string
}

// Dialects shipped with the package.
var (
	SQLite   Dialect = sqliteDialect{}
	Postgres Dialect = postgresDialect{}
)

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Rebind(query string) string { return query }

func (sqliteDialect) SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category TEXT,
			price REAL,
			quantity INTEGER,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS buyers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			address TEXT
		)`,
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

// Rebind converts "?" to "$1", "$2", ... leaving quoted literals alone.
func (postgresDialect) Rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func (postgresDialect) SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT,
			price DOUBLE PRECISION,
			quantity INTEGER,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS buyers (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			address TEXT
		)`,
	}
}
