package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrorKind is a driver-independent category for a storage failure.
type ErrorKind int

const (
	KindUnknown     ErrorKind = iota
	KindUnavailable           // cannot open or reach the store
	KindConstraint            // NOT NULL, UNIQUE, CHECK, ...
	KindBusy                  // locked or deadlocked
	KindReadOnly              // store is read-only or permission denied
	KindCorrupt               // file is damaged or not a database
	KindSchema                // table or column missing
	KindTimeout               // context deadline exceeded
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindConstraint:
		return "constraint"
	case KindBusy:
		return "busy"
	case KindReadOnly:
		return "read_only"
	case KindCorrupt:
		return "corrupt"
	case KindSchema:
		return "schema"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Classify inspects a driver error and returns its category.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return classifySQLite(sqliteErr)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return KindUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPostgres(pgErr.Code)
	}

	return KindUnknown
}

func classifySQLite(e *sqlite.Error) ErrorKind {
	// Extended result codes keep the primary code in the low byte.
	switch e.Code() & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return KindConstraint
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return KindBusy
	case sqlite3.SQLITE_READONLY, sqlite3.SQLITE_PERM, sqlite3.SQLITE_AUTH:
		return KindReadOnly
	case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB:
		return KindCorrupt
	case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR, sqlite3.SQLITE_FULL:
		return KindUnavailable
	case sqlite3.SQLITE_ERROR:
		msg := strings.ToLower(e.Error())
		if strings.Contains(msg, "no such table") || strings.Contains(msg, "no such column") {
			return KindSchema
		}
	}
	return KindUnknown
}

func classifyPostgres(code string) ErrorKind {
	switch {
	case strings.HasPrefix(code, "23"):
		return KindConstraint
	case strings.HasPrefix(code, "08"), code == "57P01", code == "57P03", strings.HasPrefix(code, "53"):
		return KindUnavailable
	case code == "40P01", code == "55P03":
		return KindBusy
	case code == "42501", code == "25006":
		return KindReadOnly
	case code == "42P01", code == "42703":
		return KindSchema
	case code == "57014":
		return KindTimeout
	case strings.HasPrefix(code, "XX"):
		return KindCorrupt
	}
	return KindUnknown
}
