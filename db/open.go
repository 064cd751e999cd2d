// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database engines.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the configured database engine and verifies the
// connection. SQLite gets WAL mode, a busy timeout, and foreign key
// enforcement (off by default in SQLite) applied per connection via DSN
// pragmas.
func Open(dbType, url string) (*sqlx.DB, error) {
	var conn *sqlx.DB
	var err error

	switch dbType {
	case TypePostgres:
		conn, err = sqlx.Open("postgres", url)
	case TypeSQLite:
		conn, err = sqlx.Open("sqlite", sqliteDSN(url))
		if err == nil {
			// SQLite has one writer; funneling the pool through a single
			// connection turns lock-upgrade SQLITE_BUSY failures into
			// ordinary queueing.
			conn.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}
	return conn, nil
}

func sqliteDSN(url string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if strings.Contains(url, "?") {
		return url + "&" + pragmas
	}
	return url + "?" + pragmas
}
