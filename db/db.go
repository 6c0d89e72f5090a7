// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// DB is a connection pool that knows its SQL dialect.
type DB struct {
	*sql.DB
	Dialect string
}

// Open connects to the database of the given type and verifies the
// connection. SQLite runs on a single connection so that in-memory
// databases are shared and writes never contend.
func Open(dbType, url string) (*DB, error) {
	var driver string
	switch dbType {
	case SQLite, "":
		driver, dbType = "sqlite", SQLite
	case Postgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dbType, err)
	}

	if dbType == SQLite {
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
		if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set busy timeout: %w", err)
		}
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s db: %w", dbType, err)
	}

	return &DB{DB: conn, Dialect: dbType}, nil
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
func (d *DB) Rebind(query string) string {
	if d.Dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
