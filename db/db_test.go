// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"testing"
)

func openMemory(t *testing.T) *DB {
	t.Helper()
	conn, err := Open(SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestOpenRejectsUnknownType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("Expected error for unsupported database type")
	}
	if _, err := Open(SQLite, "  "); err == nil {
		t.Error("Expected error for empty URL")
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect string
		query   string
		want    string
	}{
		{SQLite, "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = ? AND b = ?"},
		{Postgres, "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{Postgres, "SELECT 1", "SELECT 1"},
		{Postgres, "INSERT INTO t VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", "INSERT INTO t VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)"},
	}

	for _, tt := range tests {
		d := &DB{Dialect: tt.dialect}
		if got := d.Rebind(tt.query); got != tt.want {
			t.Errorf("Rebind(%q) [%s] = %q, want %q", tt.query, tt.dialect, got, tt.want)
		}
	}
}

func TestCreateSchemaIdempotent(t *testing.T) {
	conn := openMemory(t)

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema() run %d error = %v", i+1, err)
		}
	}

	var rows int
	if err := conn.QueryRow("SELECT COUNT(*) FROM global_stats").Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("Expected exactly one global_stats row, got %d", rows)
	}
}

func TestSeedFields(t *testing.T) {
	conn := openMemory(t)
	if err := CreateSchema(conn); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	n, err := SeedFields(ctx, conn)
	if err != nil {
		t.Fatalf("SeedFields() error = %v", err)
	}
	if n < 25 {
		t.Errorf("Expected at least 25 standard fields for a full board, got %d", n)
	}

	again, err := SeedFields(ctx, conn)
	if err != nil {
		t.Fatal(err)
	}
	if again != 0 {
		t.Errorf("Expected second seed to insert nothing, got %d", again)
	}

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM bingo_fields WHERE is_standard = 1 AND approved = 1").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != n {
		t.Errorf("Expected %d stored fields, got %d", n, count)
	}
}
