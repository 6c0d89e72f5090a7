// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lukasmk87/Bball-Bingo-neo/cliparse"
	"github.com/lukasmk87/Bball-Bingo-neo/db"
)

// TestDBURL opens a private in-memory SQLite database per connection pool.
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *db.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.SQLite,
		SessionSalt:  "test-session-salt",
		IPHashSalt:   "test-ip-salt",
		GameWindow:   3 * time.Hour,
		SessionTTL:   24 * time.Hour,
	}
}

// CreateTestTeam inserts a team and returns its ID
func CreateTestTeam(t *testing.T, conn *db.DB, name string) string {
	t.Helper()

	teamID := uuid.NewString()
	_, err := conn.Exec(conn.Rebind(`
		INSERT INTO teams (id, name, club) VALUES (?, ?, 'Test Club')
	`), teamID, name)
	if err != nil {
		t.Fatalf("Failed to create test team: %v", err)
	}

	return teamID
}

// CreateTestGame inserts a game for a team starting at startsAt and returns its ID
func CreateTestGame(t *testing.T, conn *db.DB, teamID, opponent string, startsAt time.Time) string {
	t.Helper()

	gameID := uuid.NewString()
	_, err := conn.Exec(conn.Rebind(`
		INSERT INTO games (id, team_id, opponent, location, starts_at) VALUES (?, ?, ?, 'Home Arena', ?)
	`), gameID, teamID, opponent, startsAt.UTC().UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test game: %v", err)
	}

	return gameID
}

// AddStandardFields inserts n approved standard fields with ids "std-<i>"
func AddStandardFields(t *testing.T, conn *db.DB, n int) []string {
	t.Helper()
	return addFields(t, conn, "std", "", true, n)
}

// AddTeamFields inserts n approved fields for a team with ids "<prefix>-<i>"
func AddTeamFields(t *testing.T, conn *db.DB, teamID, prefix string, n int) []string {
	t.Helper()
	return addFields(t, conn, prefix, teamID, false, n)
}

func addFields(t *testing.T, conn *db.DB, prefix, teamID string, standard bool, n int) []string {
	t.Helper()

	var team any
	if teamID != "" {
		team = teamID
	}
	isStandard := 0
	if standard {
		isStandard = 1
	}

	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%02d", prefix, i)
		_, err := conn.Exec(conn.Rebind(`
			INSERT INTO bingo_fields (id, description, category, team_id, is_standard, approved, created_at)
			VALUES (?, ?, 'test', ?, ?, 1, ?)
		`), ids[i], "Event "+ids[i], team, isStandard, time.Now().UnixMilli())
		if err != nil {
			t.Fatalf("Failed to create test field: %v", err)
		}
	}

	return ids
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
