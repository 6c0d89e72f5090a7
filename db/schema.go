// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import "fmt"

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Timestamps are unix milliseconds so both dialects store them the same way.
var schema = []string{
	// Teams
	`CREATE TABLE IF NOT EXISTS teams (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    club TEXT NOT NULL DEFAULT '',
    blocked INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE INDEX IF NOT EXISTS idx_teams_name ON teams(name)`,

	// Games
	`CREATE TABLE IF NOT EXISTS games (
    id TEXT PRIMARY KEY,
    team_id TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
    opponent TEXT NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled', 'live', 'finished')),
    starts_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_games_team_starts ON games(team_id, starts_at)`,

	// Bingo fields
	`CREATE TABLE IF NOT EXISTS bingo_fields (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    team_id TEXT REFERENCES teams(id) ON DELETE CASCADE,
    is_standard INTEGER NOT NULL DEFAULT 0,
    approved INTEGER NOT NULL DEFAULT 1,
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_bingo_fields_team ON bingo_fields(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bingo_fields_standard ON bingo_fields(is_standard, approved)`,

	// Scoreboard
	`CREATE TABLE IF NOT EXISTS scoreboard (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    game_id TEXT,
    activated_fields INTEGER NOT NULL,
    bingos INTEGER NOT NULL,
    win_rate DOUBLE PRECISION NOT NULL,
    field_rate DOUBLE PRECISION NOT NULL,
    quarters_played INTEGER NOT NULL CHECK (quarters_played BETWEEN 1 AND 4),
    game_details TEXT,
    event_log TEXT,
    ip_hash TEXT,
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_scoreboard_created ON scoreboard(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_scoreboard_username ON scoreboard(username)`,
	`CREATE INDEX IF NOT EXISTS idx_scoreboard_game ON scoreboard(game_id)`,

	// Bingo log
	`CREATE TABLE IF NOT EXISTS bingo_log (
    id TEXT PRIMARY KEY,
    scoreboard_id TEXT NOT NULL REFERENCES scoreboard(id) ON DELETE CASCADE,
    game_id TEXT,
    quarter INTEGER NOT NULL CHECK (quarter BETWEEN 1 AND 4),
    winning_fields TEXT NOT NULL,
    winning_cell_ids TEXT NOT NULL,
    winning_type TEXT NOT NULL CHECK (winning_type IN ('row', 'column', 'diagonal')),
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_bingo_log_scoreboard ON bingo_log(scoreboard_id)`,

	// Global stats, a single row
	`CREATE TABLE IF NOT EXISTS global_stats (
    id INTEGER PRIMARY KEY,
    games_played BIGINT NOT NULL DEFAULT 0,
    total_bingos BIGINT NOT NULL DEFAULT 0,
    updated_at BIGINT NOT NULL DEFAULT 0
)`,
	`INSERT INTO global_stats (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,

	// Serialized game sessions
	`CREATE TABLE IF NOT EXISTS game_session (
    session_key TEXT PRIMARY KEY,
    state TEXT NOT NULL,
    updated_at BIGINT NOT NULL
)`,
}
