// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation and seeding.

# Connections

Open connects to SQLite (modernc.org/sqlite, the default) or PostgreSQL
(lib/pq) and pings the server:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Queries are written with ? placeholders and passed through Rebind, which
turns them into $1, $2, ... for PostgreSQL.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - teams: Teams players can pick a game for
  - games: Scheduled games per team
  - bingo_fields: Event descriptions, team-specific or standard
  - scoreboard: One row per submitted game result
  - bingo_log: One row per bingo in a submitted game
  - global_stats: Single row of running totals
  - game_session: Serialized board state per session token

# Relationships

	teams 1──* games
	teams 1──* bingo_fields
	scoreboard 1──* bingo_log

Timestamps are stored as unix milliseconds.

# Seeding

SeedFields inserts a standard field pool when the table has none, so a
fresh install can deal a full board.
*/
package db
