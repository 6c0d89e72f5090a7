// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Basketball Bingo API server.

Basketball Bingo lets fans tick off events on a 5x5 board while watching
a game. A completed row, column or diagonal is a bingo; each quarter
brings a fresh board, and the finished game lands on a public scoreboard.

# Starting the Server

The server reads a .env file, the environment and then CLI flags:

	SESSION_SALT=... go run main.go

Or with flags:

	go run main.go -p 3318 -t postgres -d "postgres://..." -session-salt ...

# Configuration

Required settings:

  - SESSION_SALT (-session-salt): Secret for session token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): File path or connection string (default: bingo.db)
  - IP_HASH_SALT (-ip-salt): Salt for hashed client IPs (default: SESSION_SALT)
  - GAME_WINDOW (-game-window): How long a started game stays listed (default: 3h)
  - SESSION_TTL (-session-ttl): Idle time before a stored game is purged (default: 24h)
  - SEED_FIELDS (-seed): Insert the standard field pool when none exists (default: true)

# Architecture

  - bingo: Board, win detection, quarters and results
  - store: Database-backed field source, result sink and session store
  - handlers: HTTP request handlers (sessions, catalog, game, scoreboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Session tokens and IP hashing
  - db: Connection, schema and seed data
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
