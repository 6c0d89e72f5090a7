// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite path or PostgreSQL connection string (default: bingo.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionSalt: Secret for session token HMAC (required)
  - IPHashSalt: Secret for hashing client IPs (default: SessionSalt)
  - GameWindow: How far in the past a game may have started and still be offered (default: 3h)
  - SessionTTL: Idle time before a stored game is purged (default: 24h)
  - SeedFields: Insert the standard field pool into an empty database (default: true)

# Sources

Values are read in increasing precedence:

 1. .env in the working directory (joho/godotenv; missing file ignored)
 2. Environment variables (caarlos0/env, defaults from struct tags)
 3. CLI flags

# CLI Flags and Environment Variables

	-p             PORT
	-d             DATABASE_URL
	-t             DATABASE_TYPE
	-session-salt  SESSION_SALT
	-ip-salt       IP_HASH_SALT
	-game-window   GAME_WINDOW
	-session-ttl   SESSION_TTL
	-seed          SEED_FIELDS

# Validation

ParseFlags returns an error if:

  - SESSION_SALT is missing
  - the database type is not sqlite or postgres
  - the port is outside 1-65535
  - the game window is negative
*/
package cliparse
