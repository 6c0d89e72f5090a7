// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Basketball Bingo API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SessionHandler: Issues signed session tokens
  - CatalogHandler: Teams, upcoming games and field draws
  - GameHandler: The board of one session (start, toggle, advance, submit)
  - ScoreboardHandler: Recorded results and global statistics

Handlers are created via constructor functions that accept *db.DB and Config:

	gameHandler := handlers.NewGameHandler(db, cfg)

# Game Flow

A client first asks for a session token and sends it on every game request:

	POST /sessions                   → CreateSession (returns session_token)
	POST /game/start                 → StartGame (draws or restores the board)
	POST /game/cells/{index}/toggle  → ToggleCell (reports a new bingo)
	POST /game/advance               → AdvanceQuarter (finishes after quarter 4)
	POST /game/submit                → SubmitGame (records the result)

Game operations require the X-Session-Token header. Requests for one
session run one at a time; different sessions run in parallel.

# Error Mapping

	index outside 0-24       → 400
	no stored game           → 404
	game already finished    → 409
	fewer than 25 fields     → 503
	result could not be saved → 502, the game is kept for a retry

Corrupt stored state is logged and discarded; the client sees 404 and can
start again.
*/
package handlers
