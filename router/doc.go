// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Basketball Bingo API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health and sessions:

	GET  /health
	POST /sessions - Issue a session token

Catalog (public):

	GET /teams                 - Teams that are not blocked
	GET /teams/{id}/games      - Games within the configured window
	GET /bingo-fields?game_id= - 25 shuffled fields

Game (requires X-Session-Token):

	POST   /game/start                - Start or resume a board
	GET    /game                      - Current board and counters
	POST   /game/cells/{index}/toggle - Toggle a cell
	POST   /game/advance              - Close the quarter
	GET    /game/result               - Result preview
	POST   /game/submit               - Record the result
	DELETE /game                      - Abandon the game

Scoreboard:

	POST /scoreboard - Record a submission from an external client
	GET  /scoreboard - Entries, newest first
	GET  /stats      - Global totals

All routes except /health and / are wrapped in middleware.WithLogging.
*/
package router
