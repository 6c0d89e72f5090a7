// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - StartGameRequest: game_id, player

Submissions posted to /scoreboard use bingo.Submission directly.

# Response Types

Types for JSON responses:

  - CreateSessionResponse: session_token
  - GameState: board cells, quarter, counters, result preview
  - ToggleResponse: toggled cell, bingo (if any), game
  - AdvanceResponse: quarter, finished, result (once finished), game
  - SubmitResponse: status, scoreboardId
  - FieldsResponse: fields
  - ErrorResponse: error, message

# Domain Types

  - Team: a team players can pick a game for
  - Game: a scheduled game of a team
  - GameDetails: game context frozen into a scoreboard row
  - ScoreEntry: one submitted result, with a humanized age
  - GlobalStats: running totals over all submitted games

# Constants

Game status values:

	GameScheduled = "scheduled"
	GameLive      = "live"
	GameFinished  = "finished"

Results without a player name are recorded as GuestName ("Gast").
*/
package models
