// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/lukasmk87/Bball-Bingo-neo/bingo"
)

// Game status constants
const (
	GameScheduled = "scheduled"
	GameLive      = "live"
	GameFinished  = "finished"
)

// GuestName is recorded for results submitted without a player name.
const GuestName = "Gast"

// Request types

type StartGameRequest struct {
	GameID string `json:"game_id"`
	Player string `json:"player"`
}

// Response types

type CreateSessionResponse struct {
	SessionToken string `json:"session_token"`
}

type GameState struct {
	Quarter                   int                `json:"quarter"`
	MaxQuarter                int                `json:"max_quarter"`
	CumulativeActivatedFields int                `json:"cumulative_activated_fields"`
	CumulativeBingos          int                `json:"cumulative_bingos"`
	Achieved                  bool               `json:"achieved"`
	Finished                  bool               `json:"finished"`
	GameID                    string             `json:"game_id,omitempty"`
	Player                    string             `json:"player,omitempty"`
	Cells                     []bingo.Cell       `json:"cells"`
	Events                    []bingo.BingoEvent `json:"events"`
	Result                    bingo.FinalResult  `json:"result"`
}

type ToggleResponse struct {
	Cell  bingo.Cell        `json:"cell"`
	Bingo *bingo.BingoEvent `json:"bingo,omitempty"`
	Game  GameState         `json:"game"`
}

type AdvanceResponse struct {
	Quarter  int                `json:"quarter"`
	Finished bool               `json:"finished"`
	Result   *bingo.FinalResult `json:"result,omitempty"`
	Game     GameState          `json:"game"`
}

type SubmitResponse struct {
	Status       string `json:"status"`
	ScoreboardID string `json:"scoreboardId"`
}

type FieldsResponse struct {
	Fields []bingo.Field `json:"fields"`
}

// Domain types

type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Club string `json:"club,omitempty"`
}

type Game struct {
	ID       string    `json:"id"`
	TeamID   string    `json:"team_id"`
	Opponent string    `json:"opponent"`
	Location string    `json:"location,omitempty"`
	Status   string    `json:"status"`
	StartsAt time.Time `json:"starts_at"`
}

// GameDetails is the game context frozen into a scoreboard row.
type GameDetails struct {
	Team     string    `json:"team"`
	Opponent string    `json:"opponent"`
	StartsAt time.Time `json:"starts_at"`
}

type ScoreEntry struct {
	ID              string       `json:"id"`
	Username        string       `json:"username"`
	GameID          string       `json:"game_id,omitempty"`
	ActivatedFields int          `json:"activated_fields"`
	Bingos          int          `json:"bingos"`
	WinRate         float64      `json:"win_rate"`
	FieldRate       float64      `json:"field_rate"`
	QuartersPlayed  int          `json:"quarters_played"`
	Game            *GameDetails `json:"game,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	PlayedAgo       string       `json:"played_ago"`
}

type ScoreFilter struct {
	Username string
	GameID   string
	Limit    int
}

type GlobalStats struct {
	GamesPlayed     int64     `json:"games_played"`
	TotalBingos     int64     `json:"total_bingos"`
	BingosPerGame   float64   `json:"bingos_per_game"`
	UpdatedAt       time.Time `json:"updated_at"`
	GamesPlayedText string    `json:"games_played_text"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
