// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/lukasmk87/Bball-Bingo-neo/cliparse"
	"github.com/lukasmk87/Bball-Bingo-neo/db"
	"github.com/lukasmk87/Bball-Bingo-neo/handlers"
	"github.com/lukasmk87/Bball-Bingo-neo/middleware"
)

func NewRouter(d *db.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(cfg)
	catalogHandler := handlers.NewCatalogHandler(d, cfg)
	gameHandler := handlers.NewGameHandler(d, cfg)
	scoreboardHandler := handlers.NewScoreboardHandler(d, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sessions
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))

	// Catalog (public)
	mux.HandleFunc("GET /teams", middleware.WithLogging(catalogHandler.ListTeams))
	mux.HandleFunc("GET /teams/{id}/games", middleware.WithLogging(catalogHandler.ListGames))
	mux.HandleFunc("GET /bingo-fields", middleware.WithLogging(catalogHandler.DrawFields))

	// Game operations (X-Session-Token)
	mux.HandleFunc("POST /game/start", middleware.WithLogging(gameHandler.StartGame))
	mux.HandleFunc("GET /game", middleware.WithLogging(gameHandler.GetGame))
	mux.HandleFunc("DELETE /game", middleware.WithLogging(gameHandler.AbandonGame))
	mux.HandleFunc("POST /game/cells/{index}/toggle", middleware.WithLogging(gameHandler.ToggleCell))
	mux.HandleFunc("POST /game/advance", middleware.WithLogging(gameHandler.AdvanceQuarter))
	mux.HandleFunc("GET /game/result", middleware.WithLogging(gameHandler.GetResult))
	mux.HandleFunc("POST /game/submit", middleware.WithLogging(gameHandler.SubmitGame))

	// Scoreboard
	mux.HandleFunc("POST /scoreboard", middleware.WithLogging(scoreboardHandler.RecordScore))
	mux.HandleFunc("GET /scoreboard", middleware.WithLogging(scoreboardHandler.ListScores))
	mux.HandleFunc("GET /stats", middleware.WithLogging(scoreboardHandler.GetStats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Basketball Bingo API v1"))
	})

	return mux
}
