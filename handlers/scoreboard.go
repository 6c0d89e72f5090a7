// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/lukasmk87/Bball-Bingo-neo/auth"
	"github.com/lukasmk87/Bball-Bingo-neo/bingo"
	"github.com/lukasmk87/Bball-Bingo-neo/cliparse"
	"github.com/lukasmk87/Bball-Bingo-neo/db"
	"github.com/lukasmk87/Bball-Bingo-neo/middleware"
	"github.com/lukasmk87/Bball-Bingo-neo/models"
	"github.com/lukasmk87/Bball-Bingo-neo/store"
)

type ScoreboardHandler struct {
	cfg    cliparse.Config
	scores *store.ScoreStore
}

func NewScoreboardHandler(d *db.DB, cfg cliparse.Config) *ScoreboardHandler {
	return &ScoreboardHandler{
		cfg:    cfg,
		scores: store.NewScoreStore(d),
	}
}

// RecordScore handles POST /scoreboard
func (h *ScoreboardHandler) RecordScore(w http.ResponseWriter, r *http.Request) {
	var sub bingo.Submission
	if err := middleware.ParseJSONBody(r, &sub); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	sub.Player = strings.TrimSpace(sub.Player)

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	id, err := h.scores.ForClient(ipHash).Record(r.Context(), sub)
	if errors.Is(err, store.ErrInvalidSubmission) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to record score", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save result")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
		Status:       "success",
		ScoreboardID: id,
	})
}

// ListScores handles GET /scoreboard?limit=&player=&game_id=
func (h *ScoreboardHandler) ListScores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ScoreFilter{
		Username: strings.TrimSpace(q.Get("player")),
		GameID:   q.Get("game_id"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		filter.Limit = limit
	}

	entries, err := h.scores.ListScores(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list scores", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// GetStats handles GET /stats
func (h *ScoreboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.scores.GlobalStats(r.Context())
	if err != nil {
		slog.Error("failed to load stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
