// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lukasmk87/Bball-Bingo-neo/bingo"
	"github.com/lukasmk87/Bball-Bingo-neo/cliparse"
	"github.com/lukasmk87/Bball-Bingo-neo/db"
	"github.com/lukasmk87/Bball-Bingo-neo/middleware"
	"github.com/lukasmk87/Bball-Bingo-neo/models"
	"github.com/lukasmk87/Bball-Bingo-neo/store"
)

type CatalogHandler struct {
	cfg     cliparse.Config
	catalog *store.Catalog
	fields  bingo.FieldSource
	now     func() time.Time
}

func NewCatalogHandler(d *db.DB, cfg cliparse.Config) *CatalogHandler {
	return &CatalogHandler{
		cfg:     cfg,
		catalog: store.NewCatalog(d),
		fields:  store.NewFieldStore(d, nil),
		now:     time.Now,
	}
}

// ListTeams handles GET /teams
func (h *CatalogHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.catalog.ListTeams(r.Context())
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, teams)
}

// ListGames handles GET /teams/{id}/games
func (h *CatalogHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")
	if teamID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team_id is required")
		return
	}

	// games that started within the window are still offered
	since := h.now().Add(-h.cfg.GameWindow)
	games, err := h.catalog.ListUpcomingGames(r.Context(), teamID, since)
	if errors.Is(err, store.ErrTeamNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		slog.Error("failed to list games", "team_id", teamID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, games)
}

// DrawFields handles GET /bingo-fields?game_id=
func (h *CatalogHandler) DrawFields(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")

	fields, err := h.fields.DrawFields(r.Context(), gameID)
	if err != nil {
		slog.Error("failed to draw fields", "game_id", gameID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load bingo fields")
		return
	}
	if len(fields) != bingo.BoardSize {
		slog.Warn("field pool too small", "game_id", gameID, "count", len(fields))
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Not enough bingo fields available")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FieldsResponse{Fields: fields})
}
