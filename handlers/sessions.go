// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/lukasmk87/Bball-Bingo-neo/auth"
	"github.com/lukasmk87/Bball-Bingo-neo/cliparse"
	"github.com/lukasmk87/Bball-Bingo-neo/middleware"
	"github.com/lukasmk87/Bball-Bingo-neo/models"
)

type SessionHandler struct {
	cfg cliparse.Config
}

func NewSessionHandler(cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{cfg: cfg}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	token, sessionID, err := auth.GenerateSessionToken(h.cfg.SessionSalt)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session created", "session", sessionID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionToken: token,
	})
}
