// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lukasmk87/Bball-Bingo-neo/auth"
	"github.com/lukasmk87/Bball-Bingo-neo/bingo"
	"github.com/lukasmk87/Bball-Bingo-neo/cliparse"
	"github.com/lukasmk87/Bball-Bingo-neo/db"
	"github.com/lukasmk87/Bball-Bingo-neo/middleware"
	"github.com/lukasmk87/Bball-Bingo-neo/models"
	"github.com/lukasmk87/Bball-Bingo-neo/store"
)

// SessionHeader carries the session token on game requests.
const SessionHeader = "X-Session-Token"

const maxPlayerName = 50

type GameHandler struct {
	cfg      cliparse.Config
	fields   bingo.FieldSource
	sessions bingo.SessionStore
	sink     func(r *http.Request) bingo.ResultSink
	locks    *sessionLocks
}

func NewGameHandler(d *db.DB, cfg cliparse.Config) *GameHandler {
	scores := store.NewScoreStore(d)
	return &GameHandler{
		cfg:      cfg,
		fields:   store.NewFieldStore(d, nil),
		sessions: store.NewSessionStore(d),
		sink: func(r *http.Request) bingo.ResultSink {
			return scores.ForClient(auth.HashIP(middleware.GetClientIP(r), cfg.IPHashSalt))
		},
		locks: newSessionLocks(),
	}
}

// engine validates the session token and returns an engine for the
// session, holding the session lock until release is called.
func (h *GameHandler) engine(w http.ResponseWriter, r *http.Request) (engine *bingo.Engine, release func(), ok bool) {
	sessionID, err := auth.ValidateSessionToken(r.Header.Get(SessionHeader), h.cfg.SessionSalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return nil, nil, false
	}

	release = h.locks.lock(sessionID)
	return bingo.NewEngine(sessionID, h.fields, h.sink(r), h.sessions), release, true
}

// StartGame handles POST /game/start
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	var req models.StartGameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Player = strings.TrimSpace(req.Player)
	if utf8.RuneCountInString(req.Player) > maxPlayerName {
		middleware.ErrorResponse(w, http.StatusBadRequest, "player name is too long")
		return
	}

	engine, release, ok := h.engine(w, r)
	if !ok {
		return
	}
	defer release()

	s, err := engine.Start(r.Context(), strings.TrimSpace(req.GameID), req.Player)
	if err != nil {
		writeEngineError(w, err, "start game")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, gameState(s))
}

// GetGame handles GET /game
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	engine, release, ok := h.engine(w, r)
	if !ok {
		return
	}
	defer release()

	s, err := engine.Resume(r.Context())
	if err != nil {
		writeEngineError(w, err, "load game")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, gameState(s))
}

// ToggleCell handles POST /game/cells/{index}/toggle
func (h *GameHandler) ToggleCell(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid cell index")
		return
	}

	engine, release, ok := h.engine(w, r)
	if !ok {
		return
	}
	defer release()

	if _, err := engine.Resume(r.Context()); err != nil {
		writeEngineError(w, err, "load game")
		return
	}

	out, err := engine.Toggle(r.Context(), index)
	if err != nil {
		writeEngineError(w, err, "toggle cell")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ToggleResponse{
		Cell:  out.Cell,
		Bingo: out.Bingo,
		Game:  gameState(engine.Session()),
	})
}

// AdvanceQuarter handles POST /game/advance
func (h *GameHandler) AdvanceQuarter(w http.ResponseWriter, r *http.Request) {
	engine, release, ok := h.engine(w, r)
	if !ok {
		return
	}
	defer release()

	if _, err := engine.Resume(r.Context()); err != nil {
		writeEngineError(w, err, "load game")
		return
	}

	out, err := engine.AdvanceQuarter(r.Context())
	if err != nil {
		writeEngineError(w, err, "advance quarter")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdvanceResponse{
		Quarter:  out.Quarter,
		Finished: out.Finished,
		Result:   out.Result,
		Game:     gameState(engine.Session()),
	})
}

// GetResult handles GET /game/result
func (h *GameHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	engine, release, ok := h.engine(w, r)
	if !ok {
		return
	}
	defer release()

	s, err := engine.Resume(r.Context())
	if err != nil {
		writeEngineError(w, err, "load game")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, s.Result())
}

// SubmitGame handles POST /game/submit
func (h *GameHandler) SubmitGame(w http.ResponseWriter, r *http.Request) {
	engine, release, ok := h.engine(w, r)
	if !ok {
		return
	}
	defer release()

	if _, err := engine.Resume(r.Context()); err != nil {
		writeEngineError(w, err, "load game")
		return
	}

	id, err := engine.Submit(r.Context())
	if err != nil {
		writeEngineError(w, err, "submit game")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
		Status:       "success",
		ScoreboardID: id,
	})
}

// AbandonGame handles DELETE /game
func (h *GameHandler) AbandonGame(w http.ResponseWriter, r *http.Request) {
	engine, release, ok := h.engine(w, r)
	if !ok {
		return
	}
	defer release()

	if err := engine.Abandon(r.Context()); err != nil {
		writeEngineError(w, err, "abandon game")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func gameState(s *bingo.GameSession) models.GameState {
	events := s.Events
	if events == nil {
		events = []bingo.BingoEvent{}
	}
	return models.GameState{
		Quarter:                   s.Quarter,
		MaxQuarter:                bingo.MaxQuarter,
		CumulativeActivatedFields: s.CumulativeActivatedFields,
		CumulativeBingos:          s.CumulativeBingos,
		Achieved:                  s.Achieved,
		Finished:                  s.Finished,
		GameID:                    s.GameID,
		Player:                    s.Player,
		Cells:                     s.Board.Cells(),
		Events:                    events,
		Result:                    s.Result(),
	}
}

// writeEngineError maps engine errors onto HTTP responses.
func writeEngineError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, bingo.ErrIndexOutOfRange):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Cell index must be between 0 and 24")
	case errors.Is(err, bingo.ErrNoSession):
		middleware.ErrorResponse(w, http.StatusNotFound, "No game in progress")
	case errors.Is(err, bingo.ErrGameOver):
		middleware.ErrorResponse(w, http.StatusConflict, "Game is already finished")
	case errors.Is(err, bingo.ErrInvalidBoardSize):
		slog.Warn("field pool too small", "action", action, "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Not enough bingo fields available, please try again")
	case errors.Is(err, bingo.ErrSubmissionFailed):
		slog.Error("submission failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Result could not be saved, your game is kept, please try again")
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+action)
	}
}
