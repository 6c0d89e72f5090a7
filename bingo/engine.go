// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bingo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// FieldSource supplies the fields for a fresh board. gameID may be empty.
type FieldSource interface {
	DrawFields(ctx context.Context, gameID string) ([]Field, error)
}

// ResultSink records a finished game and returns a confirmation id.
type ResultSink interface {
	Record(ctx context.Context, sub Submission) (string, error)
}

// SessionStore persists serialized sessions per browsing session.
// Load reports ok=false when nothing is stored for key.
type SessionStore interface {
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	Save(ctx context.Context, key string, data []byte) error
	Clear(ctx context.Context, key string) error
}

// ToggleOutcome is the result of a cell toggle.
type ToggleOutcome struct {
	Cell  Cell
	Bingo *BingoEvent
}

// AdvanceOutcome is the result of a quarter advance. Result is set once
// the game is finished.
type AdvanceOutcome struct {
	Quarter  int
	Finished bool
	Result   *FinalResult
}

// Engine drives one GameSession and persists it after every mutation.
type Engine struct {
	key     string
	fields  FieldSource
	sink    ResultSink
	store   SessionStore
	session *GameSession
}

func NewEngine(key string, fields FieldSource, sink ResultSink, store SessionStore) *Engine {
	return &Engine{key: key, fields: fields, sink: sink, store: store}
}

// Session returns the loaded session, or nil before Start/Resume.
func (e *Engine) Session() *GameSession {
	return e.session
}

// Start restores the stored session or, if there is none, draws a fresh
// board for gameID and starts quarter 1. Corrupt stored state is logged,
// discarded and replaced by a fresh game.
func (e *Engine) Start(ctx context.Context, gameID, player string) (*GameSession, error) {
	s, err := e.restore(ctx)
	switch {
	case err == nil:
		e.session = s
		return s, nil
	case errors.Is(err, ErrCorruptState):
		slog.Warn("discarding corrupt session state", "session", e.key, "error", err)
		if err := e.store.Clear(ctx, e.key); err != nil {
			return nil, fmt.Errorf("clear corrupt session: %w", err)
		}
	case !errors.Is(err, ErrNoSession):
		return nil, err
	}

	board, err := e.drawBoard(ctx, gameID)
	if err != nil {
		return nil, err
	}

	s = NewGameSession(board, gameID, player)
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	e.session = s

	slog.Info("game started", "session", e.key, "game_id", gameID)
	return s, nil
}

// Resume restores the stored session. It returns ErrNoSession when
// nothing is stored, and also after discarding corrupt state.
func (e *Engine) Resume(ctx context.Context) (*GameSession, error) {
	s, err := e.restore(ctx)
	if errors.Is(err, ErrCorruptState) {
		slog.Warn("discarding corrupt session state", "session", e.key, "error", err)
		if err := e.store.Clear(ctx, e.key); err != nil {
			return nil, fmt.Errorf("clear corrupt session: %w", err)
		}
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	e.session = s
	return s, nil
}

func (e *Engine) restore(ctx context.Context) (*GameSession, error) {
	data, ok, err := e.store.Load(ctx, e.key)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, ErrNoSession
	}

	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}

	if snap.Fields != nil {
		board, err := NewBoard(snap.Fields)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
		return Restore(snap, board)
	}

	// no saved layout: indices land on a newly drawn board, which is
	// stored right away so later loads show the same layout
	board, err := e.drawBoard(ctx, snap.GameID)
	if err != nil {
		return nil, err
	}
	s, err := Restore(snap, board)
	if err != nil {
		return nil, err
	}
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Toggle flips the cell at index, checks for a bingo and persists.
func (e *Engine) Toggle(ctx context.Context, index int) (ToggleOutcome, error) {
	if e.session == nil {
		return ToggleOutcome{}, ErrNoSession
	}

	bingo, err := e.session.Toggle(index)
	if err != nil {
		return ToggleOutcome{}, err
	}
	if bingo != nil {
		slog.Info("bingo achieved",
			"session", e.key,
			"quarter", bingo.Quarter,
			"line", bingo.LineType,
			"bingos", e.session.CumulativeBingos,
		)
	}

	if err := e.persist(ctx, e.session); err != nil {
		return ToggleOutcome{}, err
	}

	cell, _ := e.session.Board.Cell(index)
	return ToggleOutcome{Cell: cell, Bingo: bingo}, nil
}

// AdvanceQuarter closes the current quarter. Before the last quarter it
// draws a fresh board; after the last quarter it finishes the game and
// returns the final result. A failed draw leaves the session unchanged.
func (e *Engine) AdvanceQuarter(ctx context.Context) (AdvanceOutcome, error) {
	s := e.session
	if s == nil {
		return AdvanceOutcome{}, ErrNoSession
	}
	if s.Finished || s.ScoreboardID != "" {
		return AdvanceOutcome{}, ErrGameOver
	}

	if s.Quarter >= MaxQuarter {
		s.finish()
		if err := e.persist(ctx, s); err != nil {
			return AdvanceOutcome{}, err
		}
		res := s.Result()
		slog.Info("game finished", "session", e.key, "bingos", res.Bingos, "activated_fields", res.ActivatedFields)
		return AdvanceOutcome{Quarter: s.Quarter, Finished: true, Result: &res}, nil
	}

	board, err := e.drawBoard(ctx, s.GameID)
	if err != nil {
		return AdvanceOutcome{}, err
	}
	if err := s.nextQuarter(board); err != nil {
		return AdvanceOutcome{}, err
	}
	if err := e.persist(ctx, s); err != nil {
		return AdvanceOutcome{}, err
	}

	slog.Info("quarter advanced", "session", e.key, "quarter", s.Quarter)
	return AdvanceOutcome{Quarter: s.Quarter}, nil
}

// Submit sends the result to the sink. On success the stored session is
// cleared; on failure it is kept so the player can retry. If clearing
// fails, the session is stored with its confirmation id and locked.
func (e *Engine) Submit(ctx context.Context) (string, error) {
	if e.session == nil {
		return "", ErrNoSession
	}

	sub := e.session.Submission()
	id := e.session.ScoreboardID
	if id == "" {
		var err error
		id, err = e.sink.Record(ctx, sub)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
		}
	}

	if err := e.store.Clear(ctx, e.key); err != nil {
		// a stored confirmation makes the next Submit skip the sink
		e.session.ScoreboardID = id
		if perr := e.persist(ctx, e.session); perr != nil {
			return "", fmt.Errorf("clear submitted session %s: %w", id, errors.Join(err, perr))
		}
		slog.Warn("submitted session kept with confirmation", "session", e.key, "confirmation", id, "error", err)
	}
	e.session = nil

	slog.Info("result submitted", "session", e.key, "confirmation", id, "quarters_played", sub.QuartersPlayed)
	return id, nil
}

// Abandon discards the session.
func (e *Engine) Abandon(ctx context.Context) error {
	if err := e.store.Clear(ctx, e.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	e.session = nil
	return nil
}

func (e *Engine) drawBoard(ctx context.Context, gameID string) (*Board, error) {
	fields, err := e.fields.DrawFields(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("draw fields: %w", err)
	}
	return NewBoard(fields)
}

func (e *Engine) persist(ctx context.Context, s *GameSession) error {
	data, err := EncodeSnapshot(s.Snapshot())
	if err != nil {
		return err
	}
	if err := e.store.Save(ctx, e.key, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
