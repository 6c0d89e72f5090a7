// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package bingo implements the board engine for Basketball Bingo.

# Board

A Board is exactly 25 cells in row-major order, built from the fields a
FieldSource supplies:

	board, err := bingo.NewBoard(fields) // ErrInvalidBoardSize unless len(fields) == 25

# Win Lines

DetectWin is a pure function over the active flags. Lines are evaluated
rows first, then columns, then the diagonals {0,6,12,18,24} and
{4,8,12,16,20}; the first complete line wins.

	line, ok := bingo.DetectWin(board.ActiveMask())

Line types are classified from the index spread: 4 is a row, 20 a column,
anything else a diagonal.

# Quarters

A game has four quarters, each on a freshly drawn board. A quarter yields
at most one bingo: once the achieved flag is set, further complete lines
are ignored until the next quarter, and deactivating a cell never takes a
counted bingo back.

# Engine

Engine wires a GameSession to three ports:

  - FieldSource: draws fields for a new board
  - ResultSink: records the final result
  - SessionStore: holds the serialized session between requests

Every mutation persists the session. Start restores a stored session or
begins a new one; corrupt stored state is logged and replaced.

	engine := bingo.NewEngine(sessionID, fields, sink, store)
	engine.Start(ctx, gameID, player)
	engine.Toggle(ctx, 12)
	engine.AdvanceQuarter(ctx)
	id, err := engine.Submit(ctx)

# Results

	winRate   = bingos / quartersPlayed × 100
	fieldRate = activatedFields / (25 × quartersPlayed) × 100

A game submitted before the fourth quarter counts the quarter in progress
as played.

# Errors

	ErrInvalidBoardSize - field source did not supply 25 fields
	ErrIndexOutOfRange  - toggle outside 0-24
	ErrCorruptState     - stored session failed validation
	ErrSubmissionFailed - result sink rejected or unreachable; session kept
	ErrNoSession        - no stored game for this session
	ErrGameOver         - game already finished
*/
package bingo
