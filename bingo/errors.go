// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bingo

import "errors"

var (
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrIndexOutOfRange  = errors.New("cell index out of range")
	ErrCorruptState     = errors.New("corrupt session state")
	ErrSubmissionFailed = errors.New("result submission failed")
	ErrNoSession        = errors.New("no game in progress")
	ErrGameOver         = errors.New("game is over")
)
