// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bingo

import "fmt"

// BingoEvent records the one bingo a quarter can yield.
type BingoEvent struct {
	Quarter            int      `json:"quarter"`
	WinningCellIDs     []string `json:"winningCellIds"`
	WinningCellIndices []int    `json:"winningCellIndices"`
	LineType           LineType `json:"lineType"`
}

// FinalResult is the end-of-game snapshot sent to the result sink.
type FinalResult struct {
	ActivatedFields int     `json:"activatedFields"`
	Bingos          int     `json:"bingos"`
	WinRate         float64 `json:"winRate"`
	FieldRate       float64 `json:"fieldRate"`
	QuartersPlayed  int     `json:"quartersPlayed"`
}

// ComputeResult derives win rate and field rate for quartersPlayed quarters.
func ComputeResult(activatedFields, bingos, quartersPlayed int) FinalResult {
	res := FinalResult{
		ActivatedFields: activatedFields,
		Bingos:          bingos,
		QuartersPlayed:  quartersPlayed,
	}
	if quartersPlayed <= 0 {
		return res
	}
	res.WinRate = float64(bingos) / float64(quartersPlayed) * 100
	res.FieldRate = float64(activatedFields) / float64(BoardSize*quartersPlayed) * 100
	return res
}

// GameSession is the mutable state of one play session. It is owned by a
// single client and never mutated concurrently.
type GameSession struct {
	Quarter                   int
	CumulativeActivatedFields int
	CumulativeBingos          int
	Achieved                  bool
	QuartersCompleted         int
	Finished                  bool
	GameID                    string
	Player                    string
	Board                     *Board
	Events                    []BingoEvent

	// ScoreboardID is set once the result was recorded but the stored
	// session could not be cleared. Such a session accepts no moves.
	ScoreboardID string
}

// NewGameSession starts quarter 1 on board.
func NewGameSession(board *Board, gameID, player string) *GameSession {
	return &GameSession{
		Quarter: 1,
		GameID:  gameID,
		Player:  player,
		Board:   board,
	}
}

// Toggle flips the cell at index and runs win detection. It returns the
// bingo awarded by this toggle, if any. Deactivating a cell never revokes
// a counted bingo.
func (s *GameSession) Toggle(index int) (*BingoEvent, error) {
	if s.Finished || s.ScoreboardID != "" {
		return nil, ErrGameOver
	}
	if err := s.Board.Toggle(index); err != nil {
		return nil, err
	}
	return s.checkWin(), nil
}

func (s *GameSession) checkWin() *BingoEvent {
	if s.Achieved {
		return nil
	}
	line, ok := DetectWin(s.Board.ActiveMask())
	if !ok {
		return nil
	}

	s.Achieved = true
	s.Board.markWinning(line)
	s.CumulativeBingos++

	event := BingoEvent{
		Quarter:            s.Quarter,
		WinningCellIDs:     s.Board.fieldIDs(line.Indices),
		WinningCellIndices: line.Indices[:],
		LineType:           line.Type,
	}
	s.Events = append(s.Events, event)
	return &event
}

// closeQuarter folds the current board into the cumulative counters.
func (s *GameSession) closeQuarter() {
	s.CumulativeActivatedFields += s.Board.ActiveCount()
	s.QuartersCompleted++
}

// nextQuarter starts the following quarter on a fresh board.
func (s *GameSession) nextQuarter(board *Board) error {
	if s.Quarter >= MaxQuarter {
		return fmt.Errorf("%w: quarter %d is the last", ErrGameOver, s.Quarter)
	}
	s.closeQuarter()
	s.Quarter++
	s.Achieved = false
	s.Board = board
	return nil
}

// finish closes the last quarter and locks the board.
func (s *GameSession) finish() {
	s.closeQuarter()
	s.Finished = true
}

// ActivatedFields returns the total including the quarter in progress.
func (s *GameSession) ActivatedFields() int {
	if s.Finished {
		return s.CumulativeActivatedFields
	}
	return s.CumulativeActivatedFields + s.Board.ActiveCount()
}

// QuartersPlayed counts completed quarters plus the one in progress.
func (s *GameSession) QuartersPlayed() int {
	if s.Finished {
		return s.QuartersCompleted
	}
	return s.QuartersCompleted + 1
}

// Result computes the final result for the current state. For an
// unfinished game the quarter in progress counts as played.
func (s *GameSession) Result() FinalResult {
	return ComputeResult(s.ActivatedFields(), s.CumulativeBingos, s.QuartersPlayed())
}

// Submission is the payload recorded by the result sink.
func (s *GameSession) Submission() Submission {
	events := make([]BingoEvent, len(s.Events))
	copy(events, s.Events)
	return Submission{
		FinalResult: s.Result(),
		EventLog:    events,
		GameID:      s.GameID,
		Player:      s.Player,
	}
}

// Submission is what the result sink receives.
type Submission struct {
	FinalResult
	EventLog []BingoEvent `json:"eventLog"`
	GameID   string       `json:"gameId,omitempty"`
	Player   string       `json:"player,omitempty"`
}

// Validate checks the submission against the result sink contract.
func (s Submission) Validate() error {
	if s.ActivatedFields < 0 || s.Bingos < 0 {
		return fmt.Errorf("counters must not be negative")
	}
	if s.QuartersPlayed < 1 || s.QuartersPlayed > MaxQuarter {
		return fmt.Errorf("quarters played must be between 1 and %d", MaxQuarter)
	}
	if s.WinRate < 0 || s.FieldRate < 0 {
		return fmt.Errorf("rates must not be negative")
	}
	for i, e := range s.EventLog {
		if len(e.WinningCellIDs) != gridWidth {
			return fmt.Errorf("event %d: need %d winning cells, got %d", i, gridWidth, len(e.WinningCellIDs))
		}
		if e.Quarter < 1 || e.Quarter > MaxQuarter {
			return fmt.Errorf("event %d: quarter %d out of range", i, e.Quarter)
		}
		switch e.LineType {
		case LineRow, LineColumn, LineDiagonal:
		default:
			return fmt.Errorf("event %d: unknown line type %q", i, e.LineType)
		}
	}
	return nil
}
