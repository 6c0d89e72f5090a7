// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bingo

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the persisted form of a GameSession. The first five fields
// are the stable shape; the rest are optional on read so older snapshots
// still restore.
type Snapshot struct {
	Quarter                   int          `json:"quarter"`
	CumulativeActivatedFields int          `json:"cumulativeActivatedFields"`
	CumulativeBingos          int          `json:"cumulativeBingos"`
	Achieved                  bool         `json:"achieved"`
	ActiveCellIndices         []int        `json:"activeCellIndices"`
	Finished                  bool         `json:"finished,omitempty"`
	GameID                    string       `json:"gameId,omitempty"`
	Player                    string       `json:"player,omitempty"`
	Fields                    []Field      `json:"fields,omitempty"`
	EventLog                  []BingoEvent `json:"eventLog,omitempty"`
	ScoreboardID              string       `json:"scoreboardId,omitempty"`
}

// Snapshot captures the session for persistence.
func (s *GameSession) Snapshot() Snapshot {
	events := make([]BingoEvent, len(s.Events))
	copy(events, s.Events)
	return Snapshot{
		Quarter:                   s.Quarter,
		CumulativeActivatedFields: s.CumulativeActivatedFields,
		CumulativeBingos:          s.CumulativeBingos,
		Achieved:                  s.Achieved,
		ActiveCellIndices:         s.Board.ActiveIndices(),
		Finished:                  s.Finished,
		GameID:                    s.GameID,
		Player:                    s.Player,
		Fields:                    s.Board.Fields(),
		EventLog:                  events,
		ScoreboardID:              s.ScoreboardID,
	}
}

// EncodeSnapshot serializes a snapshot.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses and validates a stored snapshot. Any failure is
// reported as ErrCorruptState.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Validate checks the snapshot invariants.
func (snap Snapshot) Validate() error {
	if snap.Quarter < 1 || snap.Quarter > MaxQuarter {
		return fmt.Errorf("%w: quarter %d outside 1-%d", ErrCorruptState, snap.Quarter, MaxQuarter)
	}
	if snap.CumulativeActivatedFields < 0 || snap.CumulativeBingos < 0 {
		return fmt.Errorf("%w: negative counters", ErrCorruptState)
	}

	completed := snap.quartersCompleted()
	if snap.CumulativeActivatedFields > BoardSize*completed {
		return fmt.Errorf("%w: %d activated fields after %d quarters", ErrCorruptState, snap.CumulativeActivatedFields, completed)
	}
	// one bingo per quarter at most; the running quarter only counts once won
	maxBingos := completed
	if !snap.Finished && (snap.Achieved || snap.hasEvent(snap.Quarter)) {
		maxBingos++
	}
	if snap.CumulativeBingos > maxBingos {
		return fmt.Errorf("%w: %d bingos with %d quarters won at most", ErrCorruptState, snap.CumulativeBingos, maxBingos)
	}

	seen := make(map[int]bool, len(snap.ActiveCellIndices))
	for _, i := range snap.ActiveCellIndices {
		if i < 0 || i >= BoardSize {
			return fmt.Errorf("%w: active index %d out of range", ErrCorruptState, i)
		}
		if seen[i] {
			return fmt.Errorf("%w: duplicate active index %d", ErrCorruptState, i)
		}
		seen[i] = true
	}

	if snap.Fields != nil && len(snap.Fields) != BoardSize {
		return fmt.Errorf("%w: %d saved fields", ErrCorruptState, len(snap.Fields))
	}

	if len(snap.EventLog) > snap.CumulativeBingos {
		return fmt.Errorf("%w: %d events for %d bingos", ErrCorruptState, len(snap.EventLog), snap.CumulativeBingos)
	}
	for _, e := range snap.EventLog {
		if e.Quarter < 1 || e.Quarter > snap.Quarter {
			return fmt.Errorf("%w: event in quarter %d", ErrCorruptState, e.Quarter)
		}
		if len(e.WinningCellIndices) != gridWidth {
			return fmt.Errorf("%w: event with %d cells", ErrCorruptState, len(e.WinningCellIndices))
		}
		for _, i := range e.WinningCellIndices {
			if i < 0 || i >= BoardSize {
				return fmt.Errorf("%w: winning index %d out of range", ErrCorruptState, i)
			}
		}
	}
	return nil
}

func (snap Snapshot) hasEvent(quarter int) bool {
	for _, e := range snap.EventLog {
		if e.Quarter == quarter {
			return true
		}
	}
	return false
}

func (snap Snapshot) quartersCompleted() int {
	if snap.Finished {
		return snap.Quarter
	}
	return snap.Quarter - 1
}

// Restore rebuilds a session from snapshot onto board. The board must have
// the layout the snapshot was taken on. A set achieved flag re-marks the
// quarter's winning line so the quarter stays locked.
func Restore(snap Snapshot, board *Board) (*GameSession, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	s := &GameSession{
		Quarter:                   snap.Quarter,
		CumulativeActivatedFields: snap.CumulativeActivatedFields,
		CumulativeBingos:          snap.CumulativeBingos,
		Achieved:                  snap.Achieved,
		QuartersCompleted:         snap.quartersCompleted(),
		Finished:                  snap.Finished,
		GameID:                    snap.GameID,
		Player:                    snap.Player,
		Board:                     board,
		Events:                    append([]BingoEvent(nil), snap.EventLog...),
		ScoreboardID:              snap.ScoreboardID,
	}
	for _, i := range snap.ActiveCellIndices {
		board.cells[i].Active = true
	}

	if event, ok := s.currentEvent(); ok {
		s.Achieved = true
		for _, i := range event.WinningCellIndices {
			board.cells[i].Winning = true
		}
	} else if s.Achieved {
		// older snapshots carry no event log; recover the line from the board
		if line, ok := DetectWin(board.ActiveMask()); ok {
			board.markWinning(line)
		}
	}

	return s, nil
}

// currentEvent returns the bingo recorded for the quarter in progress.
func (s *GameSession) currentEvent() (BingoEvent, bool) {
	for _, e := range s.Events {
		if e.Quarter == s.Quarter {
			return e, true
		}
	}
	return BingoEvent{}, false
}
