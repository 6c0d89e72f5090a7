// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bingo

import (
	"errors"
	"fmt"
	"testing"
)

func testFields(n int, prefix string) []Field {
	fields := make([]Field, n)
	for i := range fields {
		fields[i] = Field{
			ID:    fmt.Sprintf("%s-%d", prefix, i),
			Label: fmt.Sprintf("Event %s %d", prefix, i),
		}
	}
	return fields
}

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{"exactly 25", 25, false},
		{"short list", 20, true},
		{"long list", 26, true},
		{"empty", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoard(testFields(tt.count, "f"))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBoardSize) {
					t.Fatalf("Expected ErrInvalidBoardSize, got %v", err)
				}
				if board != nil {
					t.Error("Expected no board on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBoard() error = %v", err)
			}
			if len(board.Cells()) != BoardSize {
				t.Errorf("Expected %d cells, got %d", BoardSize, len(board.Cells()))
			}
			if board.ActiveCount() != 0 {
				t.Errorf("Expected all cells inactive, got %d active", board.ActiveCount())
			}
		})
	}
}

func TestBoardCellsKeepOrder(t *testing.T) {
	fields := testFields(BoardSize, "f")
	board, err := NewBoard(fields)
	if err != nil {
		t.Fatal(err)
	}

	for i, c := range board.Cells() {
		if c.Index != i {
			t.Errorf("Cell %d has index %d", i, c.Index)
		}
		if c.FieldID != fields[i].ID || c.Label != fields[i].Label {
			t.Errorf("Cell %d = %+v, want field %+v", i, c, fields[i])
		}
	}
}

func TestBoardToggle(t *testing.T) {
	board, err := NewBoard(testFields(BoardSize, "f"))
	if err != nil {
		t.Fatal(err)
	}

	if err := board.Toggle(7); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if got := board.ActiveIndices(); len(got) != 1 || got[0] != 7 {
		t.Errorf("Expected [7] active, got %v", got)
	}

	if err := board.Toggle(7); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if board.ActiveCount() != 0 {
		t.Errorf("Expected toggle twice to restore inactive cell, got %d active", board.ActiveCount())
	}

	for _, idx := range []int{-1, 25, 100} {
		if err := board.Toggle(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Toggle(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
	if board.ActiveCount() != 0 {
		t.Error("Out-of-range toggle changed the board")
	}
}
