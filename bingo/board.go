// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bingo

import "fmt"

const (
	// BoardSize is the number of cells on a board (5×5, row-major).
	BoardSize = 25
	gridWidth = 5

	// MaxQuarter is the last quarter of a game. There is no quarter 5.
	MaxQuarter = 4
)

// Field is one event description supplied by the field source.
type Field struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
}

// Cell is a board position. Identity is Index; FieldID is informational.
type Cell struct {
	Index    int    `json:"index"`
	FieldID  string `json:"field_id"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
	Active   bool   `json:"active"`
	Winning  bool   `json:"winning"`
}

// Board holds exactly BoardSize cells.
type Board struct {
	cells [BoardSize]Cell
}

// NewBoard builds an inactive board from exactly BoardSize fields.
func NewBoard(fields []Field) (*Board, error) {
	if len(fields) != BoardSize {
		return nil, fmt.Errorf("%w: got %d fields, need %d", ErrInvalidBoardSize, len(fields), BoardSize)
	}

	b := &Board{}
	for i, f := range fields {
		b.cells[i] = Cell{
			Index:    i,
			FieldID:  f.ID,
			Label:    f.Label,
			Category: f.Category,
		}
	}
	return b, nil
}

// Toggle flips the active flag of the cell at index.
func (b *Board) Toggle(index int) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	b.cells[index].Active = !b.cells[index].Active
	return nil
}

// Cell returns a copy of the cell at index.
func (b *Board) Cell(index int) (Cell, error) {
	if err := checkIndex(index); err != nil {
		return Cell{}, err
	}
	return b.cells[index], nil
}

// Cells returns a copy of all cells in board order.
func (b *Board) Cells() []Cell {
	out := make([]Cell, BoardSize)
	copy(out, b.cells[:])
	return out
}

// Fields returns the layout the board was built from.
func (b *Board) Fields() []Field {
	out := make([]Field, BoardSize)
	for i, c := range b.cells {
		out[i] = Field{ID: c.FieldID, Label: c.Label, Category: c.Category}
	}
	return out
}

// ActiveMask returns the active flags in board order.
func (b *Board) ActiveMask() [BoardSize]bool {
	var mask [BoardSize]bool
	for i, c := range b.cells {
		mask[i] = c.Active
	}
	return mask
}

// ActiveCount returns the number of active cells.
func (b *Board) ActiveCount() int {
	n := 0
	for _, c := range b.cells {
		if c.Active {
			n++
		}
	}
	return n
}

// ActiveIndices returns the indices of active cells in ascending order.
func (b *Board) ActiveIndices() []int {
	indices := []int{}
	for i, c := range b.cells {
		if c.Active {
			indices = append(indices, i)
		}
	}
	return indices
}

// markWinning flags the cells of line for display.
func (b *Board) markWinning(line Line) {
	for _, i := range line.Indices {
		b.cells[i].Winning = true
	}
}

// fieldIDs returns the field identifiers at the given indices.
func (b *Board) fieldIDs(indices [gridWidth]int) []string {
	ids := make([]string, 0, gridWidth)
	for _, i := range indices {
		ids = append(ids, b.cells[i].FieldID)
	}
	return ids
}

func checkIndex(index int) error {
	if index < 0 || index >= BoardSize {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return nil
}
