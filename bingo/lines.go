// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bingo

// LineType classifies a completed win-line.
type LineType string

const (
	LineRow      LineType = "row"
	LineColumn   LineType = "column"
	LineDiagonal LineType = "diagonal"
)

// Line is a five-cell win-line.
type Line struct {
	Indices [gridWidth]int
	Type    LineType
}

// winLines lists every line in evaluation order: rows, columns, then the
// two diagonals.
var winLines = buildWinLines()

func buildWinLines() []Line {
	lines := make([]Line, 0, 2*gridWidth+2)

	for r := 0; r < gridWidth; r++ {
		var idx [gridWidth]int
		for k := 0; k < gridWidth; k++ {
			idx[k] = r*gridWidth + k
		}
		lines = append(lines, Line{Indices: idx, Type: ClassifyLine(idx)})
	}

	for c := 0; c < gridWidth; c++ {
		var idx [gridWidth]int
		for k := 0; k < gridWidth; k++ {
			idx[k] = c + k*gridWidth
		}
		lines = append(lines, Line{Indices: idx, Type: ClassifyLine(idx)})
	}

	down := [gridWidth]int{0, 6, 12, 18, 24}
	anti := [gridWidth]int{4, 8, 12, 16, 20}
	lines = append(lines,
		Line{Indices: down, Type: ClassifyLine(down)},
		Line{Indices: anti, Type: ClassifyLine(anti)},
	)

	return lines
}

// WinLines returns all win-lines in evaluation order.
func WinLines() []Line {
	out := make([]Line, len(winLines))
	copy(out, winLines)
	return out
}

// DetectWin returns the first complete line in evaluation order.
// At most one line is reported even when several are complete.
func DetectWin(active [BoardSize]bool) (Line, bool) {
	for _, line := range winLines {
		complete := true
		for _, i := range line.Indices {
			if !active[i] {
				complete = false
				break
			}
		}
		if complete {
			return line, true
		}
	}
	return Line{}, false
}

// ClassifyLine derives the line type from the spread between the first
// and last index: 4 is a row, 20 is a column, anything else a diagonal.
func ClassifyLine(indices [gridWidth]int) LineType {
	switch indices[gridWidth-1] - indices[0] {
	case gridWidth - 1:
		return LineRow
	case gridWidth * (gridWidth - 1):
		return LineColumn
	default:
		return LineDiagonal
	}
}
