package rollgrid

import "strings"

// CellState is the state of one cell of the floor.
type CellState uint8

const (
	Free     CellState = iota // '.'
	Occupied                  // '@'
	Removed                   // was Occupied; never becomes Occupied again
)

// ParseCell maps an input character to its state. Only '.' and '@' are
// valid input; Removed cells only arise from pruning.
func ParseCell(r rune) (CellState, bool) {
	switch r {
	case '.':
		return Free, true
	case '@':
		return Occupied, true
	}
	return 0, false
}

func (c CellState) String() string {
	switch c {
	case Free:
		return "."
	case Occupied:
		return "@"
	case Removed:
		return "x"
	}
	return "?"
}

// IsOccupied reports whether c is Occupied.
func IsOccupied(c CellState) bool { return c == Occupied }

// Render returns g with one line per row, using the glyphs of
// CellState.String.
func Render(g Grid[CellState]) string {
	var sb strings.Builder
	for _, row := range g {
		for _, c := range row {
			sb.WriteString(c.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
