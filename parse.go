package rollgrid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInvalidCharacter indicates a character other than '.' or '@'.
	ErrInvalidCharacter = errors.New("rollgrid: invalid cell character")
	// ErrDimensionMismatch indicates a row whose length differs from the
	// number of rows.
	ErrDimensionMismatch = errors.New("rollgrid: row length does not match row count")
)

// ParseErrorKind says why a grid failed to parse.
type ParseErrorKind int

const (
	InvalidCharacter ParseErrorKind = iota
	DimensionMismatch
)

func (k ParseErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "InvalidCharacter"
	case DimensionMismatch:
		return "DimensionMismatch"
	}
	return fmt.Sprintf("ParseErrorKind(%d)", int(k))
}

// ParseError is returned by ParseGrid and ReadGrid. It matches
// ErrInvalidCharacter or ErrDimensionMismatch under errors.Is.
type ParseError struct {
	Kind ParseErrorKind
	Row  int // 0-based

	// Set for InvalidCharacter.
	Col  int
	Char rune

	// Set for DimensionMismatch.
	Len  int // length of the offending row
	Want int // number of rows
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case InvalidCharacter:
		return fmt.Sprintf("%v: %q at row %d, column %d", ErrInvalidCharacter, e.Char, e.Row, e.Col)
	case DimensionMismatch:
		return fmt.Sprintf("%v: row %d has length %d, want %d", ErrDimensionMismatch, e.Row, e.Len, e.Want)
	}
	return fmt.Sprintf("rollgrid: parse error (%v) at row %d", e.Kind, e.Row)
}

func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case InvalidCharacter:
		return ErrInvalidCharacter
	case DimensionMismatch:
		return ErrDimensionMismatch
	}
	return nil
}

// ParseGrid parses text into a square grid, one row per line.
// See ReadGrid.
func ParseGrid(text string) (Grid[CellState], error) {
	return ReadGrid(strings.NewReader(text))
}

// ReadGrid reads a grid from r, one row per line. Every character must be
// '.' or '@', and every row must be exactly as long as the number of rows.
// On error no grid is returned.
func ReadGrid(r io.Reader) (Grid[CellState], error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("rollgrid: reading grid: %w", err)
	}

	g := make(Grid[CellState], 0, len(lines))
	for y, line := range lines {
		row := make([]CellState, 0, len(line))
		x := 0
		for _, c := range line {
			st, ok := ParseCell(c)
			if !ok {
				return nil, &ParseError{Kind: InvalidCharacter, Row: y, Col: x, Char: c}
			}
			row = append(row, st)
			x++
		}
		if len(row) != len(lines) {
			return nil, &ParseError{Kind: DimensionMismatch, Row: y, Len: len(row), Want: len(lines)}
		}
		g = append(g, row)
	}
	return g, nil
}

// readLines splits r into lines the way bufio.ScanLines does (a trailing
// newline adds no line; a "\r" before each line ending is dropped), but without
// a limit on line length.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if err == io.EOF && line == "" {
			return lines, nil
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		lines = append(lines, line)
		if err == io.EOF {
			return lines, nil
		}
	}
}
