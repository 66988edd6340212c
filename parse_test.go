package rollgrid

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseGrid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Grid[CellState]
	}{
		{
			name: "cross",
			in:   "@.@\n.@.\n@.@",
			want: Grid[CellState]{
				{Occupied, Free, Occupied},
				{Free, Occupied, Free},
				{Occupied, Free, Occupied},
			},
		},
		{
			name: "trailing-newline",
			in:   "@.\n.@\n",
			want: Grid[CellState]{
				{Occupied, Free},
				{Free, Occupied},
			},
		},
		{
			name: "crlf",
			in:   "@.\r\n..\r\n",
			want: Grid[CellState]{
				{Occupied, Free},
				{Free, Free},
			},
		},
		{
			name: "single",
			in:   "@",
			want: Grid[CellState]{{Occupied}},
		},
		{
			name: "empty",
			in:   "",
			want: Grid[CellState]{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGrid(tt.in)
			if err != nil {
				t.Fatalf("ParseGrid(%q): %v", tt.in, err)
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("ParseGrid(%q) mismatch (-got +want):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseGridErrors(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     *ParseError
		sentinel error
	}{
		{
			name:     "short-second-row",
			in:       "@.@\n@.",
			want:     &ParseError{Kind: DimensionMismatch, Row: 0, Len: 3, Want: 2},
			sentinel: ErrDimensionMismatch,
		},
		{
			name:     "hash",
			in:       "@#@",
			want:     &ParseError{Kind: InvalidCharacter, Row: 0, Col: 1, Char: '#'},
			sentinel: ErrInvalidCharacter,
		},
		{
			name:     "removed-glyph",
			in:       "@.\n.x",
			want:     &ParseError{Kind: InvalidCharacter, Row: 1, Col: 1, Char: 'x'},
			sentinel: ErrInvalidCharacter,
		},
		{
			name:     "rectangle",
			in:       "@@@\n...",
			want:     &ParseError{Kind: DimensionMismatch, Row: 0, Len: 3, Want: 2},
			sentinel: ErrDimensionMismatch,
		},
		{
			name:     "blank-line",
			in:       "@.@\n\n@.@",
			want:     &ParseError{Kind: DimensionMismatch, Row: 1, Len: 0, Want: 3},
			sentinel: ErrDimensionMismatch,
		},
		{
			name:     "row-longer-than-scanner-token",
			in:       strings.Repeat("@", 70000) + "\n" + strings.Repeat(".", 70000),
			want:     &ParseError{Kind: DimensionMismatch, Row: 0, Len: 70000, Want: 2},
			sentinel: ErrDimensionMismatch,
		},
		{
			name:     "multibyte",
			in:       "é.\n..",
			want:     &ParseError{Kind: InvalidCharacter, Row: 0, Col: 0, Char: 'é'},
			sentinel: ErrInvalidCharacter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGrid(tt.in)
			if err == nil {
				t.Fatalf("ParseGrid(%q) = %v, want error", tt.in, g)
			}
			if g != nil {
				t.Errorf("ParseGrid(%q) returned a partial grid %v", tt.in, g)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("ParseGrid(%q) error %v is not %v", tt.in, err, tt.sentinel)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("ParseGrid(%q) error %T is not a *ParseError", tt.in, err)
			}
			if diff := cmp.Diff(pe, tt.want); diff != "" {
				t.Errorf("ParseGrid(%q) error mismatch (-got +want):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseGrid("@#@")
	if got, want := err.Error(), `rollgrid: invalid cell character: '#' at row 0, column 1`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	_, err = ParseGrid("@.@\n@.")
	if got, want := err.Error(), "rollgrid: row length does not match row count: row 0 has length 3, want 2"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestReadGrid(t *testing.T) {
	g, err := ReadGrid(strings.NewReader("..\n.@\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := Render(g); got != "..\n.@\n" {
		t.Errorf("Render(ReadGrid) = %q", got)
	}

	if _, err := ReadGrid(errReader{}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("ReadGrid(errReader) = %v, want wrapped boom", err)
	}
}

func TestParseCell(t *testing.T) {
	for _, tt := range []struct {
		r      rune
		want   CellState
		wantOk bool
	}{
		{'.', Free, true},
		{'@', Occupied, true},
		{'x', 0, false},
		{' ', 0, false},
	} {
		got, ok := ParseCell(tt.r)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("ParseCell(%q) = %v, %v; want %v, %v", tt.r, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestReadLinesMatchesScanner(t *testing.T) {
	for _, in := range []string{
		"",
		"\n",
		"\n\n",
		"@.",
		"@.\n",
		"@.\r\n.@\r\n",
		"@.\n.@\r",
		"@.\n\n.@",
	} {
		var want []string
		s := bufio.NewScanner(strings.NewReader(in))
		for s.Scan() {
			want = append(want, s.Text())
		}
		got, err := readLines(strings.NewReader(in))
		if err != nil {
			t.Fatalf("readLines(%q): %v", in, err)
		}
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("readLines(%q) mismatch (-got +want):\n%s", in, diff)
		}
	}
}

func TestReadLinesLong(t *testing.T) {
	row := strings.Repeat("@", 1<<17)
	got, err := readLines(strings.NewReader(row + "\n" + row))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != row || got[1] != row {
		t.Errorf("readLines returned %d lines", len(got))
	}
}
