package rollgrid

import (
	"reflect"
	"sync"

	"golang.org/x/exp/constraints"
	"tailscale.com/util/deephash"
)

// Grid is a row-major matrix of cells, indexed as g[y][x].
//
// Generations of the pruning engine never share rows: code that derives a new
// generation starts from Clone and leaves the receiver alone.
type Grid[T any] [][]T

func (g Grid[T]) At(p Pt) T {
	return g[p.Y][p.X]
}

func (g Grid[T]) Set(p Pt, v T) {
	g[p.Y][p.X] = v
}

// AtOk is like At, but reports false for points outside the grid. Bounds
// are checked against p's own row, so ragged grids are safe.
func (g Grid[T]) AtOk(p Pt) (T, bool) {
	if p.Y < 0 || p.Y >= len(g) || p.X < 0 || p.X >= len(g[p.Y]) {
		var zero T
		return zero, false
	}
	return g[p.Y][p.X], true
}

func MakeGrid[T any](x, y int) Grid[T] {
	out := make(Grid[T], y)
	for i := range out {
		out[i] = make([]T, x)
	}
	return out
}

// Size returns the width and height of the grid as a point. The width is
// that of row 0; grids built by ParseGrid or MakeGrid are rectangular.
func (g Grid[T]) Size() Pt {
	if len(g) == 0 {
		return Pt{}
	}
	return Pt{len(g[0]), len(g)}
}

// Clone returns a deep copy of g. Rows of the copy do not alias rows of g.
func (g Grid[T]) Clone() Grid[T] {
	if g == nil {
		return nil
	}
	out := make(Grid[T], len(g))
	for y, row := range g {
		out[y] = append([]T(nil), row...)
	}
	return out
}

// ForEach calls f for every cell in row-major order.
func (g Grid[T]) ForEach(f func(Pt, T)) {
	for y, row := range g {
		for x, v := range row {
			f(Pt{x, y}, v)
		}
	}
}

// Count returns the number of cells for which match returns true.
func (g Grid[T]) Count(match func(T) bool) int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if match(v) {
				n++
			}
		}
	}
	return n
}

// ForNeighborCells calls f with each in-bounds Moore neighbor of p and its
// value. Neighbors that fall outside the grid are skipped.
func (g Grid[T]) ForNeighborCells(p Pt, f func(Pt, T) (keepGoing bool)) {
	p.ForNeighbors(func(n Pt) bool {
		v, ok := g.AtOk(n)
		if !ok {
			return true
		}
		return f(n, v)
	})
}

// NeighborCells returns the values of the in-bounds Moore neighbors of p:
// 3 at a corner, 5 along an edge and 8 in the interior (fewer for grids
// narrower than 3 cells). Order is unspecified.
func (g Grid[T]) NeighborCells(p Pt) []T {
	out := make([]T, 0, 8)
	g.ForNeighborCells(p, func(_ Pt, v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

var (
	hashersMu sync.Mutex
	hashers   map[reflect.Type]any // map[reflect.Type]func(*Grid[T]) deephash.Sum
)

// Hash returns a deephash of the grid contents. Two generations with equal
// cells hash equally.
func (g Grid[T]) Hash() deephash.Sum {
	hashersMu.Lock()
	if hashers == nil {
		hashers = make(map[reflect.Type]any)
	}
	rt := reflect.TypeOf(g)
	h, ok := hashers[rt]
	if !ok {
		h = deephash.HasherForType[Grid[T]]()
		hashers[rt] = h
	}
	hashersMu.Unlock()
	return h.(func(*Grid[T]) deephash.Sum)(&g)
}

type Pt = Pt2[int]

type Pt2[T constraints.Signed] struct {
	X, Y T
}

// ForNeighbors calls f for the 8 points surrounding p, stopping early if f
// returns false. Points may lie outside any grid; see Grid.ForNeighborCells.
func (p Pt2[T]) ForNeighbors(f func(Pt2[T]) (keepGoing bool)) {
	for y := T(-1); y <= 1; y++ {
		for x := T(-1); x <= 1; x++ {
			if x == 0 && y == 0 {
				continue
			}
			if !f(Pt2[T]{p.X + x, p.Y + y}) {
				return
			}
		}
	}
}
