package rollgrid

import (
	"errors"
	"fmt"
)

// DefaultThreshold is the number of occupied neighbors an occupied cell needs
// to survive a pass.
const DefaultThreshold = 4

// Bounds accepted by Rule.Validate. A threshold below 1 never removes
// anything; 9 already removes every occupied cell in the first pass.
const (
	MinThreshold = 1
	MaxThreshold = 9
)

// ErrThreshold is returned by Rule.Validate.
var ErrThreshold = errors.New("rollgrid: threshold must be between 1 and 9")

// Rule decides which occupied cells a pass removes.
type Rule struct {
	// Threshold is the minimum number of occupied neighbors an occupied cell
	// needs to survive.
	Threshold int
}

// DefaultRule removes occupied cells with fewer than 4 occupied neighbors.
var DefaultRule = Rule{Threshold: DefaultThreshold}

// Validate reports whether r.Threshold is within [MinThreshold, MaxThreshold].
func (r Rule) Validate() error {
	if r.Threshold < MinThreshold || r.Threshold > MaxThreshold {
		return fmt.Errorf("%w, got %d", ErrThreshold, r.Threshold)
	}
	return nil
}

// OccupiedNeighbors returns how many of the in-bounds Moore neighbors of p are
// Occupied in g.
func OccupiedNeighbors(g Grid[CellState], p Pt) int {
	n := 0
	g.ForNeighborCells(p, func(_ Pt, c CellState) bool {
		if c == Occupied {
			n++
		}
		return true
	})
	return n
}

// Removable reports whether the cell at p is Occupied in g and would be
// removed by a pass over g.
func (r Rule) Removable(g Grid[CellState], p Pt) bool {
	return g.At(p) == Occupied && OccupiedNeighbors(g, p) < r.Threshold
}

// Prune applies one pass of DefaultRule to g. See Rule.Prune.
func Prune(g Grid[CellState]) (next Grid[CellState], removed int) {
	return DefaultRule.Prune(g)
}

// Prune returns the generation after g and the number of cells that went
// from Occupied to Removed. Every cell is judged against g alone; g is not
// modified.
func (r Rule) Prune(g Grid[CellState]) (next Grid[CellState], removed int) {
	next, pts := r.prune(g, occupiedCells(g))
	return next, len(pts)
}

// PruneParallel is like Prune but evaluates each row in its own goroutine.
// The result is identical to Prune.
func (r Rule) PruneParallel(g Grid[CellState]) (next Grid[CellState], removed int) {
	type rowResult struct {
		row     []CellState
		removed int
	}
	ys := make([]int, len(g))
	for y := range ys {
		ys[y] = y
	}
	rows := Parallel(ys, func(y int) rowResult {
		rr := rowResult{row: append([]CellState(nil), g[y]...)}
		for x := range rr.row {
			if r.Removable(g, Pt{x, y}) {
				rr.row[x] = Removed
				rr.removed++
			}
		}
		return rr
	})
	next = make(Grid[CellState], len(rows))
	for y, rr := range rows {
		next[y] = rr.row
		removed += rr.removed
	}
	return next, removed
}

// prune judges each candidate against g and writes the outcome into a clone
// of g. It returns the clone and the candidates that were removed.
func (r Rule) prune(g Grid[CellState], candidates *Queue[Pt]) (Grid[CellState], []Pt) {
	next := g.Clone()
	var removed []Pt
	candidates.While(func(p Pt) bool {
		if r.Removable(g, p) {
			next.Set(p, Removed)
			removed = append(removed, p)
		}
		return true
	})
	return next, removed
}

func occupiedCells(g Grid[CellState]) *Queue[Pt] {
	q := NewQueue[Pt]()
	g.ForEach(func(p Pt, c CellState) {
		if c == Occupied {
			q.Push(p)
		}
	})
	return q
}

// frontier returns the cells of g that can change in the pass after the one
// that removed the given points: the surviving occupied neighbors of those
// points. Every other occupied cell kept all of its occupied neighbors and so
// survives again.
func frontier(g Grid[CellState], removed []Pt) *Queue[Pt] {
	q := NewQueue[Pt]()
	for _, p := range removed {
		g.ForNeighborCells(p, func(n Pt, c CellState) bool {
			if c == Occupied {
				q.Push(n)
			}
			return true
		})
	}
	return q
}
