package rollgrid

import (
	"fmt"

	"tailscale.com/types/logger"
	"tailscale.com/util/deephash"
)

// State is the state of a Driver after a pass.
type State int

const (
	Running   State = iota // the last pass removed at least one cell
	Quiescent              // the last pass removed nothing; terminal
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Quiescent:
		return "quiescent"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Pass describes one generation produced by a Driver.
type Pass struct {
	N        int // 0 for the first pass
	Removed  int // cells that went from Occupied to Removed in this pass
	Occupied int // cells still Occupied after this pass
	State    State

	Grid Grid[CellState] // the generation this pass produced
}

// Sum returns the hash of p.Grid.
func (p Pass) Sum() deephash.Sum {
	return p.Grid.Hash()
}

// Result is the outcome of running a Driver to its fixpoint.
type Result struct {
	FirstPass int // cells removed by the first pass alone
	Total     int // cells removed across all passes
	Passes    int // passes that removed at least one cell

	Final    Grid[CellState] // the quiescent generation
	FinalSum deephash.Sum    // Final.Hash()
}

// Driver repeatedly prunes a grid until a pass removes nothing.
// The zero value uses DefaultRule.
type Driver struct {
	// Rule, if non-nil, replaces DefaultRule.
	Rule *Rule

	// Parallel evaluates each pass row by row across goroutines instead of
	// revisiting only the cells next to the previous pass's removals.
	Parallel bool

	// Logf, if non-nil, receives one line per pass.
	Logf logger.Logf
}

func (d *Driver) rule() Rule {
	if d.Rule == nil {
		return DefaultRule
	}
	return *d.Rule
}

// Step applies a single pass of d's rule to g, honoring d.Parallel.
func (d *Driver) Step(g Grid[CellState]) (next Grid[CellState], removed int) {
	if d.Parallel {
		return d.rule().PruneParallel(g)
	}
	return d.rule().Prune(g)
}

func (d *Driver) logf() logger.Logf {
	if d.Logf == nil {
		return logger.Discard
	}
	return d.Logf
}

// ForPasses prunes g generation by generation, calling f after each pass.
// It stops after the first pass that removes nothing (which f still sees) or
// when f returns false. Only the latest generation is retained.
func (d *Driver) ForPasses(g Grid[CellState], f func(Pass) (keepGoing bool)) {
	logf := d.logf()
	rule := d.rule()
	occupied := g.Count(IsOccupied)
	var candidates *Queue[Pt]
	for n := 0; ; n++ {
		var next Grid[CellState]
		var removed int
		if d.Parallel {
			next, removed = rule.PruneParallel(g)
		} else {
			if candidates == nil {
				candidates = occupiedCells(g)
			}
			var pts []Pt
			next, pts = rule.prune(g, candidates)
			removed = len(pts)
			candidates = frontier(next, pts)
		}
		occupied -= removed

		p := Pass{
			N:        n,
			Removed:  removed,
			Occupied: occupied,
			State:    Running,
			Grid:     next,
		}
		if removed == 0 {
			p.State = Quiescent
		}
		logf("pass %d: removed %d, %d occupied left, %v", n, removed, occupied, p.State)
		if !f(p) || p.State == Quiescent {
			return
		}
		g = next
	}
}

// Run prunes g until a pass removes nothing.
func (d *Driver) Run(g Grid[CellState]) Result {
	var r Result
	d.ForPasses(g, func(p Pass) bool {
		if p.N == 0 {
			r.FirstPass = p.Removed
		}
		if p.Removed > 0 {
			r.Passes++
		}
		r.Total += p.Removed
		r.Final = p.Grid
		return true
	})
	r.FinalSum = r.Final.Hash()
	return r
}

// RunToFixpoint prunes g with DefaultRule until a pass removes nothing. It
// returns the number of cells removed by the first pass and by all passes.
func RunToFixpoint(g Grid[CellState]) (firstPassCount, cumulativeCount int) {
	r := new(Driver).Run(g)
	return r.FirstPass, r.Total
}
