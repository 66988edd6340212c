// Command rolls counts the paper rolls a forklift can reach: first those
// reachable right away, then all of them once reachable rolls keep being
// taken away.
package main

import (
	_ "embed"

	"github.com/maisem/rollgrid"
)

func main() {
	rollgrid.Run(source, &solver{})
}

//go:embed main.go
var source []byte

type solver struct {
	*rollgrid.Puzzle
}

/*
want=13

..@@.@@@@.
@@@.@.@.@@
@@@@@.@.@@
@.@@@@..@.
@@.@@@@.@@
.@@@@@@@.@
.@.@.@.@@@
@.@@@.@@@@
.@@@@@@@@.
@.@.@@@.@.
*/
func (s solver) Part1() any {
	next, n := s.Driver().Step(s.Grid())
	s.Logf("after one pass:\n%s", rollgrid.Render(next))
	return n
}

// want=43
func (s solver) Part2() any {
	r := s.Driver().Run(s.Grid())
	s.Logf("quiescent after %d passes:\n%s", r.Passes, rollgrid.Render(r.Final))
	return r.Total
}
