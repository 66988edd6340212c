// Package rollgrid prunes occupancy grids of paper rolls: occupied cells with
// too few occupied neighbors are removed pass after pass until nothing more
// can be removed.
//
// It also carries a small runner for puzzle solvers whose doc comments hold
// their own sample input and answer (forked from maisem/aoc).
package rollgrid

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log"
	"os"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/maps"
)

type sample struct {
	input string
	want  string
}

var sampleRx = regexp.MustCompile(`(?sm)^\s*want=([^\n]*)(?:\s+(.+\n))?\s*`)

// parseSample parses a doc comment of the form
//
//	/*
//	want=13
//
//	..@@
//	*/
//
// An empty input means the previous part's input is reused.
func parseSample(comment string) (sample, bool) {
	text := strings.TrimPrefix(comment, "//")
	if v, ok := strings.CutPrefix(text, "/*"); ok {
		text = strings.TrimSuffix(v, "*/")
	}
	if m := sampleRx.FindStringSubmatch(text); m != nil {
		return sample{want: m[1], input: m[2]}, true
	}
	return sample{}, false
}

// extractSamples returns the samples found in the doc comments of the
// functions declared in src, keyed by function name.
func extractSamples(src []byte) (map[string]sample, error) {
	fs := token.NewFileSet()
	f, err := parser.ParseFile(fs, "main.go", src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing source to extract samples: %w", err)
	}
	var lastInput string
	samples := make(map[string]sample)
	for _, d := range f.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			s, ok := parseSample(c.Text)
			if !ok {
				continue
			}
			if s.input == "" {
				s.input = lastInput
			}
			samples[fd.Name.Name] = s
			lastInput = s.input
			break
		}
	}
	return samples, nil
}

// Puzzle is embedded (as *Puzzle) in solver structs passed to Run.
type Puzzle struct {
	SampleMode bool

	part    part
	samples map[string]sample
	input   []byte
}

// Input returns the current part's sample input in sample mode, and the
// contents of the -input file otherwise.
func (p *Puzzle) Input() []byte {
	if p.SampleMode {
		return []byte(p.Sample().input)
	}
	if p.input == nil {
		b, err := os.ReadFile(flagInput)
		if err != nil {
			log.Fatalf("reading puzzle input: %v", err)
		}
		p.input = b
	}
	return p.input
}

// Grid parses Input. Bad input is fatal.
func (p *Puzzle) Grid() Grid[CellState] {
	return MustGet(ParseGrid(string(p.Input())))
}

// Driver returns a Driver configured from the command-line flags that logs
// through p.Logf.
func (p *Puzzle) Driver() *Driver {
	return &Driver{
		Rule:     &Rule{Threshold: flagThreshold},
		Parallel: flagParallel,
		Logf:     p.Logf,
	}
}

// Logf logs only when -debug is set. It satisfies logger.Logf.
func (p *Puzzle) Logf(format string, args ...any) {
	if flagDebug {
		log.Printf(format, args...)
	}
}

func (p *Puzzle) Sample() sample {
	s, ok := p.samples[p.part.Name]
	if !ok {
		log.Fatalf("no sample found for %v", p.part.Name)
	}
	return s
}

type part struct {
	fn   func() any
	Part string
	Name string
}

var partRx = regexp.MustCompile(`^Part(\d+)$`)

// extractParts returns the methods of *x named Part{n}, ordered by n.
// They must have the signature func() any.
func extractParts(x any) []part {
	v := reflect.ValueOf(x).Elem()
	if v.Kind() != reflect.Struct {
		log.Fatalf("Run: got %T; want pointer to struct", x)
	}
	vt := v.Type()
	byPart := map[string]part{}
	for i := 0; i < vt.NumMethod(); i++ {
		mn := vt.Method(i).Name
		m := partRx.FindStringSubmatch(mn)
		if m == nil {
			continue
		}
		fn, ok := v.Method(i).Interface().(func() any)
		if !ok {
			log.Fatalf("%v: got %v; want func() any", mn, vt.Method(i).Type)
		}
		byPart[m[1]] = part{fn: fn, Part: m[1], Name: mn}
	}
	names := maps.Keys(byPart)
	slices.SortFunc(names, func(a, b string) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		return strings.Compare(a, b)
	})
	parts := make([]part, 0, len(names))
	for _, n := range names {
		parts = append(parts, byPart[n])
	}
	return parts
}

var (
	flagPart       string
	flagInput      string
	flagDebug      bool
	flagOnlySample bool
	flagSkipSample bool
	flagParallel   bool
	flagThreshold  int
)

func init() {
	flag.StringVar(&flagPart, "part", "", "part to run")
	flag.StringVar(&flagInput, "input", "input/4.txt", "puzzle input file")
	flag.BoolVar(&flagOnlySample, "sample", false, "only run sample")
	flag.BoolVar(&flagSkipSample, "skip-sample", false, "skip sample")
	flag.BoolVar(&flagDebug, "debug", false, "debug mode")
	flag.BoolVar(&flagParallel, "parallel", false, "evaluate each pass across goroutines")
	flag.IntVar(&flagThreshold, "threshold", DefaultThreshold, "occupied neighbors a cell needs to survive a pass")
}

var initFlags = sync.OnceFunc(flag.Parse)

// checkFlags rejects flag values that cannot be run.
func checkFlags() error {
	if err := (Rule{Threshold: flagThreshold}).Validate(); err != nil {
		return fmt.Errorf("-threshold: %w", err)
	}
	return nil
}

// Run runs every Part{n} method of slvr, a pointer to a struct embedding
// *Puzzle. src is the solver's own source, from which the samples are read.
// Each part is checked against its sample before it runs on the real input.
func Run(src []byte, slvr any) {
	initFlags()
	if err := checkFlags(); err != nil {
		log.Fatal(err)
	}
	samples, err := extractSamples(src)
	if err != nil {
		log.Fatal(err)
	}
	p := &Puzzle{samples: samples}
	reflect.ValueOf(slvr).Elem().FieldByName("Puzzle").Set(reflect.ValueOf(p))
	parts := extractParts(slvr)

	skipSample := flagSkipSample
	if flagThreshold != DefaultThreshold && !skipSample {
		fmt.Printf("threshold %d: skipping samples\n", flagThreshold)
		skipSample = true
	}
	for _, ps := range parts {
		if flagPart != "" && ps.Part != flagPart {
			continue
		}
		p.part = ps
		for _, sm := range []bool{true, false} {
			if !sm && flagOnlySample {
				continue
			} else if sm && skipSample {
				continue
			}
			p.SampleMode = sm
			if !sm {
				// Prime the input.
				p.Input()
			}
			t0 := time.Now()
			got := ps.fn()
			if sm {
				want := p.Sample().want
				if fmt.Sprint(got) != want {
					fmt.Printf("part %s: %v ❌; want %v\n", ps.Part, got, want)
					return
				}
				fmt.Printf("part %s sample: %v ✅ (%v)\n", ps.Part, got, time.Since(t0).Round(time.Microsecond))
			} else {
				fmt.Printf("part %s: %v (took %v)\n", ps.Part, got, time.Since(t0).Round(time.Microsecond))
			}
		}
	}
}
