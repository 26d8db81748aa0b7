// Package parse loads a pre-computed SLR(1) action/goto table and drives it
// over a token stream to build a ptree.Tree.
//
// This package deliberately does not construct SLR tables from a grammar —
// per the scope this toolchain targets, the CFG/transitions/reductions
// tables are bundled text resources, produced elsewhere and consumed here,
// exactly as original_source/wlp4gen.cc's populate_cfg/populate_slr load
// them rather than deriving them. The table shape and reduce-before-shift
// driving loop are grounded on tokensToTrees/reduceTree/reduceStates/shift
// in original_source/wlp4gen.cc; the table's pretty-printer follows
// internal/ictiobus/parse/slr.go's rosed-based String().
package parse

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/rheo5/WLP4-compiler/internal/compileerr"
	"github.com/rheo5/WLP4-compiler/internal/grammar"
)

type stateSymbol struct {
	state  string
	symbol string
}

// Table is an SLR(1) action/goto table: shift/goto transitions keyed by
// (state, symbol), and reductions keyed by (state, lookahead symbol).
type Table struct {
	Initial      string
	transitions  map[stateSymbol]string
	reductions   map[stateSymbol]int
	gram         *grammar.Grammar
}

// Transition returns the shift/goto target for (state, symbol), if any.
func (t *Table) Transition(state, symbol string) (string, bool) {
	s, ok := t.transitions[stateSymbol{state, symbol}]
	return s, ok
}

// Reduction returns the rule number to reduce by on (state, lookahead), if
// any.
func (t *Table) Reduction(state, lookahead string) (int, bool) {
	r, ok := t.reductions[stateSymbol{state, lookahead}]
	return r, ok
}

// LoadTransitions parses a ".TRANSITIONS"-headed text table: each
// subsequent line is "state symbol next-state", as populate_slr in
// original_source/wlp4gen.cc reads it.
func LoadTransitions(text string) (map[stateSymbol]string, string, error) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return nil, "", compileerr.Loader("empty transitions table")
	}

	out := map[stateSymbol]string{}
	initial := ""
	first := true
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, "", compileerr.Loader("malformed transition line: %q", line)
		}
		out[stateSymbol{fields[0], fields[1]}] = fields[2]
		if first {
			initial = fields[0]
			first = false
		}
	}
	if first {
		return nil, "", compileerr.Loader("transitions table has no entries")
	}
	return out, initial, nil
}

// LoadReductions parses a ".REDUCTIONS"-headed text table: each subsequent
// line is "state rule-number lookahead-symbol", as populate_slr reads it
// (the reduction is keyed by (state, lookahead) and maps to the rule
// number).
func LoadReductions(text string) (map[stateSymbol]int, error) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return nil, compileerr.Loader("empty reductions table")
	}

	out := map[stateSymbol]int{}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, compileerr.Loader("malformed reduction line: %q", line)
		}
		num, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, compileerr.Loader("malformed rule number in reduction line %q: %v", line, err)
		}
		out[stateSymbol{fields[0], fields[2]}] = num
	}
	return out, nil
}

// Load builds a Table from a grammar plus its transitions/reductions text
// resources.
func Load(g *grammar.Grammar, transitionsText, reductionsText string) (*Table, error) {
	trans, initial, err := LoadTransitions(transitionsText)
	if err != nil {
		return nil, err
	}
	reds, err := LoadReductions(reductionsText)
	if err != nil {
		return nil, err
	}
	return &Table{Initial: initial, transitions: trans, reductions: reds, gram: g}, nil
}

// String renders the table as a rosed-formatted grid of states x symbols,
// mirroring slrTable.String() in internal/ictiobus/parse/slr.go.
func (t *Table) String() string {
	states := map[string]bool{}
	symbols := map[string]bool{}
	for ss := range t.transitions {
		states[ss.state] = true
		symbols[ss.symbol] = true
	}
	for ss := range t.reductions {
		states[ss.state] = true
		symbols[ss.symbol] = true
	}

	stateNames := make([]string, 0, len(states))
	for s := range states {
		stateNames = append(stateNames, s)
	}
	sort.Strings(stateNames)

	symNames := make([]string, 0, len(symbols))
	for s := range symbols {
		symNames = append(symNames, s)
	}
	sort.Strings(symNames)

	data := make([][]string, 0, len(stateNames)+1)
	header := append([]string{"STATE"}, symNames...)
	data = append(data, header)

	for _, s := range stateNames {
		row := []string{s}
		for _, sym := range symNames {
			cell := ""
			if next, ok := t.Transition(s, sym); ok {
				cell = fmt.Sprintf("s%s", next)
			} else if rule, ok := t.Reduction(s, sym); ok {
				cell = fmt.Sprintf("r%d", rule)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
