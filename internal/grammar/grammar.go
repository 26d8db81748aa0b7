// Package grammar holds the context-free grammar data model shared by the
// CFG loader and the SLR parser driver.
//
// Production is grounded directly on internal/tunascript.Production from the
// teacher repository (a grammar rule is just its right-hand side symbols,
// looked up by rule number and keyed by left-hand side), simplified to match
// the flatter "numbered list of production rules" data model spec.md §3
// describes rather than ictiobus/grammar's LR-item-oriented Grammar type.
package grammar

import (
	"strings"

	"github.com/rheo5/WLP4-compiler/internal/compileerr"
)

// Production is the right-hand side of a rule, as grammar symbols.
// An empty Production denotes the special ".EMPTY" (epsilon) rule.
type Production []string

// Equal reports whether p and o hold the same symbols in the same order.
func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	if len(p) == 0 {
		return ".EMPTY"
	}
	return strings.Join(p, " ")
}

// Rule is one numbered production: LHS -> RHS.
type Rule struct {
	Num int
	LHS string
	RHS Production
}

func (r Rule) String() string {
	return r.LHS + " -> " + r.RHS.String()
}

// Grammar is a numbered list of production rules. Rule 0 is the augmented
// start rule (its LHS is the synthetic start symbol, its RHS the grammar's
// real start symbol).
type Grammar struct {
	Rules []Rule
}

// StartSymbol returns the LHS of rule 0.
func (g *Grammar) StartSymbol() string {
	if len(g.Rules) == 0 {
		return ""
	}
	return g.Rules[0].LHS
}

// Rule returns the rule with the given number, or false if out of range.
func (g *Grammar) Rule(num int) (Rule, bool) {
	if num < 0 || num >= len(g.Rules) {
		return Rule{}, false
	}
	return g.Rules[num], true
}

// IsTerminal reports whether sym never appears as the LHS of a rule,
// mirroring the convention ictiobus/parse checks (a symbol is a terminal
// iff it is not one of the grammar's non-terminals).
func (g *Grammar) IsTerminal(sym string) bool {
	return !g.isNonTerminal(sym)
}

func (g *Grammar) isNonTerminal(sym string) bool {
	for _, r := range g.Rules {
		if r.LHS == sym {
			return true
		}
	}
	return false
}

// Load parses a ".CFG"-format grammar description: the first non-blank line
// is a free-form header (skipped), and each following line is either blank,
// or "LHS RHS-SYMBOLS...", where a lone ".EMPTY" as the first RHS symbol
// denotes an epsilon production. Rule numbers are assigned in file order,
// starting at 0, exactly as populate_cfg in original_source/wlp4gen.cc
// builds its rule-number-indexed table.
func Load(text string) (*Grammar, error) {
	lines := strings.Split(text, "\n")

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i >= len(lines) {
		return nil, compileerr.Loader("empty grammar description")
	}
	i++ // skip header line

	g := &Grammar{}
	num := 0
	for ; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) == 0 {
			continue
		}
		lhs := fields[0]
		rest := fields[1:]

		var rhs Production
		if len(rest) == 1 && rest[0] == ".EMPTY" {
			rhs = Production{}
		} else {
			rhs = Production(rest)
		}

		g.Rules = append(g.Rules, Rule{Num: num, LHS: lhs, RHS: rhs})
		num++
	}

	if len(g.Rules) == 0 {
		return nil, compileerr.Loader("grammar description has no rules")
	}
	return g, nil
}
