package parse

import (
	"fmt"

	"github.com/rheo5/WLP4-compiler/internal/compileerr"
	"github.com/rheo5/WLP4-compiler/internal/grammar"
	"github.com/rheo5/WLP4-compiler/internal/ptree"
	"github.com/rheo5/WLP4-compiler/internal/token"
)

// Parse drives an SLR(1) table over stream, producing the root of a parse
// tree. stream must already carry a leading BOF, a trailing EOF, and a
// final token whose lexeme is token.Accept, matching the input convention
// original_source/wlp4gen.cc's main() builds (push_front BOF, push_back
// EOF, push_back .ACCEPT) before calling tokensToTrees.
//
// The driving discipline is exactly tokensToTrees/reduceTree/reduceStates/
// shift: at every step, reduce as many times as the table allows before
// attempting a single shift; encountering the accept sentinel with no valid
// transition ends the parse; anything else with no valid transition and no
// applicable reduction is a ParseError.
func Parse(g *grammar.Grammar, table *Table, stream token.Stream) (*ptree.Tree, error) {
	return ParseTraced(g, table, stream, nil)
}

// ParseTraced is Parse, additionally invoking trace (if non-nil) with a
// one-line description of every shift and reduce action as it happens.
func ParseTraced(g *grammar.Grammar, table *Table, stream token.Stream, trace func(string)) (*ptree.Tree, error) {
	stateStack := []string{table.Initial}
	var treeStack []*ptree.Tree

	cur := stream.Next()

	for {
		top := stateStack[len(stateStack)-1]

		for {
			ruleNum, ok := table.Reduction(top, cur.Class().ID())
			if !ok {
				break
			}
			rule, ok := g.Rule(ruleNum)
			if !ok {
				return nil, compileerr.Parse("reduction references unknown rule %d", ruleNum)
			}

			n := len(rule.RHS)
			children := make([]*ptree.Tree, n)
			for k := n - 1; k >= 0; k-- {
				children[k] = treeStack[len(treeStack)-1]
				treeStack = treeStack[:len(treeStack)-1]
				stateStack = stateStack[:len(stateStack)-1]
			}
			treeStack = append(treeStack, ptree.NewInner(rule.LHS, children))
			if trace != nil {
				trace(fmt.Sprintf("reduce %s (rule %d)", rule.String(), ruleNum))
			}

			top = stateStack[len(stateStack)-1]
			gotoState, ok := table.Transition(top, rule.LHS)
			if !ok {
				return nil, compileerr.ParseAt(cur.Line(), "no goto from state %s on %s", top, rule.LHS)
			}
			stateStack = append(stateStack, gotoState)
			top = gotoState
		}

		shiftState, ok := table.Transition(top, cur.Class().ID())
		if ok {
			if trace != nil {
				trace(fmt.Sprintf("shift %s %q -> state %s", cur.Class().Human(), cur.Lexeme(), shiftState))
			}
			treeStack = append(treeStack, ptree.NewLeaf(cur))
			stateStack = append(stateStack, shiftState)
			cur = stream.Next()
			continue
		}

		if cur.Lexeme() == token.Accept {
			if len(treeStack) != 1 {
				return nil, compileerr.Parse("parse completed with %d roots on the tree stack, expected 1", len(treeStack))
			}
			return treeStack[0], nil
		}

		return nil, compileerr.ParseAt(cur.Line(), "unexpected %s %q", cur.Class().Human(), cur.Lexeme())
	}
}
