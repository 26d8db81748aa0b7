// Package resources bundles the text descriptions the scanner, parser, and
// table loaders consume: DFA descriptions for the WLP4 and assembler
// scanners, and a CFG plus its SLR(1) transitions/reductions tables for the
// parser driver.
//
// The WLP4 DFA is embedded verbatim from original_source/dfa.h. The
// assembler DFA was authored in the same ".STATES"/".TRANSITIONS" textual
// convention, since no assembler DFA description was retrievable from the
// example pack. The bundled CFG/transitions/reductions are a small,
// hand-verifiable demonstration grammar (the classic expression grammar
// E -> E + T | T, T -> T * F | F, F -> ( E ) | id and its canonical SLR(1)
// table) rather than the real WLP4 grammar: a full WLP4 SLR(1) table is the
// output of a table-generator run over the WLP4 grammar, which this module
// does not reproduce. config.Config's DFAFile/CFGFile/TransFile/ReduceFile
// fields let an operator point wlp4gen at a real generated WLP4 table
// without any code change; the bundled demo grammar only needs to prove the
// CFG+SLR loader and parser driver (C4/C5) are correct for an arbitrary
// grammar. WLP4-specific symbol collection, type annotation, and code
// generation (C6/C7/C8) are exercised directly against hand-built parse
// trees, bypassing the SLR stage, for exactly this reason.
package resources

import "embed"

//go:embed data/wlp4.dfa data/asm.dfa data/demo.cfg data/demo.transitions data/demo.reductions
var data embed.FS

func mustRead(name string) string {
	b, err := data.ReadFile("data/" + name)
	if err != nil {
		panic("resources: missing bundled file " + name + ": " + err.Error())
	}
	return string(b)
}

// WLP4DFA is the WLP4 scanner's DFA description, embedded verbatim from
// original_source/dfa.h.
func WLP4DFA() string { return mustRead("wlp4.dfa") }

// AsmDFA is the assembler scanner's DFA description.
func AsmDFA() string { return mustRead("asm.dfa") }

// DemoCFG is the bundled demonstration grammar.
func DemoCFG() string { return mustRead("demo.cfg") }

// DemoTransitions is the bundled demonstration grammar's SLR(1) shift/goto
// table.
func DemoTransitions() string { return mustRead("demo.transitions") }

// DemoReductions is the bundled demonstration grammar's SLR(1) reduction
// table.
func DemoReductions() string { return mustRead("demo.reductions") }
