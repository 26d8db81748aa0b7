// Package scan implements the simplified-maximal-munch tokenizer shared by
// the assembler and WLP4 front ends, driven by a table-driven dfa.DFA.
//
// Grounded directly on wlp4scan::simplifiedMaximalMunch (original_source/
// wlp4gen.cc) and mipsscan::simplifiedMaximalMunch (original_source/asm.cc):
// both tools run the same per-line greedy-match loop and differ only in (a)
// the reclassification/range-check rules applied to a just-completed
// lexeme and (b) whether a synthetic NEWLINE token is inserted between
// lines. Those two differences are captured here as a pluggable
// Reclassifier and an InsertNewlines flag, so one engine serves both tools.
package scan

import (
	"bufio"
	"strings"

	"github.com/rheo5/WLP4-compiler/internal/compileerr"
	"github.com/rheo5/WLP4-compiler/internal/dfa"
	"github.com/rheo5/WLP4-compiler/internal/token"
)

// Reclassifier inspects a just-completed lexeme against the DFA state it
// was accepted in and returns the token.Class to emit. It may reject the
// lexeme (e.g. a NUM or DECINT literal out of range) by returning an error.
type Reclassifier func(stateName, lexeme string) (token.Class, error)

// Options configures one run of Scan.
type Options struct {
	// Reclassify turns an accepting state name + lexeme into a final
	// token.Class, or an error if the lexeme is invalid for that class.
	Reclassify Reclassifier

	// InsertNewlines, when true, emits a synthetic NEWLINE token between
	// source lines after the first (mirroring asm.cc's "force" counter).
	InsertNewlines bool
}

// Scan runs the DFA over src one line at a time using simplified maximal
// munch: at each position it advances the DFA as far as possible, and on
// the first byte that has no transition it accepts the longest prefix seen
// so far (erroring if that prefix's state doesn't accept), reclassifies it,
// and restarts from "start" on the same byte.
func Scan(d *dfa.DFA, src string, opts Options) ([]token.Token, error) {
	var out []token.Token

	lineScanner := bufio.NewScanner(strings.NewReader(src))
	lineScanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	for lineScanner.Scan() {
		lineNo++
		line := lineScanner.Text() + " "

		if opts.InsertNewlines && lineNo > 1 {
			out = append(out, token.New(token.NewClass("NEWLINE"), "", lineNo-1, 0))
		}

		state := d.Start()
		lex := strings.Builder{}
		lexStartCol := 1

		for i := 0; i < len(line); i++ {
			c := line[i]
			from := state
			next, ok := d.Next(from, c)
			if !ok {
				if !d.IsAccepting(from) {
					return nil, compileerr.LexAt(lineNo, "unrecognized input near %q", lex.String()+string(c))
				}

				lexeme := lex.String()
				if !dfa.IsHidden(from) {
					class, err := opts.Reclassify(from, lexeme)
					if err != nil {
						return nil, err
					}
					out = append(out, token.New(class, lexeme, lineNo, lexStartCol))
				}

				state = d.Start()
				lex.Reset()
				i--
				lexStartCol = i + 2
				continue
			}
			if lex.Len() == 0 {
				lexStartCol = i + 1
			}
			lex.WriteByte(c)
			state = next
		}
	}
	if err := lineScanner.Err(); err != nil {
		return nil, compileerr.Lex("reading input: %v", err)
	}

	return out, nil
}
