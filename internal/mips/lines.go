package mips

import "github.com/rheo5/WLP4-compiler/internal/token"

// lineNumbers assigns each token the assembler "line" number in effect when
// it is processed: a counter that starts at 0 and advances once per source
// line that contained at least one non-LABELDEF, non-NEWLINE token (a
// label-only line does not advance it). This is the REDESIGN-flagged
// lineHasCode rule from firstpass/secondpass in original_source/asm.cc,
// reconstructed here as a single named boolean rather than the source's
// "no"/"start" two-flag dance, and computed once so both passes agree.
func lineNumbers(toks []token.Token) []int {
	out := make([]int, len(toks))

	line := 0
	atLineStart := true
	lineHasCode := true

	isNewline := func(i int) bool { return toks[i].Class().ID() == "newline" }

	for i := range toks {
		out[i] = line

		if atLineStart && !isNewline(i) {
			if toks[i].Class().ID() == "labeldef" {
				a := i
				for a < len(toks) {
					if !isNewline(a) && toks[a].Class().ID() != "labeldef" {
						break
					}
					if isNewline(a) || a == len(toks)-1 {
						lineHasCode = false
						break
					}
					a++
				}
			}
		}

		if i != 0 && isNewline(i) && !isNewline(i-1) {
			atLineStart = true
			if lineHasCode {
				line++
			}
			lineHasCode = true
		} else {
			atLineStart = false
		}
	}

	return out
}
