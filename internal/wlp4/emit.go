package wlp4

import (
	"fmt"
	"io"
)

// emitter writes MIPS-like assembly text lines, mirroring the free
// functions in original_source/mipshelper.h/.cc exactly (same mnemonics,
// same operand order, same push/pop stack-growth-downward convention).
type emitter struct {
	w   io.Writer
	err error
}

func newEmitter(w io.Writer) *emitter {
	return &emitter{w: w}
}

func (e *emitter) printf(format string, a ...interface{}) {
	if e.err != nil {
		return
	}
	_, err := fmt.Fprintf(e.w, format, a...)
	if err != nil {
		e.err = err
	}
}

func (e *emitter) add(d, s, t int)  { e.printf("add $%d, $%d, $%d\n", d, s, t) }
func (e *emitter) sub(d, s, t int)  { e.printf("sub $%d, $%d, $%d\n", d, s, t) }
func (e *emitter) mult(s, t int)    { e.printf("mult $%d, $%d\n", s, t) }
func (e *emitter) divide(s, t int)  { e.printf("div $%d, $%d\n", s, t) }
func (e *emitter) mfhi(d int)       { e.printf("mfhi $%d\n", d) }
func (e *emitter) mflo(d int)       { e.printf("mflo $%d\n", d) }
func (e *emitter) lis(d int)        { e.printf("lis $%d\n", d) }
func (e *emitter) slt(d, s, t int)  { e.printf("slt $%d, $%d, $%d\n", d, s, t) }
func (e *emitter) sltu(d, s, t int) { e.printf("sltu $%d, $%d, $%d\n", d, s, t) }

func (e *emitter) jr(s int)   { e.printf("jr $%d\n", s) }
func (e *emitter) jalr(s int) { e.printf("jalr $%d\n", s) }

func (e *emitter) beq(s, t int, label string) { e.printf("beq $%d, $%d, %s\n", s, t, label) }
func (e *emitter) bne(s, t int, label string) { e.printf("bne $%d, $%d, %s\n", s, t, label) }

func (e *emitter) lw(t, i, s int) { e.printf("lw $%d, %d($%d)\n", t, i, s) }
func (e *emitter) sw(t, i, s int) { e.printf("sw $%d, %d($%d)\n", t, i, s) }

func (e *emitter) wordInt(i int)       { e.printf(".word %d\n", i) }
func (e *emitter) wordLexeme(lit string) { e.printf(".word %s\n", lit) }
func (e *emitter) wordLabel(label string) { e.printf(".word %s\n", label) }
func (e *emitter) label(name string)   { e.printf("%s:\n", name) }
func (e *emitter) importSym(name string) { e.printf(".import %s\n", name) }

func (e *emitter) push(s int) {
	e.sw(s, -4, 30)
	e.sub(30, 30, 4)
}

func (e *emitter) pop(d int) {
	e.add(30, 30, 4)
	e.lw(d, -4, 30)
}

func (e *emitter) popDiscard() {
	e.add(30, 30, 4)
}
