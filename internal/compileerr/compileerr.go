// Package compileerr defines the error taxonomy shared by every stage of the
// toolchain: the first error of any kind aborts the current compilation.
package compileerr

import (
	"errors"
	"fmt"
)

// Kind identifies which stage of the pipeline raised an error.
type Kind int

const (
	// KindLoader covers a malformed DFA, CFG, or SLR table resource.
	KindLoader Kind = iota
	// KindLex covers an unrecognized byte sequence or a failed post-processor check.
	KindLex
	// KindParse covers an SLR action table miss.
	KindParse
	// KindSem covers duplicate declarations, undeclared names, and type errors.
	KindSem
	// KindAsm covers assembler syntax, range, or symbol-table violations.
	KindAsm
)

func (k Kind) String() string {
	switch k {
	case KindLoader:
		return "LoaderError"
	case KindLex:
		return "LexError"
	case KindParse:
		return "ParseError"
	case KindSem:
		return "SemError"
	case KindAsm:
		return "AsmError"
	default:
		return "Error"
	}
}

// compileError is the concrete error type for all five kinds; it carries a
// technical message plus an optional wrapped cause and source position.
type compileError struct {
	kind Kind
	msg  string
	line int // 0 if not applicable
	wrap error
}

func (e *compileError) Error() string {
	if e.line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.kind, e.line, e.msg)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *compileError) Unwrap() error {
	return e.wrap
}

// Kind returns which stage of the pipeline raised the error.
func (e *compileError) Kind() Kind {
	return e.kind
}

func newErr(k Kind, msg string) error {
	return &compileError{kind: k, msg: msg}
}

func newErrf(k Kind, format string, a ...interface{}) error {
	return newErr(k, fmt.Sprintf(format, a...))
}

// Loader returns a new LoaderError.
func Loader(format string, a ...interface{}) error { return newErrf(KindLoader, format, a...) }

// Lex returns a new LexError.
func Lex(format string, a ...interface{}) error { return newErrf(KindLex, format, a...) }

// LexAt returns a new LexError with a source line attached.
func LexAt(line int, format string, a ...interface{}) error {
	return &compileError{kind: KindLex, msg: fmt.Sprintf(format, a...), line: line}
}

// Parse returns a new ParseError.
func Parse(format string, a ...interface{}) error { return newErrf(KindParse, format, a...) }

// ParseAt returns a new ParseError with a source line attached.
func ParseAt(line int, format string, a ...interface{}) error {
	return &compileError{kind: KindParse, msg: fmt.Sprintf(format, a...), line: line}
}

// Sem returns a new SemError.
func Sem(format string, a ...interface{}) error { return newErrf(KindSem, format, a...) }

// Asm returns a new AsmError.
func Asm(format string, a ...interface{}) error { return newErrf(KindAsm, format, a...) }

// AsmAt returns a new AsmError with a source line attached.
func AsmAt(line int, format string, a ...interface{}) error {
	return &compileError{kind: KindAsm, msg: fmt.Sprintf(format, a...), line: line}
}

// kinder is implemented by every error this package produces.
type kinder interface {
	Kind() Kind
}

// KindOf returns the Kind of err if it (or something it wraps) was produced
// by this package, and ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var k kinder
	if !errors.As(err, &k) {
		return 0, false
	}
	return k.Kind(), true
}
