// Package token defines the lexeme and token-class types shared by the DFA
// scanner, the SLR parser, and the WLP4 semantic passes.
package token

import "strings"

// Class identifies a terminal symbol: a DFA accepting-state name after
// post-processor reclassification, and a grammar symbol used by the parser.
type Class interface {
	// ID is the canonical, lower-cased identifier used as a grammar symbol
	// and table key.
	ID() string

	// Human is a human-readable name for error messages.
	Human() string

	// Equal reports whether the Class identifies the same terminal as o.
	Equal(o any) bool
}

type simpleClass string

func (c simpleClass) ID() string      { return strings.ToLower(string(c)) }
func (c simpleClass) Human() string   { return string(c) }
func (c simpleClass) Equal(o any) bool {
	other, ok := o.(Class)
	if !ok {
		return false
	}
	return other.ID() == c.ID()
}

// NewClass builds a Class from a state/token name, e.g. "ID" or "BECOMES".
func NewClass(name string) Class {
	return simpleClass(name)
}

const (
	// BOF is the synthetic token class prepended to every token stream fed
	// to the SLR parser.
	BOF = simpleClass("BOF")

	// EOF is the synthetic token class appended to every token stream.
	EOF = simpleClass("EOF")

	// Accept is the synthetic lexeme used to signal parser acceptance. The
	// parser driver recognizes it by lexeme alone, whatever the Class of the
	// token that carries it.
	Accept = ".ACCEPT"
)

// Token is a lexeme read from input paired with the Class it was
// classified as, plus the position information needed for diagnostics.
type Token struct {
	class  Class
	lexeme string
	line   int
	col    int
}

// New builds a Token at the given 1-indexed line/column.
func New(class Class, lexeme string, line, col int) Token {
	return Token{class: class, lexeme: lexeme, line: line, col: col}
}

// Class returns the token's Class.
func (t Token) Class() Class { return t.class }

// Lexeme returns the literal text the token was scanned from.
func (t Token) Lexeme() string { return t.lexeme }

// Line returns the 1-indexed line the token starts on.
func (t Token) Line() int { return t.line }

// Col returns the 1-indexed column the token starts on.
func (t Token) Col() int { return t.col }

func (t Token) String() string {
	if t.class == nil {
		return "<nil token>"
	}
	return t.class.Human() + " " + t.lexeme
}

// Stream is a pull-based sequence of Tokens. A stream fed to the parser
// ends with a Token whose lexeme is Accept.
type Stream interface {
	Next() Token
	Peek() Token
	HasNext() bool
}

type sliceStream struct {
	toks []Token
	cur  int
}

// NewStream wraps a pre-lexed slice of tokens as a Stream.
func NewStream(toks []Token) Stream {
	return &sliceStream{toks: toks}
}

func (s *sliceStream) Next() Token {
	if s.cur >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	t := s.toks[s.cur]
	s.cur++
	return t
}

func (s *sliceStream) Peek() Token {
	if s.cur >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[s.cur]
}

func (s *sliceStream) HasNext() bool {
	return s.cur < len(s.toks)
}
