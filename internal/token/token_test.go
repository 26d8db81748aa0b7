package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_simpleClass_IDLowercases(t *testing.T) {
	c := NewClass("BECOMES")
	assert.Equal(t, "becomes", c.ID())
	assert.Equal(t, "BECOMES", c.Human())
}

func Test_simpleClass_Equal(t *testing.T) {
	a := NewClass("ID")
	b := NewClass("id")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal("ID"))
}

func Test_BOF_EOF_areDistinctClasses(t *testing.T) {
	assert.Equal(t, "bof", BOF.ID())
	assert.Equal(t, "eof", EOF.ID())
	assert.False(t, BOF.Equal(EOF))
}

func Test_Token_accessors(t *testing.T) {
	tok := New(NewClass("ID"), "x", 3, 5)
	assert.Equal(t, "x", tok.Lexeme())
	assert.Equal(t, 3, tok.Line())
	assert.Equal(t, 5, tok.Col())
	assert.Equal(t, "ID", tok.Class().Human())
}

func Test_Token_String(t *testing.T) {
	tok := New(NewClass("PLUS"), "+", 1, 1)
	assert.Equal(t, "PLUS +", tok.String())

	var zero Token
	assert.Equal(t, "<nil token>", zero.String())
}

func Test_Stream_walksAndPeeks(t *testing.T) {
	toks := []Token{
		New(NewClass("ID"), "x", 1, 1),
		New(EOF, Accept, 1, 2),
	}
	s := NewStream(toks)

	assert.True(t, s.HasNext())
	assert.Equal(t, "x", s.Peek().Lexeme())
	assert.Equal(t, "x", s.Next().Lexeme())

	assert.True(t, s.HasNext())
	assert.Equal(t, Accept, s.Next().Lexeme())

	assert.False(t, s.HasNext())
	assert.Equal(t, Accept, s.Next().Lexeme())
}
