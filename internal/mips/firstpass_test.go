package mips

import (
	"testing"

	"github.com/rheo5/WLP4-compiler/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mt(class, lexeme string) token.Token {
	return token.New(token.NewClass(class), lexeme, 1, 1)
}

func newline() token.Token {
	return token.New(token.NewClass("NEWLINE"), "", 1, 1)
}

func Test_FirstPass_addInstruction(t *testing.T) {
	toks := []token.Token{
		mt("ID", "add"), mt("REGISTER", "$1"), mt("COMMA", ","),
		mt("REGISTER", "$2"), mt("COMMA", ","), mt("REGISTER", "$3"),
	}

	symtab, err := FirstPass(toks)
	require.NoError(t, err)
	assert.Equal(t, SymbolTable{"0": 0}, symtab)
}

func Test_FirstPass_labelDefinitions(t *testing.T) {
	toks := []token.Token{
		mt("LABELDEF", "loop:"), mt("ID", "add"), mt("REGISTER", "$1"), mt("COMMA", ","),
		mt("REGISTER", "$2"), mt("COMMA", ","), mt("REGISTER", "$3"),
		newline(),
		mt("ID", "jr"), mt("REGISTER", "$31"),
	}

	symtab, err := FirstPass(toks)
	require.NoError(t, err)
	assert.Equal(t, 0, symtab["loop"])
	assert.Equal(t, 0, symtab["0"])
}

func Test_FirstPass_duplicateLabel(t *testing.T) {
	toks := []token.Token{
		mt("LABELDEF", "x:"), mt("ID", "jr"), mt("REGISTER", "$31"),
		newline(),
		mt("LABELDEF", "x:"), mt("ID", "jr"), mt("REGISTER", "$31"),
	}

	_, err := FirstPass(toks)
	assert.Error(t, err)
}

func Test_FirstPass_invalidMnemonic(t *testing.T) {
	toks := []token.Token{mt("ID", "nope")}
	_, err := FirstPass(toks)
	assert.Error(t, err)
}

func Test_FirstPass_wordDirective(t *testing.T) {
	toks := []token.Token{mt("DOTID", ".word"), mt("DECINT", "42")}
	_, err := FirstPass(toks)
	assert.NoError(t, err)
}

func Test_FirstPass_unrecognizedDirective(t *testing.T) {
	toks := []token.Token{mt("DOTID", ".text")}
	_, err := FirstPass(toks)
	assert.Error(t, err)
}

func Test_FirstPass_branchOffsetBoundaries(t *testing.T) {
	ok := []token.Token{
		mt("ID", "beq"), mt("REGISTER", "$1"), mt("COMMA", ","),
		mt("REGISTER", "$2"), mt("COMMA", ","), mt("DECINT", "32767"),
	}
	_, err := FirstPass(ok)
	assert.NoError(t, err)

	tooFar := []token.Token{
		mt("ID", "beq"), mt("REGISTER", "$1"), mt("COMMA", ","),
		mt("REGISTER", "$2"), mt("COMMA", ","), mt("DECINT", "32768"),
	}
	_, err = FirstPass(tooFar)
	assert.Error(t, err)
}

func Test_FirstPass_lwSwSyntax(t *testing.T) {
	toks := []token.Token{
		mt("ID", "lw"), mt("REGISTER", "$1"), mt("COMMA", ","),
		mt("DECINT", "4"), mt("LPAREN", "("), mt("REGISTER", "$2"), mt("RPAREN", ")"),
	}
	_, err := FirstPass(toks)
	assert.NoError(t, err)
}
