package mips

import (
	"bytes"
	"testing"

	"github.com/rheo5/WLP4-compiler/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SecondPass_addEncoding(t *testing.T) {
	toks := []token.Token{
		mt("ID", "add"), mt("REGISTER", "$1"), mt("COMMA", ","),
		mt("REGISTER", "$2"), mt("COMMA", ","), mt("REGISTER", "$3"),
	}

	var buf bytes.Buffer
	require.NoError(t, SecondPass(&buf, toks, SymbolTable{"0": 0}))

	assert.Equal(t, []byte{0x00, 0x43, 0x08, 0x20}, buf.Bytes())
}

func Test_SecondPass_lwEncoding(t *testing.T) {
	toks := []token.Token{
		mt("ID", "lw"), mt("REGISTER", "$1"), mt("COMMA", ","),
		mt("DECINT", "4"), mt("LPAREN", "("), mt("REGISTER", "$2"), mt("RPAREN", ")"),
	}

	var buf bytes.Buffer
	require.NoError(t, SecondPass(&buf, toks, SymbolTable{"0": 0}))

	assert.Equal(t, []byte{0x8c, 0x41, 0x00, 0x04}, buf.Bytes())
}

func Test_SecondPass_wordResolvesLabel(t *testing.T) {
	toks := []token.Token{mt("DOTID", ".word"), mt("ID", "loop")}
	symtab := SymbolTable{"0": 0, "loop": 3}

	var buf bytes.Buffer
	require.NoError(t, SecondPass(&buf, toks, symtab))
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x0c}, buf.Bytes())
}

func Test_SecondPass_wordUndefinedLabel(t *testing.T) {
	toks := []token.Token{mt("DOTID", ".word"), mt("ID", "missing")}

	var buf bytes.Buffer
	err := SecondPass(&buf, toks, SymbolTable{"0": 0})
	assert.Error(t, err)
}

func Test_SecondPass_jrEncoding(t *testing.T) {
	toks := []token.Token{mt("ID", "jr"), mt("REGISTER", "$31")}

	var buf bytes.Buffer
	require.NoError(t, SecondPass(&buf, toks, SymbolTable{"0": 0}))

	// jr: opBits 0x08, s=31 -> word = 31<<21 | 0x08
	assert.Equal(t, []byte{0x03, 0xe0, 0x00, 0x08}, buf.Bytes())
}

func Test_SecondPass_beqBranchOffsetFromLabel(t *testing.T) {
	toks := []token.Token{
		mt("ID", "beq"), mt("REGISTER", "$1"), mt("COMMA", ","),
		mt("REGISTER", "$2"), mt("COMMA", ","), mt("ID", "done"),
	}
	symtab := SymbolTable{"0": 0, "done": 5}

	var buf bytes.Buffer
	require.NoError(t, SecondPass(&buf, toks, symtab))

	// offset = targetLine(5) - (line+1) = 5 - 1 = 4
	word := (uint32(1) & 0x1F) << 21
	word |= (uint32(2) & 0x1F) << 16
	word |= uint32(4) & 0xFFFF
	word |= uint32(0x10) << 24

	var expect bytes.Buffer
	require.NoError(t, writeWord(&expect, word))
	assert.Equal(t, expect.Bytes(), buf.Bytes())
}

func Test_parseDec_malformed(t *testing.T) {
	_, err := parseDec("notanumber")
	assert.Error(t, err)
}

func Test_parseHex_malformed(t *testing.T) {
	_, err := parseHex("0xZZ")
	assert.Error(t, err)
}

func Test_writeWord_bigEndian(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeWord(&buf, 0x01020304))
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf.Bytes())
}
