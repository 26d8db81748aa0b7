package mips

import (
	"testing"

	"github.com/rheo5/WLP4-compiler/internal/token"
	"github.com/stretchr/testify/assert"
)

func Test_lineNumbers_labelOnlyLineDoesNotAdvance(t *testing.T) {
	toks := []token.Token{
		mt("LABELDEF", "loop:"), newline(),
		mt("ID", "jr"), mt("REGISTER", "$31"),
	}

	lines := lineNumbers(toks)
	// the label-only line and the jr line share line 0
	assert.Equal(t, []int{0, 0, 0, 0}, lines)
}

func Test_lineNumbers_codeLinesAdvance(t *testing.T) {
	toks := []token.Token{
		mt("ID", "jr"), mt("REGISTER", "$31"), newline(),
		mt("ID", "jr"), mt("REGISTER", "$31"),
	}

	lines := lineNumbers(toks)
	assert.Equal(t, []int{0, 0, 0, 1, 1}, lines)
}
