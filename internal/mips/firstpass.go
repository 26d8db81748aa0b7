package mips

import (
	"strconv"
	"strings"

	"github.com/rheo5/WLP4-compiler/internal/compileerr"
	"github.com/rheo5/WLP4-compiler/internal/token"
)

// SymbolTable maps a label (without its trailing ':') to the line number it
// was defined on.
type SymbolTable map[string]int

const maxDec, minDec = 32767, -32768
const maxHex = 65535

func classOf(t token.Token) string {
	return t.Class().ID()
}

// FirstPass validates instruction syntax and builds the label symbol table,
// grounded directly on firstpass in original_source/asm.cc: every
// instruction family is checked against its fixed token shape, labels are
// recorded at the (pre-advance) current line, and a duplicate label is a
// hard error.
func FirstPass(toks []token.Token) (SymbolTable, error) {
	lines := lineNumbers(toks)
	symtab := SymbolTable{"0": 0}

	n := len(toks)
	for i := 0; i < n; i++ {
		t := toks[i]
		class := classOf(t)

		if class == "id" && !isMnemonic(t.Lexeme()) {
			return nil, compileerr.AsmAt(lines[i]+1, "invalid identifier: %s", t.Lexeme())
		}
		if class == "dotid" && t.Lexeme() != ".word" {
			return nil, compileerr.AsmAt(lines[i]+1, "unrecognized directive: %s", t.Lexeme())
		}

		if class == "labeldef" {
			name := trimLabelDef(t.Lexeme())
			if _, dup := symtab[name]; dup {
				return nil, compileerr.AsmAt(lines[i]+1, "duplicate label: %s", name)
			}
			symtab[name] = lines[i]
		}

		switch {
		case class == "dotid" && t.Lexeme() == ".word":
			if i+1 > n-1 {
				return nil, compileerr.AsmAt(lines[i]+1, ".word: missing operand")
			}
			op := classOf(toks[i+1])
			if op != "decint" && op != "hexint" && op != "id" {
				return nil, compileerr.AsmAt(lines[i]+1, ".word: operand must be DECINT, HEXINT, or ID")
			}
			if i+1 != n-1 && classOf(toks[i+2]) != "newline" {
				return nil, compileerr.AsmAt(lines[i]+1, ".word: unexpected trailing tokens")
			}
			i++

		case t.Lexeme() == "add" || t.Lexeme() == "sub" || t.Lexeme() == "slt" || t.Lexeme() == "sltu":
			if err := expect3Regs(toks, i, lines[i]); err != nil {
				return nil, err
			}
			i += 5

		case t.Lexeme() == "beq" || t.Lexeme() == "bne":
			if i+5 > n-1 {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: invalid syntax", t.Lexeme())
			}
			if classOf(toks[i+1]) != "register" || classOf(toks[i+2]) != "comma" || classOf(toks[i+3]) != "register" || classOf(toks[i+4]) != "comma" {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: invalid syntax", t.Lexeme())
			}
			target := toks[i+5]
			tc := classOf(target)
			if tc != "id" && tc != "decint" && tc != "hexint" {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: invalid branch target", t.Lexeme())
			}
			if tc == "decint" && !rangeDec(target.Lexeme()) {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: branch offset out of range", t.Lexeme())
			}
			if tc == "hexint" && !rangeHex(target.Lexeme()) {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: branch offset out of range", t.Lexeme())
			}
			if i+5 != n-1 && classOf(toks[i+6]) != "newline" {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: unexpected trailing tokens", t.Lexeme())
			}
			i += 5

		case t.Lexeme() == "mult" || t.Lexeme() == "multu" || t.Lexeme() == "div" || t.Lexeme() == "divu":
			if i+3 > n-1 {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: invalid syntax", t.Lexeme())
			}
			if classOf(toks[i+1]) != "register" || classOf(toks[i+2]) != "comma" || classOf(toks[i+3]) != "register" {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: invalid syntax", t.Lexeme())
			}
			if i+3 != n-1 && classOf(toks[i+4]) != "newline" {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: unexpected trailing tokens", t.Lexeme())
			}
			i += 3

		case t.Lexeme() == "mflo" || t.Lexeme() == "mfhi" || t.Lexeme() == "lis" || t.Lexeme() == "jr" || t.Lexeme() == "jalr":
			if i+1 > n-1 {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: invalid syntax", t.Lexeme())
			}
			if classOf(toks[i+1]) != "register" {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: invalid syntax", t.Lexeme())
			}
			if i+1 != n-1 && classOf(toks[i+2]) != "newline" {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: unexpected trailing tokens", t.Lexeme())
			}
			i++

		case t.Lexeme() == "lw" || t.Lexeme() == "sw":
			if i+6 > n-1 {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: invalid syntax", t.Lexeme())
			}
			if classOf(toks[i+1]) != "register" || classOf(toks[i+2]) != "comma" ||
				classOf(toks[i+4]) != "lparen" || classOf(toks[i+5]) != "register" || classOf(toks[i+6]) != "rparen" {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: invalid syntax", t.Lexeme())
			}
			offc := classOf(toks[i+3])
			if offc != "decint" && offc != "hexint" {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: invalid syntax", t.Lexeme())
			}
			if offc == "decint" && !rangeDec(toks[i+3].Lexeme()) {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: offset out of range", t.Lexeme())
			}
			if offc == "hexint" && !rangeHex(toks[i+3].Lexeme()) {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: offset out of range", t.Lexeme())
			}
			if i+6 != n-1 && classOf(toks[i+7]) != "newline" {
				return nil, compileerr.AsmAt(lines[i]+1, "%s: unexpected trailing tokens", t.Lexeme())
			}
			i += 6
		}
	}

	return symtab, nil
}

func expect3Regs(toks []token.Token, i, line int) error {
	n := len(toks)
	if i+5 > n-1 {
		return compileerr.AsmAt(line+1, "%s: invalid syntax", toks[i].Lexeme())
	}
	if classOf(toks[i+1]) != "register" || classOf(toks[i+2]) != "comma" ||
		classOf(toks[i+3]) != "register" || classOf(toks[i+4]) != "comma" || classOf(toks[i+5]) != "register" {
		return compileerr.AsmAt(line+1, "%s: invalid syntax", toks[i].Lexeme())
	}
	if i+5 != n-1 && classOf(toks[i+6]) != "newline" {
		return compileerr.AsmAt(line+1, "%s: unexpected trailing tokens", toks[i].Lexeme())
	}
	return nil
}

func rangeDec(lexeme string) bool {
	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return false
	}
	return n <= maxDec && n >= minDec
}

func rangeHex(lexeme string) bool {
	n, err := strconv.ParseUint(strings.TrimPrefix(lexeme, "0x"), 16, 64)
	if err != nil {
		return false
	}
	return n <= maxHex
}

func regNum(lexeme string) (int, error) {
	n, err := strconv.Atoi(lexeme[1:])
	if err != nil {
		return 0, compileerr.Asm("malformed register operand: %s", lexeme)
	}
	return n, nil
}
