package mips

import (
	"io"
	"strconv"
	"strings"

	"github.com/rheo5/WLP4-compiler/internal/compileerr"
	"github.com/rheo5/WLP4-compiler/internal/token"
)

// opBits holds the bit pattern secondpass in original_source/asm.cc packs
// into each encoded word: the function-code field for R-type instructions,
// and (per REDESIGN FLAG 9(c), carried forward rather than "fixed") the
// opcode field shifted into bits 24-31 for beq/bne/lw/sw instead of the
// standard MIPS bits 26-31.
var opBits = map[string]uint32{
	"add": 0x20, "sub": 0x22, "slt": 0x2a, "sltu": 0x2b,
	"mult": 0x18, "multu": 0x19, "div": 0x1a, "divu": 0x1b,
	"mfhi": 0x10, "mflo": 0x12, "lis": 0x14,
	"jr": 0x08, "jalr": 0x09,
	"beq": 0x10, "bne": 0x14,
	"lw": 0x8c, "sw": 0xac,
}

// SecondPass encodes each validated instruction to a big-endian 32-bit
// word, written in order to w. Grounded directly on secondpass in
// original_source/asm.cc.
//
// Where the original's errordec/errorhex silently log and return 0 on a
// parse failure, this implementation raises an AsmError instead, per
// REDESIGN FLAG 9(b).
func SecondPass(w io.Writer, toks []token.Token, symtab SymbolTable) error {
	lines := lineNumbers(toks)
	n := len(toks)

	for i := 0; i < n; i++ {
		t := toks[i]
		lexeme := t.Lexeme()
		line := lines[i]

		switch {
		case lexeme == ".word":
			var val int64
			switch classOf(toks[i+1]) {
			case "id":
				target, ok := symtab[toks[i+1].Lexeme()]
				if !ok {
					return compileerr.AsmAt(line+1, "undefined label: %s", toks[i+1].Lexeme())
				}
				val = int64(target) * 4
			case "decint":
				v, err := parseDec(toks[i+1].Lexeme())
				if err != nil {
					return compileerr.AsmAt(line+1, ".word: %v", err)
				}
				val = v
			case "hexint":
				v, err := parseHex(toks[i+1].Lexeme())
				if err != nil {
					return compileerr.AsmAt(line+1, ".word: %v", err)
				}
				val = v
			}
			if err := writeWord(w, uint32(val)); err != nil {
				return err
			}
			i++

		case lexeme == "add" || lexeme == "sub" || lexeme == "slt" || lexeme == "sltu":
			d, err := regNum(toks[i+1].Lexeme())
			if err != nil {
				return err
			}
			s, err := regNum(toks[i+3].Lexeme())
			if err != nil {
				return err
			}
			tr, err := regNum(toks[i+5].Lexeme())
			if err != nil {
				return err
			}
			word := (uint32(s)&0x1F)<<21 | (uint32(tr)&0x1F)<<16 | (uint32(d)&0x1F)<<11 | (opBits[lexeme] & 0xFF)
			if err := writeWord(w, word); err != nil {
				return err
			}
			i += 5

		case lexeme == "beq" || lexeme == "bne":
			s, err := regNum(toks[i+1].Lexeme())
			if err != nil {
				return err
			}
			tr, err := regNum(toks[i+3].Lexeme())
			if err != nil {
				return err
			}

			var offset int64
			target := toks[i+5]
			switch classOf(target) {
			case "id":
				targetLine, ok := symtab[target.Lexeme()]
				if !ok {
					return compileerr.AsmAt(line+1, "undefined label: %s", target.Lexeme())
				}
				offset = int64(targetLine) - int64(line+1)
				if offset > 32767 || offset < -32768 {
					return compileerr.AsmAt(line+1, "branch offset out of range: %d", offset)
				}
			case "decint":
				v, err := parseDec(target.Lexeme())
				if err != nil {
					return compileerr.AsmAt(line+1, "%s: %v", lexeme, err)
				}
				offset = v
			case "hexint":
				v, err := parseHex(target.Lexeme())
				if err != nil {
					return compileerr.AsmAt(line+1, "%s: %v", lexeme, err)
				}
				offset = v
			}

			word := (uint32(s)&0x1F)<<21 | (uint32(tr)&0x1F)<<16 | (uint32(offset) & 0xFFFF)
			word |= opBits[lexeme] << 24
			if err := writeWord(w, word); err != nil {
				return err
			}
			i += 5

		case lexeme == "mult" || lexeme == "multu" || lexeme == "div" || lexeme == "divu":
			s, err := regNum(toks[i+1].Lexeme())
			if err != nil {
				return err
			}
			tr, err := regNum(toks[i+3].Lexeme())
			if err != nil {
				return err
			}
			word := uint32(s)<<21 | uint32(tr)<<16 | opBits[lexeme]
			if err := writeWord(w, word); err != nil {
				return err
			}
			i += 3

		case lexeme == "mflo" || lexeme == "mfhi" || lexeme == "lis":
			d, err := regNum(toks[i+1].Lexeme())
			if err != nil {
				return err
			}
			word := (uint32(d)&0x1F)<<11 | (opBits[lexeme] & 0xFF)
			if err := writeWord(w, word); err != nil {
				return err
			}
			i++

		case lexeme == "jr" || lexeme == "jalr":
			s, err := regNum(toks[i+1].Lexeme())
			if err != nil {
				return err
			}
			word := uint32(s)<<21 | opBits[lexeme]
			if err := writeWord(w, word); err != nil {
				return err
			}
			i++

		case lexeme == "lw" || lexeme == "sw":
			tr, err := regNum(toks[i+1].Lexeme())
			if err != nil {
				return err
			}
			s, err := regNum(toks[i+5].Lexeme())
			if err != nil {
				return err
			}

			var offset int64
			off := toks[i+3]
			switch classOf(off) {
			case "decint":
				v, err := parseDec(off.Lexeme())
				if err != nil {
					return compileerr.AsmAt(line+1, "%s: %v", lexeme, err)
				}
				offset = v
			case "hexint":
				v, err := parseHex(off.Lexeme())
				if err != nil {
					return compileerr.AsmAt(line+1, "%s: %v", lexeme, err)
				}
				offset = v
			}

			word := (uint32(s)&0x1F)<<21 | (uint32(tr)&0x1F)<<16 | (uint32(offset) & 0xFFFF)
			word |= opBits[lexeme] << 24
			if err := writeWord(w, word); err != nil {
				return err
			}
			i += 6
		}
	}

	return nil
}

func parseDec(lexeme string) (int64, error) {
	v, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return 0, compileerr.Asm("malformed decimal literal: %s", lexeme)
	}
	return v, nil
}

func parseHex(lexeme string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimPrefix(lexeme, "0x"), 16, 64)
	if err != nil {
		return 0, compileerr.Asm("malformed hex literal: %s", lexeme)
	}
	return v, nil
}

// writeWord emits machinecode as 4 big-endian bytes, mirroring
// printmachinecode in original_source/asm.cc.
func writeWord(w io.Writer, machinecode uint32) error {
	buf := [4]byte{
		byte(machinecode >> 24),
		byte(machinecode >> 16),
		byte(machinecode >> 8),
		byte(machinecode),
	}
	_, err := w.Write(buf[:])
	return err
}
