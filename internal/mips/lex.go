// Package mips implements the two-pass MIPS-like assembler (C9): a
// Reclassifier for the scan package's simplified-maximal-munch engine, a
// first pass that validates syntax and builds a label symbol table, and a
// second pass that encodes validated instructions to big-endian 32-bit
// machine words.
//
// Grounded directly on mipsscan::simplifiedMaximalMunch, firstpass, and
// secondpass in original_source/asm.cc.
package mips

import (
	"strconv"
	"strings"

	"github.com/rheo5/WLP4-compiler/internal/compileerr"
	"github.com/rheo5/WLP4-compiler/internal/token"
)

// Reclassify implements scan.Reclassifier for assembler source: it range-
// checks REGISTER/DECINT/HEXINT lexemes and folds the ZERO accepting state
// into DECINT, exactly as mipsscan::simplifiedMaximalMunch does.
func Reclassify(stateName, lexeme string) (token.Class, error) {
	switch stateName {
	case "REGISTER":
		n, err := strconv.ParseInt(lexeme[1:], 10, 64)
		if err != nil || n > 31 {
			return nil, compileerr.Lex("invalid register number: %s", lexeme)
		}
		return token.NewClass("REGISTER"), nil

	case "DECINT":
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil || n < -2147483648 || n > 4294967295 {
			return nil, compileerr.Lex("DECINT must be within -2147483648 and 4294967295: %s", lexeme)
		}
		return token.NewClass("DECINT"), nil

	case "ZERO":
		return token.NewClass("DECINT"), nil

	case "HEXINT":
		n, err := strconv.ParseUint(lexeme[2:], 16, 64)
		if err != nil || n > 0xFFFFFFFF {
			return nil, compileerr.Lex("HEXINT must be at most 0xFFFFFFFF: %s", lexeme)
		}
		return token.NewClass("HEXINT"), nil

	default:
		return token.NewClass(stateName), nil
	}
}

// isMnemonic reports whether lexeme names one of the recognized opcodes;
// mirrors firstpass's inline "ids" array check on every ID token.
func isMnemonic(lexeme string) bool {
	switch lexeme {
	case "add", "sub", "mult", "multu", "div", "divu", "mfhi", "mflo",
		"lis", "slt", "sltu", "jr", "jalr", "beq", "bne", "lw", "sw":
		return true
	}
	return false
}

// trimLabelDef strips the trailing ':' off a LABELDEF lexeme.
func trimLabelDef(lexeme string) string {
	return strings.TrimSuffix(lexeme, ":")
}
