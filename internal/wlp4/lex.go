package wlp4

import (
	"strconv"

	"github.com/rheo5/WLP4-compiler/internal/compileerr"
	"github.com/rheo5/WLP4-compiler/internal/token"
)

// keywords maps a WLP4 reserved word to the uppercase token class it
// reclassifies to. Grounded on the "{int, wain, if, else, while, println,
// return, new, delete, NULL}" reclassification rule in spec.md §4.3.
var keywords = map[string]string{
	"int": "INT", "wain": "WAIN", "if": "IF", "else": "ELSE",
	"while": "WHILE", "println": "PRINTLN", "return": "RETURN",
	"new": "NEW", "delete": "DELETE", "NULL": "NULL",
}

// Reclassify implements scan.Reclassifier for WLP4 source: it folds the
// ZERO accepting state into NUM, range-checks NUM against 2^31-1, and
// reclassifies a reserved-word ID lexeme to its keyword class.
func Reclassify(stateName, lexeme string) (token.Class, error) {
	switch stateName {
	case "ZERO":
		return token.NewClass("NUM"), nil

	case "NUM":
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil || n > 2147483647 {
			return nil, compileerr.Lex("NUM must be at most 2147483647: %s", lexeme)
		}
		return token.NewClass("NUM"), nil

	case "ID":
		if kw, ok := keywords[lexeme]; ok {
			return token.NewClass(kw), nil
		}
		return token.NewClass("ID"), nil

	default:
		return token.NewClass(stateName), nil
	}
}
