package dfa

import (
	"strings"

	"github.com/rheo5/WLP4-compiler/internal/compileerr"
)

// Escape decodes one escaped-character token from a DFA description line
// (e.g. "a", "\\n", "\\x41", "\\-") into its raw byte sequence. It is the Go
// counterpart of escape() in original_source/wlp4gen.cc and asm.cc: a
// backslash introduces "s"=space, "n"=newline, "r"=carriage return,
// "t"=tab, "xHH"=a hex byte whose high nibble must not exceed 8 (so \x80-\x8F
// are still accepted here; the loader rejects any byte above 0x7F), a
// literal "\\", or any other printable character passed through unchanged;
// any other byte after a backslash is kept together with the backslash.
//
// A token with no backslash is returned as-is, unchecked; the caller
// validates that it is one byte or an "a-b" range.
func Escape(tok string) (string, error) {
	if !strings.Contains(tok, `\`) {
		return tok, nil
	}

	var sb strings.Builder
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(tok) {
			return "", compileerr.Loader("dangling escape at end of %q", tok)
		}
		i++
		switch tok[i] {
		case 's':
			sb.WriteByte(' ')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\':
			sb.WriteByte('\\')
		case 'x':
			if i+2 >= len(tok) {
				return "", compileerr.Loader("incomplete \\x escape in %q", tok)
			}
			hi, err := hexDigit(tok[i+1])
			if err != nil {
				return "", compileerr.Loader("bad hex digit in %q: %v", tok, err)
			}
			lo, err := hexDigit(tok[i+2])
			if err != nil {
				return "", compileerr.Loader("bad hex digit in %q: %v", tok, err)
			}
			if hi > 8 {
				return "", compileerr.Loader("\\x escape out of ASCII range in %q", tok)
			}
			sb.WriteByte(byte(hi<<4 | lo))
			i += 2
		default:
			if isGraph(tok[i]) {
				sb.WriteByte(tok[i])
			} else {
				sb.WriteByte('\\')
				sb.WriteByte(tok[i])
			}
		}
	}
	return sb.String(), nil
}

// Unescape renders a raw byte sequence back into the escaped form Escape
// would accept, for use in diagnostics.
func Unescape(raw string) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case ' ':
			sb.WriteString(`\s`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			if isGraph(c) {
				sb.WriteByte(c)
			} else {
				sb.WriteString(numToHex(c))
			}
		}
	}
	return sb.String()
}

func isGraph(c byte) bool {
	return c > ' ' && c < 0x7f
}

func hexDigit(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, nil
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, nil
	default:
		return 0, compileerr.Loader("not a hex digit: %q", c)
	}
}

const hexDigits = "0123456789abcdef"

func numToHex(c byte) string {
	return `\x` + string(hexDigits[c>>4]) + string(hexDigits[c&0xf])
}
