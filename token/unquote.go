package token

import (
	"fmt"
	"unicode/utf8"
)

// Unquote decodes a full string literal including its surrounding
// quotes, dispatching on the quote character to php single or double
// quote escape rules.
func Unquote(lit []byte) (string, error) {
	if len(lit) < 2 {
		return "", ErrUnterminated
	}
	quote := lit[0]
	if lit[len(lit)-1] != quote {
		return "", ErrUnterminated
	}
	inner := lit[1 : len(lit)-1]
	if quote == '\'' {
		return UnquoteSingle(inner)
	}
	return UnquoteDouble(inner)
}

// UnquoteSingle decodes the contents of a php single quoted string.
// Only \\ and \' are escapes; every other backslash stays in the output
// verbatim, backslash included.
func UnquoteSingle(s []byte) (string, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", ErrBadEscape
		}
		d := s[i+1]
		switch d {
		case '\\', '\'':
			out = append(out, d)
		default:
			out = append(out, '\\', d)
		}
		i += 2
	}
	return string(out), nil
}

// UnquoteDouble decodes the contents of a php double quoted string.
//
// Escape handling works on raw bytes: \xHH and octal escapes can name
// byte values that are not valid UTF-8 on their own, and the decoded
// value is emitted as a unicode scalar, so "\xD8" becomes U+00D8.
// Unrecognized escapes pass through verbatim, backslash included.
func UnquoteDouble(s []byte) (string, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		i++
		if i >= len(s) {
			return "", ErrBadEscape
		}
		d := s[i]
		i++
		switch d {
		case '$', '"', '\\':
			out = append(out, d)
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'v':
			out = append(out, '\v')
		case 'f':
			out = append(out, '\f')
		case 'x':
			val, n := scanHex(s[i:], 2)
			if n == 0 {
				// \x with no digits is not an escape in php
				out = append(out, '\\', 'x')
				continue
			}
			i += n
			out = utf8.AppendRune(out, rune(val))
		case 'u':
			if i >= len(s) || s[i] != '{' {
				out = append(out, '\\', 'u')
				continue
			}
			val, n := scanHex(s[i+1:], len(s))
			if val > utf8.MaxRune {
				return "", fmt.Errorf("%w: codepoint out of range", ErrBadUnicode)
			}
			i += 1 + n
			if i >= len(s) || s[i] != '}' {
				return "", fmt.Errorf("%w: missing }", ErrBadUnicode)
			}
			i++
			if !utf8.ValidRune(rune(val)) {
				return "", fmt.Errorf("%w: U+%04X is not a scalar value", ErrBadUnicode, val)
			}
			out = utf8.AppendRune(out, rune(val))
		case '0', '1', '2', '3', '4', '5', '6', '7':
			val := uint32(d - '0')
			for n := 0; n < 2 && i < len(s) && '0' <= s[i] && s[i] <= '7'; n++ {
				val = val*8 + uint32(s[i]-'0')
				i++
			}
			out = utf8.AppendRune(out, rune(val))
		default:
			out = append(out, '\\', d)
		}
	}
	return string(out), nil
}

// scanHex consumes up to max hex digits, stopping early at the first
// non-digit, and reports the accumulated value and digit count. The
// value saturates above utf8.MaxRune so callers can range-check it
// without overflow concerns.
func scanHex(s []byte, max int) (uint32, int) {
	var val uint32
	n := 0
	for n < max && n < len(s) {
		d := digitVal(s[n])
		if d < 0 || d >= 16 {
			break
		}
		if val <= utf8.MaxRune {
			val = val*16 + uint32(d)
		}
		n++
	}
	return val, n
}
