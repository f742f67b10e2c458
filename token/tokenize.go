package token

import (
	"unicode/utf8"
)

// Tokenizer cuts php literal source into tokens, one per call to Next.
// Whitespace and comments (#, // and /* */) are consumed silently.
type Tokenizer struct {
	src []byte
	pos int
}

func NewTokenizer(src []byte) *Tokenizer {
	return &Tokenizer{src: src}
}

// Source returns the bytes the tokenizer was built over.
func (tz *Tokenizer) Source() []byte {
	return tz.src
}

func (tz *Tokenizer) token(t Type, start int) Token {
	return Token{Type: t, Span: Span{Start: start, End: tz.pos}, src: tz.src}
}

// Next returns the next token, or a TEOF token once the input is
// exhausted. Unclassifiable spans come back as TError tokens; the
// tokenizer itself never fails.
func (tz *Tokenizer) Next() Token {
	tz.skipTrivia()
	start := tz.pos
	if tz.pos >= len(tz.src) {
		return tz.token(TEOF, start)
	}
	c := tz.src[tz.pos]
	switch c {
	case '(':
		tz.pos++
		return tz.token(TOpenParen, start)
	case ')':
		tz.pos++
		return tz.token(TCloseParen, start)
	case '[':
		tz.pos++
		return tz.token(TOpenBracket, start)
	case ']':
		tz.pos++
		return tz.token(TCloseBracket, start)
	case ',':
		tz.pos++
		return tz.token(TComma, start)
	case ';':
		tz.pos++
		return tz.token(TSemi, start)
	case '=':
		tz.pos++
		if tz.pos < len(tz.src) && tz.src[tz.pos] == '>' {
			tz.pos++
			return tz.token(TArrow, start)
		}
		return tz.token(TError, start)
	case '"', '\'':
		return tz.scanString(start)
	}
	switch {
	case isDigit(c) || c == '-' || c == '.':
		return tz.scanNumber(start)
	case isWordStart(c):
		return tz.scanWord(start)
	}
	_, sz := utf8.DecodeRune(tz.src[tz.pos:])
	tz.pos += sz
	return tz.token(TError, start)
}

func (tz *Tokenizer) skipTrivia() {
	for tz.pos < len(tz.src) {
		switch tz.src[tz.pos] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			tz.pos++
		case '#':
			tz.skipLine()
		case '/':
			if tz.pos+1 >= len(tz.src) {
				return
			}
			switch tz.src[tz.pos+1] {
			case '/':
				tz.skipLine()
			case '*':
				tz.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

func (tz *Tokenizer) skipLine() {
	for tz.pos < len(tz.src) && tz.src[tz.pos] != '\n' {
		tz.pos++
	}
}

// An unterminated block comment swallows the rest of the input, like php.
func (tz *Tokenizer) skipBlockComment() {
	tz.pos += 2
	for tz.pos < len(tz.src) {
		if tz.src[tz.pos] == '*' && tz.pos+1 < len(tz.src) && tz.src[tz.pos+1] == '/' {
			tz.pos += 2
			return
		}
		tz.pos++
	}
}

// scanString consumes a quoted literal including its quotes. Any byte
// preceded by a backslash is skipped over, so only an unescaped closing
// quote terminates the scan. Escape decoding happens later, in Unquote.
func (tz *Tokenizer) scanString(start int) Token {
	quote := tz.src[tz.pos]
	tz.pos++
	for tz.pos < len(tz.src) {
		c := tz.src[tz.pos]
		tz.pos++
		switch c {
		case '\\':
			if tz.pos < len(tz.src) {
				tz.pos++
			}
		case quote:
			return tz.token(TString, start)
		}
	}
	return tz.token(TError, start)
}

func (tz *Tokenizer) scanNumber(start int) Token {
	if tz.src[tz.pos] == '-' {
		tz.pos++
	}
	if tz.pos >= len(tz.src) {
		return tz.token(TError, start)
	}
	// radix-prefixed forms are always integers
	if tz.src[tz.pos] == '0' && tz.pos+1 < len(tz.src) {
		switch tz.src[tz.pos+1] {
		case 'x', 'X':
			tz.pos += 2
			tz.digits(isHexDigit)
			return tz.token(TInt, start)
		case 'b', 'B':
			tz.pos += 2
			tz.digits(isBinDigit)
			return tz.token(TInt, start)
		}
	}
	sawInt := tz.digits(isDigit)
	sawDot := false
	if tz.pos < len(tz.src) && tz.src[tz.pos] == '.' {
		if sawInt || (tz.pos+1 < len(tz.src) && isDigit(tz.src[tz.pos+1])) {
			sawDot = true
			tz.pos++
			tz.digits(isDigit)
		}
	}
	if !sawInt && !sawDot {
		// a bare "-" or "."
		tz.pos++
		return tz.token(TError, start)
	}
	sawExp := tz.exponent()
	if sawDot || sawExp {
		return tz.token(TFloat, start)
	}
	return tz.token(TInt, start)
}

// digits consumes a run of digits with optional _ group separators and
// reports whether at least one digit was seen.
func (tz *Tokenizer) digits(valid func(byte) bool) bool {
	saw := false
	for tz.pos < len(tz.src) {
		c := tz.src[tz.pos]
		if valid(c) {
			saw = true
			tz.pos++
			continue
		}
		if c == '_' && saw && tz.pos+1 < len(tz.src) && valid(tz.src[tz.pos+1]) {
			tz.pos++
			continue
		}
		break
	}
	return saw
}

// exponent consumes e/E with optional sign and digits, but only when a
// digit actually follows, so "1e" lexes as Int(1) then a word.
func (tz *Tokenizer) exponent() bool {
	p := tz.pos
	if p >= len(tz.src) || (tz.src[p] != 'e' && tz.src[p] != 'E') {
		return false
	}
	p++
	if p < len(tz.src) && (tz.src[p] == '+' || tz.src[p] == '-') {
		p++
	}
	if p >= len(tz.src) || !isDigit(tz.src[p]) {
		return false
	}
	tz.pos = p
	tz.digits(isDigit)
	return true
}

func (tz *Tokenizer) scanWord(start int) Token {
	for tz.pos < len(tz.src) && isWordPart(tz.src[tz.pos]) {
		tz.pos++
	}
	word := tz.src[start:tz.pos]
	switch {
	case equalFold(word, "true"), equalFold(word, "false"):
		return tz.token(TBool, start)
	case string(word) == "null":
		return tz.token(TNull, start)
	case string(word) == "array":
		return tz.token(TArray, start)
	}
	return tz.token(TError, start)
}

func equalFold(d []byte, s string) bool {
	if len(d) != len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := d[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != s[i] {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isBinDigit(c byte) bool {
	return c == '0' || c == '1'
}

func isWordStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isWordPart(c byte) bool {
	return isWordStart(c) || isDigit(c)
}
