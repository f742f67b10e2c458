// Package parse turns php literal source into ir Values by recursive
// descent over the token stream.
package parse

import (
	"fmt"
	"math"
	"strconv"

	"github.com/phplit-format/phplit/debug"
	"github.com/phplit-format/phplit/ir"
	"github.com/phplit-format/phplit/token"
)

// Parse parses exactly one php literal. A single trailing semicolon is
// tolerated; any other leftover input is an ErrTrailingChars failure.
// Errors are *Error values carrying the offending byte span.
func Parse(src []byte, opts ...ParseOpt) (ir.Value, error) {
	p := New(src, opts...)
	v, err := p.Value()
	if err != nil {
		return ir.Null, err
	}
	if p.peek().Type == token.TSemi {
		p.next()
	}
	if tok := p.next(); tok.Type != token.TEOF {
		return ir.Null, spanned(fmt.Errorf("%w: found %s", ErrTrailingChars, tok), tok.Span)
	}
	if debug.Parse() {
		debug.LogAny(v.Interface())
	}
	return v, nil
}

// ParseString is Parse over a string.
func ParseString(src string, opts ...ParseOpt) (ir.Value, error) {
	return Parse([]byte(src), opts...)
}

type ParseOpt func(*Parser)

// MaxDepth caps array nesting, turning pathologically deep input into
// an ErrTooDeep failure instead of exhausting the call stack. Zero
// means no limit.
func MaxDepth(n int) ParseOpt {
	return func(p *Parser) { p.maxDepth = n }
}

// Parser consumes a token stream one literal at a time. A small FIFO
// of already-pulled tokens provides the single token of lookahead the
// grammar needs.
type Parser struct {
	tz     *token.Tokenizer
	peeked []token.Token
	last   token.Span

	depth, maxDepth int
}

func New(src []byte, opts ...ParseOpt) *Parser {
	p := &Parser{tz: token.NewTokenizer(src)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) next() token.Token {
	var tok token.Token
	if len(p.peeked) > 0 {
		tok = p.peeked[0]
		p.peeked = p.peeked[1:]
	} else {
		tok = p.tz.Next()
	}
	if debug.Tokens() {
		debug.Logf("token %s at %d:%d\n", tok.Type, tok.Span.Start, tok.Span.End)
	}
	p.last = tok.Span
	return tok
}

func (p *Parser) peek() token.Token {
	if len(p.peeked) == 0 {
		p.peeked = append(p.peeked, p.tz.Next())
	}
	return p.peeked[0]
}

func (p *Parser) expect(expected ...token.Type) (token.Token, error) {
	tok := p.next()
	for _, e := range expected {
		if tok.Type == e {
			return tok, nil
		}
	}
	return tok, spanned(&UnexpectedTokenError{Expected: expected, Found: tok}, tok.Span)
}

var valueStart = []token.Type{
	token.TBool,
	token.TInt,
	token.TFloat,
	token.TString,
	token.TNull,
	token.TArray,
	token.TOpenBracket,
}

// Value parses one literal starting at the current position.
func (p *Parser) Value() (ir.Value, error) {
	tok, err := p.expect(valueStart...)
	if err != nil {
		return ir.Null, err
	}
	switch tok.Type {
	case token.TArray:
		if _, err := p.expect(token.TOpenParen); err != nil {
			return ir.Null, err
		}
		return p.descend(tok, token.TCloseParen)
	case token.TOpenBracket:
		return p.descend(tok, token.TCloseBracket)
	default:
		v, err := Scalar(tok)
		if err != nil {
			return ir.Null, spanned(err, tok.Span)
		}
		return v, nil
	}
}

func (p *Parser) descend(open token.Token, close token.Type) (ir.Value, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return ir.Null, spanned(ErrTooDeep, open.Span)
	}
	return p.array(close)
}

// Scalar decodes a leaf token into its value.
func Scalar(tok token.Token) (ir.Value, error) {
	switch tok.Type {
	case token.TBool:
		b, err := token.ParseBool(tok.Text())
		if err != nil {
			return ir.Null, fmt.Errorf("%w: %w", ErrInvalidPrimitive, err)
		}
		return ir.Bool(b), nil
	case token.TInt:
		n, err := token.ParseInt(tok.Text())
		if err != nil {
			return ir.Null, fmt.Errorf("%w: %w", ErrInvalidPrimitive, err)
		}
		return ir.Int(n), nil
	case token.TFloat:
		f, err := token.ParseFloat(tok.Text())
		if err != nil {
			return ir.Null, fmt.Errorf("%w: %w", ErrInvalidPrimitive, err)
		}
		return ir.Float(f), nil
	case token.TString:
		s, err := token.Unquote(tok.Bytes())
		if err != nil {
			return ir.Null, fmt.Errorf("%w: %w", ErrInvalidPrimitive, err)
		}
		return ir.String(s), nil
	case token.TNull:
		return ir.Null, nil
	}
	return ir.Null, fmt.Errorf("%w: %s is not a scalar", ErrInvalidPrimitive, tok)
}

// array parses an array body up to close, which is TCloseParen for
// array(...) and TCloseBracket for [...].
func (p *Parser) array(close token.Type) (ir.Value, error) {
	b := arrayBuilder{data: map[ir.Key]ir.Value{}}
	for {
		// the close token where a value would go means an empty
		// array or a trailing comma, not an error
		if p.peek().Type == close {
			p.next()
			break
		}
		keyStart := p.peek().Span.Start
		keyOrValue, err := p.Value()
		if err != nil {
			return ir.Null, err
		}
		keySpan := token.Span{Start: keyStart, End: p.last.End}

		next, err := p.expect(close, token.TComma, token.TArrow)
		if err != nil {
			return ir.Null, err
		}
		if next.Type == close {
			b.value(keyOrValue)
			break
		}
		if next.Type == token.TComma {
			b.value(keyOrValue)
			continue
		}

		key, ok := CoerceKey(keyOrValue)
		if !ok {
			return ir.Null, spanned(&InvalidArrayKeyError{Value: keyOrValue}, keySpan)
		}
		value, err := p.Value()
		if err != nil {
			return ir.Null, err
		}
		b.keyValue(key, value)

		next, err = p.expect(close, token.TComma)
		if err != nil {
			return ir.Null, err
		}
		if next.Type == close {
			break
		}
	}
	return ir.Array(b.data), nil
}

// arrayBuilder accumulates entries while tracking php's next
// auto-increment index. Bare values take the current counter; explicit
// int keys reset it to key+1; string keys leave it alone.
type arrayBuilder struct {
	nextIntKey int64
	data       map[ir.Key]ir.Value
}

func (b *arrayBuilder) value(v ir.Value) {
	b.data[ir.IntKey(b.nextIntKey)] = v
	b.nextIntKey++
}

func (b *arrayBuilder) keyValue(k ir.Key, v ir.Value) {
	if n, ok := k.AsInt(); ok {
		b.nextIntKey = n + 1
	}
	b.data[k] = v
}

// CoerceKey applies php's array key coercion to a value used on the
// left of =>: ints stay, floats truncate toward zero, integer-like
// strings become int keys, bools become 1/0, null becomes "". Arrays
// are not coercible.
func CoerceKey(v ir.Value) (ir.Key, bool) {
	switch v.Type() {
	case ir.IntType:
		n, _ := v.AsInt()
		return ir.IntKey(n), true
	case ir.FloatType:
		f, _ := v.AsFloat()
		return ir.IntKey(truncToInt(f)), true
	case ir.StringType:
		s, _ := v.AsString()
		if n, ok := integerLike(s); ok {
			return ir.IntKey(n), true
		}
		return ir.StringKey(s), true
	case ir.BoolType:
		if b, _ := v.AsBool(); b {
			return ir.IntKey(1), true
		}
		return ir.IntKey(0), true
	case ir.NullType:
		return ir.StringKey(""), true
	}
	return ir.Key{}, false
}

// truncToInt truncates toward zero, with NaN mapping to 0 and
// out-of-range magnitudes saturating.
func truncToInt(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// integerLike reports whether s is a canonical decimal integer: "0" or
// an optional minus followed by digits with no leading zero. "08",
// "-0", "+8" and " 8" are not integer-like and stay string keys.
func integerLike(s string) (int64, bool) {
	t := s
	if len(t) > 0 && t[0] == '-' {
		t = t[1:]
	}
	if t == "" {
		return 0, false
	}
	if t[0] == '0' && (len(t) > 1 || t != s) {
		return 0, false
	}
	for i := 0; i < len(t); i++ {
		if t[i] < '0' || t[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// out of 64-bit range keeps its string spelling
		return 0, false
	}
	return n, true
}
