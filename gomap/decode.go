// Package gomap decodes php literals directly into Go values. The
// [Decoder] walks the token stream shape by shape without building an
// intermediate ir tree; [Unmarshal] drives it by reflection over a
// caller-supplied target.
package gomap

import (
	"fmt"

	"github.com/phplit-format/phplit/debug"
	"github.com/phplit-format/phplit/ir"
	"github.com/phplit-format/phplit/parse"
	"github.com/phplit-format/phplit/token"
)

// Decoder is a pull-based walker over one php literal. Consumers ask
// for the shape they expect (Bool, Int, Seq, Map, Variant, ...) and
// the decoder feeds tokens accordingly, failing when the literal does
// not match. A small FIFO of already-pulled tokens provides the
// lookahead the shape decisions need.
type Decoder struct {
	tz     *token.Tokenizer
	peeked []token.Token
}

func NewDecoder(src []byte) *Decoder {
	return &Decoder{tz: token.NewTokenizer(src)}
}

func (d *Decoder) next() token.Token {
	var tok token.Token
	if len(d.peeked) > 0 {
		tok = d.peeked[0]
		d.peeked = d.peeked[1:]
	} else {
		tok = d.tz.Next()
	}
	if debug.Decode() {
		debug.Logf("decode %s at %d:%d\n", tok.Type, tok.Span.Start, tok.Span.End)
	}
	return tok
}

func (d *Decoder) peek() token.Token {
	if len(d.peeked) == 0 {
		d.peeked = append(d.peeked, d.tz.Next())
	}
	return d.peeked[0]
}

// push re-queues an already-pulled token at the back of the lookahead
// buffer, to be consumed before anything new from the tokenizer.
func (d *Decoder) push(tok token.Token) {
	d.peeked = append(d.peeked, tok)
}

func (d *Decoder) expect(expected ...token.Type) (token.Token, error) {
	tok := d.next()
	for _, e := range expected {
		if tok.Type == e {
			return tok, nil
		}
	}
	err := &parse.UnexpectedTokenError{Expected: expected, Found: tok}
	return tok, &parse.Error{Err: err, Span: tok.Span}
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

// Type classifies the upcoming value without consuming it.
func (d *Decoder) Type() (ir.Type, error) {
	switch d.peek().Type {
	case token.TNull:
		return ir.NullType, nil
	case token.TBool:
		return ir.BoolType, nil
	case token.TInt:
		return ir.IntType, nil
	case token.TFloat:
		return ir.FloatType, nil
	case token.TString:
		return ir.StringType, nil
	case token.TArray, token.TOpenBracket:
		return ir.ArrayType, nil
	}
	_, err := d.expect(valueStart...)
	return ir.NullType, err
}

func (d *Decoder) Bool() (bool, error) {
	tok, err := d.expect(token.TBool)
	if err != nil {
		return false, err
	}
	b, err := token.ParseBool(tok.Text())
	if err != nil {
		return false, &parse.Error{Err: err, Span: tok.Span}
	}
	return b, nil
}

func (d *Decoder) Int() (int64, error) {
	tok, err := d.expect(token.TInt)
	if err != nil {
		return 0, err
	}
	n, err := token.ParseInt(tok.Text())
	if err != nil {
		return 0, &parse.Error{Err: err, Span: tok.Span}
	}
	return n, nil
}

func (d *Decoder) Float() (float64, error) {
	tok, err := d.expect(token.TFloat, token.TInt)
	if err != nil {
		return 0, err
	}
	if tok.Type == token.TInt {
		n, err := token.ParseInt(tok.Text())
		if err != nil {
			return 0, &parse.Error{Err: err, Span: tok.Span}
		}
		return float64(n), nil
	}
	f, err := token.ParseFloat(tok.Text())
	if err != nil {
		return 0, &parse.Error{Err: err, Span: tok.Span}
	}
	return f, nil
}

func (d *Decoder) Str() (string, error) {
	tok, err := d.expect(token.TString)
	if err != nil {
		return "", err
	}
	s, err := token.Unquote(tok.Bytes())
	if err != nil {
		return "", &parse.Error{Err: err, Span: tok.Span}
	}
	return s, nil
}

// Null consumes a null literal.
func (d *Decoder) Null() error {
	_, err := d.expect(token.TNull)
	return err
}

// IsNull consumes an upcoming null and reports it; any other value is
// left untouched for the caller to decode.
func (d *Decoder) IsNull() bool {
	if d.peek().Type == token.TNull {
		d.next()
		return true
	}
	return false
}

// openArray consumes an array opening and returns the matching close
// token type: array( closes with ) and [ closes with ].
func (d *Decoder) openArray() (token.Type, error) {
	tok, err := d.expect(token.TArray, token.TOpenBracket)
	if err != nil {
		return token.TError, err
	}
	if tok.Type == token.TArray {
		if _, err := d.expect(token.TOpenParen); err != nil {
			return token.TError, err
		}
		return token.TCloseParen, nil
	}
	return token.TCloseBracket, nil
}

// Seq walks an array literal declared by the consumer to be a plain
// sequence, calling elem once per element. Explicit integer keys are
// validated against the running auto-index, so out-of-order keys
// inside a declared sequence fail rather than silently reorder.
func (d *Decoder) Seq(elem func(*Decoder) error) error {
	close, err := d.openArray()
	if err != nil {
		return err
	}
	nextIdx := int64(0)
	for {
		if d.peek().Type == close {
			d.next()
			return nil
		}
		tok := d.next()
		if tok.Type == token.TArray || tok.Type == token.TOpenBracket {
			// a nested array cannot be a key, so it is the element
			d.push(tok)
			if err := d.element(elem, close, &nextIdx); err != nil {
				return err
			}
			continue
		}
		if _, err := d.expectStart(tok); err != nil {
			return err
		}
		sep := d.next()
		if sep.Type == token.TArrow {
			key, err := d.coerceKey(tok)
			if err != nil {
				return err
			}
			if n, ok := key.AsInt(); !ok || n != nextIdx {
				return &parse.Error{
					Err:  fmt.Errorf("%w: key %s where index %d was expected", parse.ErrUnexpectedArrayKey, key, nextIdx),
					Span: tok.Span,
				}
			}
			if err := d.element(elem, close, &nextIdx); err != nil {
				return err
			}
			continue
		}
		// tok was the whole element; hand it and the separator back
		// so elem reads the value and element() finds the separator
		d.push(tok)
		d.push(sep)
		if err := d.element(elem, close, &nextIdx); err != nil {
			return err
		}
	}
}

// element decodes one element value and the separator after it. A
// closing bracket found as the separator goes back on the buffer so
// the walk loop terminates on it.
func (d *Decoder) element(elem func(*Decoder) error, close token.Type, nextIdx *int64) error {
	if err := elem(d); err != nil {
		return err
	}
	*nextIdx++
	sep, err := d.expect(token.TComma, close)
	if err != nil {
		return err
	}
	if sep.Type == close {
		d.push(sep)
	}
	return nil
}

func (d *Decoder) expectStart(tok token.Token) (token.Token, error) {
	for _, e := range valueStart {
		if tok.Type == e {
			return tok, nil
		}
	}
	err := &parse.UnexpectedTokenError{Expected: valueStart, Found: tok}
	return tok, &parse.Error{Err: err, Span: tok.Span}
}

// coerceKey decodes a scalar key token and applies the array key
// coercion rule.
func (d *Decoder) coerceKey(tok token.Token) (ir.Key, error) {
	v, err := parse.Scalar(tok)
	if err != nil {
		return ir.Key{}, &parse.Error{Err: err, Span: tok.Span}
	}
	key, ok := parse.CoerceKey(v)
	if !ok {
		return ir.Key{}, &parse.Error{
			Err:  &parse.InvalidArrayKeyError{Value: v},
			Span: tok.Span,
		}
	}
	return key, nil
}

// Map walks an array literal as key/value entries. Explicit keys go
// through the array key coercion rule; implicit entries get the
// running auto-index as an int key.
func (d *Decoder) Map(entry func(key ir.Key, d *Decoder) error) error {
	close, err := d.openArray()
	if err != nil {
		return err
	}
	nextIdx := int64(0)
	for {
		if d.peek().Type == close {
			d.next()
			return nil
		}
		tok := d.next()
		if tok.Type == token.TArray || tok.Type == token.TOpenBracket {
			// nested array value with an implicit key
			d.push(tok)
			key := ir.IntKey(nextIdx)
			nextIdx++
			if err := d.mapValue(key, entry, close); err != nil {
				return err
			}
			continue
		}
		if _, err := d.expectStart(tok); err != nil {
			return err
		}
		sep := d.next()
		if sep.Type == token.TArrow {
			key, err := d.coerceKey(tok)
			if err != nil {
				return err
			}
			if n, ok := key.AsInt(); ok {
				nextIdx = n + 1
			}
			if err := d.mapValue(key, entry, close); err != nil {
				return err
			}
			continue
		}
		// implicit entry: tok is the value, sep the separator
		key := ir.IntKey(nextIdx)
		nextIdx++
		d.push(tok)
		d.push(sep)
		if err := d.mapValue(key, entry, close); err != nil {
			return err
		}
	}
}

func (d *Decoder) mapValue(key ir.Key, entry func(ir.Key, *Decoder) error, close token.Type) error {
	if err := entry(key, d); err != nil {
		return err
	}
	sep, err := d.expect(token.TComma, close)
	if err != nil {
		return err
	}
	if sep.Type == close {
		d.push(sep)
	}
	return nil
}

// Variant decodes an enum-shaped literal: a bare string names a unit
// variant and visit gets a nil payload; a one-entry array feeds the
// key as the variant name and leaves the decoder positioned on the
// payload value.
func (d *Decoder) Variant(visit func(name string, payload *Decoder) error) error {
	tok, err := d.expect(token.TString, token.TArray, token.TOpenBracket)
	if err != nil {
		return err
	}
	if tok.Type == token.TString {
		name, err := token.Unquote(tok.Bytes())
		if err != nil {
			return &parse.Error{Err: err, Span: tok.Span}
		}
		return visit(name, nil)
	}
	d.push(tok)
	close, err := d.openArray()
	if err != nil {
		return err
	}
	name, err := d.Str()
	if err != nil {
		return err
	}
	if _, err := d.expect(token.TArrow); err != nil {
		return err
	}
	if err := visit(name, d); err != nil {
		return err
	}
	if d.peek().Type == token.TComma {
		d.next()
	}
	_, err = d.expect(close)
	return err
}

// Value materializes one full value off the stream, used for dynamic
// targets. Array semantics match the parser's, including auto-index
// bookkeeping.
func (d *Decoder) Value() (ir.Value, error) {
	t, err := d.Type()
	if err != nil {
		return ir.Null, err
	}
	if t != ir.ArrayType {
		tok := d.next()
		v, err := parse.Scalar(tok)
		if err != nil {
			return ir.Null, &parse.Error{Err: err, Span: tok.Span}
		}
		return v, nil
	}
	data := map[ir.Key]ir.Value{}
	err = d.Map(func(key ir.Key, d *Decoder) error {
		v, err := d.Value()
		if err != nil {
			return err
		}
		data[key] = v
		return nil
	})
	if err != nil {
		return ir.Null, err
	}
	return ir.Array(data), nil
}

// Skip consumes and discards one value.
func (d *Decoder) Skip() error {
	_, err := d.Value()
	return err
}

// End verifies the literal is fully consumed, tolerating one trailing
// semicolon the way parse.Parse does.
func (d *Decoder) End() error {
	if d.peek().Type == token.TSemi {
		d.next()
	}
	tok := d.next()
	if tok.Type != token.TEOF {
		return &parse.Error{
			Err:  fmt.Errorf("%w: found %s", parse.ErrTrailingChars, tok),
			Span: tok.Span,
		}
	}
	return nil
}
