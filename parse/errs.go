package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phplit-format/phplit/ir"
	"github.com/phplit-format/phplit/token"
)

var (
	ErrParse              = errors.New("parse error")
	ErrUnexpectedToken    = fmt.Errorf("%w: unexpected token", ErrParse)
	ErrInvalidPrimitive   = fmt.Errorf("%w: invalid primitive literal", ErrParse)
	ErrInvalidArrayKey    = fmt.Errorf("%w: invalid array key", ErrParse)
	ErrUnexpectedArrayKey = fmt.Errorf("%w: unexpected array key", ErrParse)
	ErrTrailingChars      = fmt.Errorf("%w: trailing characters", ErrParse)
	ErrTooDeep            = fmt.Errorf("%w: maximum nesting depth exceeded", ErrParse)
)

// Error binds a parse failure to the byte span it occurred at. The
// source text is never stored in the error; hand it to render.Render
// together with the span when a pretty report is wanted.
type Error struct {
	Err  error
	Span token.Span
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func spanned(err error, span token.Span) *Error {
	return &Error{Err: err, Span: span}
}

// UnexpectedTokenError reports a token outside the grammar's expected
// set at its position. A Found of type token.TEOF means input ran out.
type UnexpectedTokenError struct {
	Expected []token.Type
	Found    token.Token
}

func (e *UnexpectedTokenError) Error() string {
	names := make([]string, len(e.Expected))
	for i, tt := range e.Expected {
		names[i] = tt.String()
	}
	set := strings.Join(names, ", ")
	if e.Found.Type == token.TError {
		return fmt.Sprintf("no valid token found, expected one of [%s]", set)
	}
	return fmt.Sprintf("unexpected token, found %s expected one of [%s]", e.Found, set)
}

func (e *UnexpectedTokenError) Unwrap() error {
	return ErrUnexpectedToken
}

// InvalidArrayKeyError reports an array on the left of =>, the one
// value php cannot coerce into a key.
type InvalidArrayKeyError struct {
	Value ir.Value
}

func (e *InvalidArrayKeyError) Error() string {
	return fmt.Sprintf("invalid array key %s, expected number or string", e.Value)
}

func (e *InvalidArrayKeyError) Unwrap() error {
	return ErrInvalidArrayKey
}
