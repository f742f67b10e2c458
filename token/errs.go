package token

import (
	"errors"
)

var (
	ErrEmptyDigits  = errors.New("integer literal has no digits")
	ErrInvalidDigit = errors.New("invalid digit for radix")
	ErrOverflow     = errors.New("integer literal overflows 64 bits")
	ErrBadFloat     = errors.New("invalid float literal")
	ErrBadBool      = errors.New("invalid bool literal")
	ErrBadEscape    = errors.New("bad escape")
	ErrBadUnicode   = errors.New("bad unicode escape")
	ErrUnterminated = errors.New("unterminated string")
)
