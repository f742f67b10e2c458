package gomap

import (
	"errors"
	"fmt"
)

var (
	ErrDecode       = errors.New("decode error")
	ErrNotPointer   = fmt.Errorf("%w: target must be a non-nil pointer", ErrDecode)
	ErrNegative     = fmt.Errorf("%w: unexpected negative integer", ErrDecode)
	ErrRange        = fmt.Errorf("%w: value out of range for target", ErrDecode)
	ErrMissingField = fmt.Errorf("%w: missing field", ErrDecode)
	ErrBadKey       = fmt.Errorf("%w: key does not fit target", ErrDecode)
	ErrUnsupported  = fmt.Errorf("%w: unsupported target type", ErrDecode)
	ErrArity        = fmt.Errorf("%w: element count mismatch", ErrDecode)
)
