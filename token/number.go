package token

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseInt decodes a php integer literal: decimal, hex (0x), octal
// (leading 0) or binary (0b), with optional _ group separators and an
// optional leading sign. The sign is applied after the magnitude is
// accumulated, so "-0x10" decodes the magnitude 0x10 and negates it.
// Overflowing 64 bits is an error, never a wraparound.
func ParseInt(s string) (int64, error) {
	if s == "" {
		return 0, ErrEmptyDigits
	}
	sign := int64(1)
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	}
	radix := int64(10)
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		radix = 16
		s = s[2:]
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		radix = 2
		s = s[2:]
	case len(s) > 1 && s[0] == '0':
		radix = 8
		s = s[1:]
	}
	if s == "" {
		return 0, ErrEmptyDigits
	}
	var result int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			continue
		}
		d := digitVal(c)
		if d < 0 || d >= radix {
			return 0, fmt.Errorf("%w %d: %q", ErrInvalidDigit, radix, c)
		}
		if result > (math.MaxInt64-d)/radix {
			return 0, ErrOverflow
		}
		result = result*radix + d
	}
	return result * sign, nil
}

func digitVal(c byte) int64 {
	switch {
	case '0' <= c && c <= '9':
		return int64(c - '0')
	case 'a' <= c && c <= 'f':
		return int64(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int64(c-'A') + 10
	}
	return -1
}

// ParseFloat decodes a php float literal. Group separators are stripped
// and the rest is left to strconv.
func ParseFloat(s string) (float64, error) {
	stripped := strings.ReplaceAll(s, "_", "")
	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadFloat, s)
	}
	return f, nil
}

// ParseBool decodes true/false in any casing, like php.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrBadBool, s)
}
