package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"12", 12},
		{"-1", -1},
		{"-432", -432},
		{"+7", 7},
		{"0x1A", 26},
		{"0X1a", 26},
		{"-0x10", -16},
		{"0b11", 3},
		{"0B101", 5},
		{"0432", 282},
		{"12_34_5", 12345},
		{"0x1_A", 26},
		{"9223372036854775807", 1<<63 - 1},
	} {
		got, err := ParseInt(tc.in)
		require.NoError(t, err, "ParseInt(%q)", tc.in)
		assert.Equal(t, tc.want, got, "ParseInt(%q)", tc.in)
	}
}

func TestParseIntErrors(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want error
	}{
		{"", ErrEmptyDigits},
		{"-", ErrEmptyDigits},
		{"0x", ErrEmptyDigits},
		{"0b", ErrEmptyDigits},
		{"0x1G", ErrInvalidDigit},
		{"0b12", ErrInvalidDigit},
		{"0438", ErrInvalidDigit},
		{"12a", ErrInvalidDigit},
		{"9223372036854775808", ErrOverflow},
		{"-9223372036854775808", ErrOverflow},
		{"0xFFFFFFFFFFFFFFFF", ErrOverflow},
	} {
		_, err := ParseInt(tc.in)
		assert.ErrorIs(t, err, tc.want, "ParseInt(%q)", tc.in)
	}
}

func TestParseFloat(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want float64
	}{
		{"1.12", 1.12},
		{"-432.0", -432.0},
		{".12", 0.12},
		{"10e2", 1000.0},
		{"10e-1", 1.0},
		{"12_34.5", 1234.5},
		{"123.", 123.0},
	} {
		got, err := ParseFloat(tc.in)
		require.NoError(t, err, "ParseFloat(%q)", tc.in)
		assert.Equal(t, tc.want, got, "ParseFloat(%q)", tc.in)
	}

	_, err := ParseFloat("1.2.3")
	assert.ErrorIs(t, err, ErrBadFloat)
}

func TestParseBool(t *testing.T) {
	for in, want := range map[string]bool{
		"true": true, "True": true, "TRUE": true,
		"false": false, "False": false, "FALSE": false,
	} {
		got, err := ParseBool(in)
		require.NoError(t, err, "ParseBool(%q)", in)
		assert.Equal(t, want, got, "ParseBool(%q)", in)
	}

	_, err := ParseBool("yes")
	assert.ErrorIs(t, err, ErrBadBool)
}
