package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phplit-format/phplit/ir"
	"github.com/phplit-format/phplit/token"
)

func mustParse(t *testing.T, src string) ir.Value {
	t.Helper()
	v, err := ParseString(src)
	require.NoError(t, err, "parse %q", src)
	return v
}

func arr(entries map[ir.Key]ir.Value) ir.Value {
	return ir.Array(entries)
}

func TestParseScalars(t *testing.T) {
	assert.True(t, mustParse(t, `true`).Equals(true))
	assert.True(t, mustParse(t, `false`).Equals(false))
	assert.True(t, mustParse(t, `True`).Equals(true))
	assert.True(t, mustParse(t, `TRUE`).Equals(true))
	assert.True(t, mustParse(t, `12`).Equals(12))
	assert.True(t, mustParse(t, `-1`).Equals(-1))
	assert.True(t, mustParse(t, `1.12`).Equals(1.12))
	assert.True(t, mustParse(t, `"test"`).Equals("test"))
	assert.True(t, mustParse(t, `'test'`).Equals("test"))
	assert.True(t, mustParse(t, `null`).Equals(nil))

	assert.True(t, mustParse(t, `-432`).Equals(-432))
	assert.True(t, mustParse(t, `0432`).Equals(282))
	assert.True(t, mustParse(t, `0x1A`).Equals(26))
	assert.True(t, mustParse(t, `0b11`).Equals(3))
	assert.True(t, mustParse(t, `12_34_5`).Equals(12345))

	assert.True(t, mustParse(t, `-432.0`).Equals(-432.0))
	assert.True(t, mustParse(t, `.12`).Equals(0.12))
	assert.True(t, mustParse(t, `10e2`).Equals(1000.0))
	assert.True(t, mustParse(t, `10e-1`).Equals(1.0))
	assert.True(t, mustParse(t, `12_34.5`).Equals(1234.5))
}

func TestParseEscapes(t *testing.T) {
	// single quotes keep most escapes verbatim, double quotes decode
	assert.True(t, mustParse(t, `'\"'`).Equals(`\"`))
	assert.True(t, mustParse(t, `"\x41"`).Equals("A"))
	assert.True(t, mustParse(t, `"\u{1D11E}"`).Equals("𝄞"))
	assert.True(t, mustParse(t, `'a\'b'`).Equals("a'b"))
}

func TestParseArrays(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want ir.Value
	}{
		{`array()`, arr(nil)},
		{`[]`, arr(nil)},
		{`array(3,4,5)`, arr(map[ir.Key]ir.Value{
			ir.IntKey(0): ir.Int(3),
			ir.IntKey(1): ir.Int(4),
			ir.IntKey(2): ir.Int(5),
		})},
		{`array(3,4,5,)`, arr(map[ir.Key]ir.Value{
			ir.IntKey(0): ir.Int(3),
			ir.IntKey(1): ir.Int(4),
			ir.IntKey(2): ir.Int(5),
		})},
		{`array(1=>3,3=>4,5=>5)`, arr(map[ir.Key]ir.Value{
			ir.IntKey(1): ir.Int(3),
			ir.IntKey(3): ir.Int(4),
			ir.IntKey(5): ir.Int(5),
		})},
		{`array(1=>3,4,5)`, arr(map[ir.Key]ir.Value{
			ir.IntKey(1): ir.Int(3),
			ir.IntKey(2): ir.Int(4),
			ir.IntKey(3): ir.Int(5),
		})},
		{`array("1"=>3,4,5)`, arr(map[ir.Key]ir.Value{
			ir.IntKey(1): ir.Int(3),
			ir.IntKey(2): ir.Int(4),
			ir.IntKey(3): ir.Int(5),
		})},
		{`array(1.5=>3,4,5)`, arr(map[ir.Key]ir.Value{
			ir.IntKey(1): ir.Int(3),
			ir.IntKey(2): ir.Int(4),
			ir.IntKey(3): ir.Int(5),
		})},
		{`array(true=>3,4,5)`, arr(map[ir.Key]ir.Value{
			ir.IntKey(1): ir.Int(3),
			ir.IntKey(2): ir.Int(4),
			ir.IntKey(3): ir.Int(5),
		})},
		{`array(1=>3,"foo" => 4,5)`, arr(map[ir.Key]ir.Value{
			ir.IntKey(1):        ir.Int(3),
			ir.StringKey("foo"): ir.Int(4),
			ir.IntKey(2):        ir.Int(5),
		})},
		{`array("2"=>3,"foo" => 4, null => 5, true => 6, false => 7)`, arr(map[ir.Key]ir.Value{
			ir.IntKey(2):        ir.Int(3),
			ir.StringKey("foo"): ir.Int(4),
			ir.StringKey(""):    ir.Int(5),
			ir.IntKey(1):        ir.Int(6),
			ir.IntKey(0):        ir.Int(7),
		})},
	} {
		got := mustParse(t, tc.src)
		assert.True(t, got.Equal(tc.want), "parse(%q) = %s, want %s", tc.src, got, tc.want)
	}
}

func TestParseNested(t *testing.T) {
	want := arr(map[ir.Key]ir.Value{
		ir.StringKey("foo"): ir.Bool(true),
		ir.StringKey("nested"): arr(map[ir.Key]ir.Value{
			ir.StringKey("foo"): ir.Bool(false),
		}),
	})
	assert.True(t, mustParse(t, `array("foo" => true, "nested" => array ('foo' => false))`).Equal(want))
	assert.True(t, mustParse(t, `["foo" => true, "nested" => ['foo' => false]]`).Equal(want))

	lists := arr(map[ir.Key]ir.Value{
		ir.IntKey(0): arr(map[ir.Key]ir.Value{ir.StringKey("a"): ir.Int(2)}),
		ir.IntKey(1): arr(map[ir.Key]ir.Value{ir.StringKey("b"): ir.Int(3)}),
	})
	assert.True(t, mustParse(t, `[["a" => 2], ["b" => 3]]`).Equal(lists))
	assert.True(t, mustParse(t, `array(array("a" => 2), array("b" => 3))`).Equal(lists))
}

func TestParseBothSyntaxesEquivalent(t *testing.T) {
	long := mustParse(t, `array("k"=>1)`)
	short := mustParse(t, `["k"=>1]`)
	assert.True(t, long.Equal(short))
}

func TestParseComments(t *testing.T) {
	v := mustParse(t, `
	array(
		# hash comment
		"a" => 1, // line comment
		/* block
		   comment */
		"b" => 2,
	)
	`)
	assert.True(t, v.IndexString("a").Equals(1))
	assert.True(t, v.IndexString("b").Equals(2))
}

func TestParseTrailingSemi(t *testing.T) {
	assert.True(t, mustParse(t, `12;`).Equals(12))
	assert.True(t, mustParse(t, `[1];`).IndexInt(0).Equals(1))

	_, err := ParseString(`12;;`)
	assert.ErrorIs(t, err, ErrTrailingChars)
}

func TestParseTrailingCharacters(t *testing.T) {
	_, err := ParseString(`12 garbage`)
	assert.ErrorIs(t, err, ErrTrailingChars)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Span.Start)
}

func TestParseStringKeyCoercion(t *testing.T) {
	// the precise integer-like string rule: leading zeros, signs and
	// whitespace keep the string spelling
	v := mustParse(t, `["8"=>1, "08"=>2, "-8"=>3, " 8"=>4, "+8"=>5, "-0"=>6]`)
	assert.True(t, v.IndexInt(8).Equals(1))
	assert.True(t, v.IndexString("08").Equals(2))
	assert.True(t, v.IndexInt(-8).Equals(3))
	assert.True(t, v.IndexString(" 8").Equals(4))
	assert.True(t, v.IndexString("+8").Equals(5))
	assert.True(t, v.IndexString("-0").Equals(6))
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want error
	}{
		{``, ErrUnexpectedToken},
		{`array(`, ErrUnexpectedToken},
		{`array 1`, ErrUnexpectedToken},
		{`[1,2`, ErrUnexpectedToken},
		{`[1=>]`, ErrUnexpectedToken},
		{`{"a"=>1}`, ErrUnexpectedToken},
		{`["k"=>[1,2]=>3]`, ErrInvalidArrayKey},
		{`9223372036854775808`, ErrInvalidPrimitive},
		{`9223372036854775808`, token.ErrOverflow},
		{`"\u{D834}"`, ErrInvalidPrimitive},
		{`'unterminated`, ErrUnexpectedToken},
	} {
		_, err := ParseString(tc.src)
		assert.ErrorIs(t, err, tc.want, "parse(%q)", tc.src)
	}
}

func TestParseErrorSpan(t *testing.T) {
	_, err := ParseString("[\n    \"broken\"\n    \"array\"\n]")
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	var uerr *UnexpectedTokenError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, token.TString, uerr.Found.Type)
	assert.Equal(t, `"array"`, uerr.Found.Text())
	assert.Equal(t, uerr.Found.Span, perr.Span)
}

func TestCoerceKeyFloats(t *testing.T) {
	k, ok := CoerceKey(ir.Float(1.9))
	require.True(t, ok)
	assert.Equal(t, ir.IntKey(1), k)

	k, ok = CoerceKey(ir.Float(-1.9))
	require.True(t, ok)
	assert.Equal(t, ir.IntKey(-1), k)

	_, ok = CoerceKey(ir.Array(nil))
	assert.False(t, ok)
}

func TestParseMaxDepth(t *testing.T) {
	src := strings.Repeat("[", 40) + "1" + strings.Repeat("]", 40)
	v, err := ParseString(src, MaxDepth(40))
	require.NoError(t, err)
	for i := 0; i < 40; i++ {
		v = v.IndexInt(0)
	}
	assert.Equal(t, ir.Int(1), v)

	_, err = ParseString(src, MaxDepth(39))
	assert.ErrorIs(t, err, ErrTooDeep)

	_, err = ParseString(src)
	assert.NoError(t, err)
}
