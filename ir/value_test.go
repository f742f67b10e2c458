package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexing(t *testing.T) {
	v := Array(map[Key]Value{
		StringKey("key"): String("value"),
		IntKey(1):        Bool(true),
	})

	assert.True(t, v.IndexString("key").Equals("value"))
	assert.True(t, v.IndexInt(1).Equals(true))
	assert.True(t, v.Index(IntKey(1)).Equals(true))

	// misses and non-array indexing are silent
	assert.True(t, v.IndexString("not").IsNull())
	assert.True(t, v.IndexString("not").IndexString("found").IsNull())
	assert.True(t, Int(3).IndexInt(0).IsNull())
	assert.True(t, Null.IndexString("x").IsNull())
}

func TestValueEqual(t *testing.T) {
	a := Array(map[Key]Value{
		StringKey("foo"): Bool(true),
		IntKey(0):        Int(1),
	})
	b := Array(map[Key]Value{
		IntKey(0):        Int(1),
		StringKey("foo"): Bool(true),
	})
	assert.True(t, a.Equal(b))

	c := Array(map[Key]Value{
		IntKey(0):        Int(2),
		StringKey("foo"): Bool(true),
	})
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Int(1)))
	assert.True(t, Null.Equal(Null))

	// strict key variants: 1 and "1" are different keys
	d := Array(map[Key]Value{StringKey("1"): Int(1)})
	e := Array(map[Key]Value{IntKey(1): Int(1)})
	assert.False(t, d.Equal(e))
}

func TestValueEquals(t *testing.T) {
	assert.True(t, Bool(true).Equals(true))
	assert.True(t, Int(26).Equals(26))
	assert.True(t, Int(26).Equals(int64(26)))
	assert.True(t, Float(1.5).Equals(1.5))
	assert.True(t, String("s").Equals("s"))
	assert.True(t, Null.Equals(nil))

	assert.False(t, Int(1).Equals(true))
	assert.False(t, String("1").Equals(1))
	assert.False(t, Float(1).Equals(1))
}

func TestKeyCompare(t *testing.T) {
	assert.Equal(t, -1, IntKey(1).Compare(IntKey(2)))
	assert.Equal(t, 1, IntKey(3).Compare(IntKey(2)))
	assert.Equal(t, 0, IntKey(2).Compare(IntKey(2)))
	assert.Equal(t, -1, StringKey("a").Compare(StringKey("b")))
	assert.Equal(t, 0, StringKey("a").Compare(StringKey("a")))

	// mixed comparisons use the decimal rendering of the int
	assert.Equal(t, -1, IntKey(10).Compare(StringKey("2")))
	assert.Equal(t, 1, StringKey("2").Compare(IntKey(10)))
	// equal renderings stay distinct, ints first
	assert.Equal(t, -1, IntKey(1).Compare(StringKey("1")))
	assert.Equal(t, 1, StringKey("1").Compare(IntKey(1)))
}

func TestIsListAndInterface(t *testing.T) {
	list := Array(map[Key]Value{
		IntKey(0): Int(1),
		IntKey(1): Int(2),
		IntKey(2): Int(3),
	})
	assert.True(t, list.IsList())
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, list.Interface())

	sparse := Array(map[Key]Value{
		IntKey(0): Int(1),
		IntKey(2): Int(3),
	})
	assert.False(t, sparse.IsList())
	assert.Equal(t, map[string]any{"0": int64(1), "2": int64(3)}, sparse.Interface())

	mixed := Array(map[Key]Value{
		StringKey("k"): String("v"),
		IntKey(0):      Bool(false),
	})
	assert.False(t, mixed.IsList())
	assert.Equal(t, map[string]any{"k": "v", "0": false}, mixed.Interface())

	assert.False(t, String("nope").IsList())
	assert.Nil(t, Null.Interface())
}

func TestValueString(t *testing.T) {
	v := Array(map[Key]Value{
		StringKey("b"): Int(2),
		IntKey(0):      String("a\nb"),
	})
	assert.Equal(t, `[0 => "a\nb", "b" => 2]`, v.String())
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "1.5", Float(1.5).String())
}
