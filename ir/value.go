package ir

import (
	"sort"
	"strconv"
	"strings"
)

// Value is a php value: bool, int, float, string, array or null. All
// php arrays are associative, so the array variant is a Key→Value map.
//
// The zero Value is Null. Values are built bottom-up by the parser and
// are not mutated afterwards; indexing into a non-array or a missing
// key returns Null rather than failing, mirroring php array access.
type Value struct {
	t Type
	b bool
	i int64
	f float64
	s string
	a map[Key]Value
}

// Null is the shared "nothing there" value returned by indexing misses.
var Null = Value{}

func Bool(b bool) Value {
	return Value{t: BoolType, b: b}
}

func Int(n int64) Value {
	return Value{t: IntType, i: n}
}

func Float(f float64) Value {
	return Value{t: FloatType, f: f}
}

func String(s string) Value {
	return Value{t: StringType, s: s}
}

// Array builds an array value over m. A nil map is an empty array.
func Array(m map[Key]Value) Value {
	if m == nil {
		m = map[Key]Value{}
	}
	return Value{t: ArrayType, a: m}
}

func (v Value) Type() Type { return v.t }

func (v Value) IsNull() bool   { return v.t == NullType }
func (v Value) IsBool() bool   { return v.t == BoolType }
func (v Value) IsInt() bool    { return v.t == IntType }
func (v Value) IsFloat() bool  { return v.t == FloatType }
func (v Value) IsString() bool { return v.t == StringType }
func (v Value) IsArray() bool  { return v.t == ArrayType }

func (v Value) AsBool() (bool, bool) {
	return v.b, v.t == BoolType
}

func (v Value) AsInt() (int64, bool) {
	return v.i, v.t == IntType
}

func (v Value) AsFloat() (float64, bool) {
	return v.f, v.t == FloatType
}

func (v Value) AsString() (string, bool) {
	return v.s, v.t == StringType
}

func (v Value) AsArray() (map[Key]Value, bool) {
	return v.a, v.t == ArrayType
}

// Len returns the entry count of an array value, 0 otherwise.
func (v Value) Len() int {
	return len(v.a)
}

// Index looks k up in an array value. Indexing a non-array or a missing
// key returns Null, never an error.
func (v Value) Index(k Key) Value {
	if v.t != ArrayType {
		return Null
	}
	return v.a[k]
}

func (v Value) IndexInt(n int64) Value {
	return v.Index(IntKey(n))
}

func (v Value) IndexString(s string) Value {
	return v.Index(StringKey(s))
}

// Keys returns the array keys in Compare order, nil for non-arrays.
func (v Value) Keys() []Key {
	if v.t != ArrayType {
		return nil
	}
	keys := make([]Key, 0, len(v.a))
	for k := range v.a {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) < 0
	})
	return keys
}

// IsList reports whether v is an array whose keys are exactly the ints
// 0..n-1, i.e. what php calls a list.
func (v Value) IsList() bool {
	if v.t != ArrayType {
		return false
	}
	for i := int64(0); i < int64(len(v.a)); i++ {
		if _, ok := v.a[IntKey(i)]; !ok {
			return false
		}
	}
	return true
}

// Equal compares two values structurally. Arrays compare by content,
// independent of iteration order. Floats compare exactly.
func (v Value) Equal(o Value) bool {
	if v.t != o.t {
		return false
	}
	switch v.t {
	case NullType:
		return true
	case BoolType:
		return v.b == o.b
	case IntType:
		return v.i == o.i
	case FloatType:
		return v.f == o.f
	case StringType:
		return v.s == o.s
	case ArrayType:
		if len(v.a) != len(o.a) {
			return false
		}
		for k, ve := range v.a {
			oe, ok := o.a[k]
			if !ok || !ve.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

// Equals compares v against a native Go scalar (or another Value) for
// ergonomic assertions: v.Equals(26), v.Equals("str"), v.Equals(true).
// A type mismatch is simply false.
func (v Value) Equals(x any) bool {
	switch x := x.(type) {
	case nil:
		return v.t == NullType
	case bool:
		return v.t == BoolType && v.b == x
	case int:
		return v.t == IntType && v.i == int64(x)
	case int64:
		return v.t == IntType && v.i == x
	case float64:
		return v.t == FloatType && v.f == x
	case string:
		return v.t == StringType && v.s == x
	case Value:
		return v.Equal(x)
	}
	return false
}

// Interface converts v to plain Go data: nil, bool, int64, float64,
// string, []any for list-shaped arrays, and map[string]any otherwise
// (int keys render in decimal).
func (v Value) Interface() any {
	switch v.t {
	case NullType:
		return nil
	case BoolType:
		return v.b
	case IntType:
		return v.i
	case FloatType:
		return v.f
	case StringType:
		return v.s
	case ArrayType:
		if v.IsList() {
			list := make([]any, len(v.a))
			for i := range list {
				list[i] = v.a[IntKey(int64(i))].Interface()
			}
			return list
		}
		m := make(map[string]any, len(v.a))
		for k, e := range v.a {
			m[k.String()] = e.Interface()
		}
		return m
	}
	return nil
}

// String renders the value as a php literal, arrays in short syntax
// with keys in Compare order.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.t {
	case NullType:
		b.WriteString("null")
	case BoolType:
		b.WriteString(strconv.FormatBool(v.b))
	case IntType:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case FloatType:
		b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case StringType:
		b.WriteString(quote(v.s))
	case ArrayType:
		b.WriteByte('[')
		for i, k := range v.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			if k.IsInt() {
				b.WriteString(k.String())
			} else {
				s, _ := k.AsString()
				b.WriteString(quote(s))
			}
			b.WriteString(" => ")
			v.a[k].write(b)
		}
		b.WriteByte(']')
	}
}

// quote renders s as a php double quoted string.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\', '$':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Quote renders s as a php double quoted string literal.
func Quote(s string) string {
	return quote(s)
}
