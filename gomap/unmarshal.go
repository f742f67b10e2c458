package gomap

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/phplit-format/phplit/ir"
)

// Unmarshaler lets a type take over its own decoding from the token
// walker.
type Unmarshaler interface {
	UnmarshalPHP(d *Decoder) error
}

// VariantUnmarshaler decodes enum-shaped literals: a bare string for a
// unit variant (payload is nil), or a one-entry array whose key names
// the variant and whose payload is left on the decoder.
type VariantUnmarshaler interface {
	UnmarshalVariant(name string, payload *Decoder) error
}

type unmarshalOpts struct {
	tagName string
}

// UnmarshalOption tweaks Unmarshal behavior.
type UnmarshalOption func(*unmarshalOpts)

// TagName selects the struct tag consulted for field names. The
// default is "php".
func TagName(name string) UnmarshalOption {
	return func(o *unmarshalOpts) { o.tagName = name }
}

// Unmarshal parses a php literal into p, which must be a non-nil
// pointer. The literal is decoded straight off the token stream into
// the target: no intermediate value tree is built unless the target
// is ir.Value or any. Leftover input after the literal (except one
// trailing semicolon) is an error.
func Unmarshal(data []byte, p any, opts ...UnmarshalOption) error {
	o := &unmarshalOpts{tagName: "php"}
	for _, f := range opts {
		f(o)
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w, got %T", ErrNotPointer, p)
	}
	d := NewDecoder(data)
	if err := o.decode(d, rv.Elem()); err != nil {
		return err
	}
	return d.End()
}

var (
	irValueType     = reflect.TypeOf(ir.Value{})
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	variantType     = reflect.TypeOf((*VariantUnmarshaler)(nil)).Elem()
)

func (o *unmarshalOpts) decode(d *Decoder, rv reflect.Value) error {
	if rv.CanAddr() {
		pv := rv.Addr()
		if pv.Type().Implements(unmarshalerType) {
			return pv.Interface().(Unmarshaler).UnmarshalPHP(d)
		}
		if pv.Type().Implements(variantType) {
			u := pv.Interface().(VariantUnmarshaler)
			return d.Variant(u.UnmarshalVariant)
		}
	}
	if rv.Type() == irValueType {
		v, err := d.Value()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		b, err := d.Bool()
		if err != nil {
			return err
		}
		rv.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := d.Int()
		if err != nil {
			return err
		}
		if rv.OverflowInt(n) {
			return fmt.Errorf("%w: %d does not fit %s", ErrRange, n, rv.Type())
		}
		rv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := d.Int()
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: %d into %s", ErrNegative, n, rv.Type())
		}
		if rv.OverflowUint(uint64(n)) {
			return fmt.Errorf("%w: %d does not fit %s", ErrRange, n, rv.Type())
		}
		rv.SetUint(uint64(n))
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := d.Float()
		if err != nil {
			return err
		}
		rv.SetFloat(f)
		return nil
	case reflect.String:
		s, err := d.Str()
		if err != nil {
			return err
		}
		rv.SetString(s)
		return nil
	case reflect.Pointer:
		if d.IsNull() {
			rv.SetZero()
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return o.decode(d, rv.Elem())
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("%w: non-empty interface %s", ErrUnsupported, rv.Type())
		}
		v, err := d.Value()
		if err != nil {
			return err
		}
		x := v.Interface()
		if x == nil {
			rv.SetZero()
			return nil
		}
		rv.Set(reflect.ValueOf(x))
		return nil
	case reflect.Slice:
		return o.decodeSlice(d, rv)
	case reflect.Array:
		return o.decodeArray(d, rv)
	case reflect.Map:
		return o.decodeMap(d, rv)
	case reflect.Struct:
		return o.decodeStruct(d, rv)
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, rv.Type())
}

func (o *unmarshalOpts) decodeSlice(d *Decoder, rv reflect.Value) error {
	out := reflect.MakeSlice(rv.Type(), 0, 4)
	err := d.Seq(func(d *Decoder) error {
		el := reflect.New(rv.Type().Elem()).Elem()
		if err := o.decode(d, el); err != nil {
			return err
		}
		out = reflect.Append(out, el)
		return nil
	})
	if err != nil {
		return err
	}
	rv.Set(out)
	return nil
}

// decodeArray fills a fixed-length Go array and insists on an exact
// element count, the tuple arity check of the typed path.
func (o *unmarshalOpts) decodeArray(d *Decoder, rv reflect.Value) error {
	i := 0
	err := d.Seq(func(d *Decoder) error {
		if i >= rv.Len() {
			return fmt.Errorf("%w: more than %d elements into %s", ErrArity, rv.Len(), rv.Type())
		}
		if err := o.decode(d, rv.Index(i)); err != nil {
			return err
		}
		i++
		return nil
	})
	if err != nil {
		return err
	}
	if i != rv.Len() {
		return fmt.Errorf("%w: got %d elements, %s wants %d", ErrArity, i, rv.Type(), rv.Len())
	}
	return nil
}

func (o *unmarshalOpts) decodeMap(d *Decoder, rv reflect.Value) error {
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(rv.Type()))
	}
	keyType := rv.Type().Key()
	return d.Map(func(key ir.Key, d *Decoder) error {
		kv := reflect.New(keyType).Elem()
		if err := assignKey(kv, key); err != nil {
			return err
		}
		el := reflect.New(rv.Type().Elem()).Elem()
		if err := o.decode(d, el); err != nil {
			return err
		}
		rv.SetMapIndex(kv, el)
		return nil
	})
}

// assignKey converts a php array key to the map's key type: strings
// take the decimal form of int keys, int targets parse string keys
// that spell integers.
func assignKey(kv reflect.Value, key ir.Key) error {
	switch kv.Kind() {
	case reflect.String:
		kv.SetString(key.String())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := key.AsInt()
		if !ok {
			parsed, err := strconv.ParseInt(key.String(), 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %q into %s", ErrBadKey, key.String(), kv.Type())
			}
			n = parsed
		}
		if kv.OverflowInt(n) {
			return fmt.Errorf("%w: %d does not fit %s", ErrRange, n, kv.Type())
		}
		kv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := key.AsInt()
		if !ok {
			parsed, err := strconv.ParseUint(key.String(), 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %q into %s", ErrBadKey, key.String(), kv.Type())
			}
			kv.SetUint(parsed)
			return nil
		}
		if n < 0 {
			return fmt.Errorf("%w: %d into %s", ErrNegative, n, kv.Type())
		}
		if kv.OverflowUint(uint64(n)) {
			return fmt.Errorf("%w: %d does not fit %s", ErrRange, n, kv.Type())
		}
		kv.SetUint(uint64(n))
		return nil
	}
	return fmt.Errorf("%w: unsupported map key type %s", ErrBadKey, kv.Type())
}

func (o *unmarshalOpts) decodeStruct(d *Decoder, rv reflect.Value) error {
	fields := structFields(rv.Type(), o.tagName)
	seen := make(map[string]bool, len(fields))
	err := d.Map(func(key ir.Key, d *Decoder) error {
		name := key.String()
		idx, ok := fields[name]
		if !ok {
			return d.Skip()
		}
		seen[name] = true
		return o.decode(d, rv.Field(idx))
	})
	if err != nil {
		return err
	}
	for name, idx := range fields {
		if seen[name] {
			continue
		}
		f := rv.Type().Field(idx)
		// pointer fields are optional, everything else must appear
		if f.Type.Kind() == reflect.Pointer {
			continue
		}
		return fmt.Errorf("%w: %q in %s", ErrMissingField, name, rv.Type())
	}
	return nil
}

// structFields maps literal key names to exported field indices,
// honoring the configured tag with json-style `name,...` values and
// "-" for skipped fields.
func structFields(t reflect.Type, tagName string) map[string]int {
	fields := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup(tagName); ok {
			val, _, _ := strings.Cut(tag, ",")
			if val == "-" {
				continue
			}
			if val != "" {
				name = val
			}
		}
		fields[name] = i
	}
	return fields
}
