// Package encode renders ir values back into php literal source.
package encode

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/phplit-format/phplit/ir"
)

type EncState struct {
	depth, indent int
	long          bool
	pretty        bool
	listKeys      bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes v to w as a php literal. The default output is the
// short bracket syntax on one line, list elements without keys, keys
// in ir.Key Compare order.
func Encode(v ir.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 4,
	}
	for _, opt := range opts {
		opt(es)
	}
	return encode(v, w, es)
}

// Marshal is Encode into a byte slice.
func Marshal(v ir.Value, opts ...EncodeOption) []byte {
	buf := bytes.NewBuffer(nil)
	if err := Encode(v, buf, opts...); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func MustString(v ir.Value, opts ...EncodeOption) string {
	return strings.TrimSpace(string(Marshal(v, opts...)))
}

func encode(v ir.Value, w io.Writer, es *EncState) error {
	if !v.IsArray() {
		return writeString(w, es.colored(v.Type(), ValueColor, scalar(v)))
	}
	open, close := "[", "]"
	if es.long {
		open, close = "array(", ")"
	}
	if err := writeString(w, es.colored(ir.ArrayType, SepColor, open)); err != nil {
		return err
	}
	keys := v.Keys()
	if len(keys) == 0 {
		return writeString(w, es.colored(ir.ArrayType, SepColor, close))
	}
	bare := v.IsList() && !es.listKeys
	es.depth++
	for i, k := range keys {
		if err := es.entrySep(w, i == 0); err != nil {
			return err
		}
		if !bare {
			if err := writeString(w, es.colored(v.Type(), FieldColor, key(k))); err != nil {
				return err
			}
			if err := writeString(w, es.colored(ir.ArrayType, SepColor, " => ")); err != nil {
				return err
			}
		}
		if err := encode(v.Index(k), w, es); err != nil {
			return err
		}
	}
	es.depth--
	if es.pretty {
		if err := writeString(w, es.colored(ir.ArrayType, SepColor, ",")); err != nil {
			return err
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	return writeString(w, es.colored(ir.ArrayType, SepColor, close))
}

func (es *EncState) entrySep(w io.Writer, first bool) error {
	if !first {
		if err := writeString(w, es.colored(ir.ArrayType, SepColor, ",")); err != nil {
			return err
		}
		if !es.pretty {
			return writeString(w, " ")
		}
	}
	if es.pretty {
		return writeNL(w, es)
	}
	return nil
}

func scalar(v ir.Value) string {
	switch v.Type() {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case ir.IntType:
		n, _ := v.AsInt()
		return strconv.FormatInt(n, 10)
	case ir.FloatType:
		f, _ := v.AsFloat()
		s := strconv.FormatFloat(f, 'g', -1, 64)
		// keep a float shape so the literal round-trips as a float
		if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && s != "NaN" {
			s += ".0"
		}
		return s
	case ir.StringType:
		s, _ := v.AsString()
		return ir.Quote(s)
	}
	return "null"
}

func key(k ir.Key) string {
	if n, ok := k.AsInt(); ok {
		return strconv.FormatInt(n, 10)
	}
	s, _ := k.AsString()
	return ir.Quote(s)
}

func (es *EncState) colored(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func writeNL(w io.Writer, es *EncState) error {
	pad := strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
	return writeString(w, "\n"+pad)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
