package ir

import "fmt"

// Type discriminates the variants of a Value.
type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	FloatType
	StringType
	ArrayType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:   "Null",
		BoolType:   "Bool",
		IntType:    "Int",
		FloatType:  "Float",
		StringType: "String",
		ArrayType:  "Array",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":   NullType,
		"Bool":   BoolType,
		"Int":    IntType,
		"Float":  FloatType,
		"String": StringType,
		"Array":  ArrayType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func (t Type) IsLeaf() bool {
	return t != ArrayType
}
