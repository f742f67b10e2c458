package token

import (
	"fmt"
)

// Type classifies a lexical unit of a php literal.
type Type int

const (
	// TError marks a span no other token type matched. The tokenizer
	// never fails; bad input surfaces as TError tokens and the parser
	// decides what to do with them.
	TError Type = iota
	// TEOF marks the end of input. Next keeps returning it once reached.
	TEOF
	TArray
	TBool
	TNull
	TArrow
	TOpenParen
	TCloseParen
	TOpenBracket
	TCloseBracket
	TComma
	TSemi
	TString
	TFloat
	TInt
)

func (t Type) String() string {
	s, ok := map[Type]string{
		TError:        "Error",
		TEOF:          "EOF",
		TArray:        "Array",
		TBool:         "Bool",
		TNull:         "Null",
		TArrow:        "Arrow",
		TOpenParen:    "OpenParen",
		TCloseParen:   "CloseParen",
		TOpenBracket:  "OpenBracket",
		TCloseBracket: "CloseBracket",
		TComma:        "Comma",
		TSemi:         "Semi",
		TString:       "String",
		TFloat:        "Float",
		TInt:          "Int",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

// Span is a half-open byte range [Start, End) into the tokenized source.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Token is one classified lexical unit. It references the source it was
// cut from rather than copying it, so it is cheap to pass around by value.
type Token struct {
	Type Type
	Span Span
	src  []byte
}

// Bytes returns the raw source bytes covered by the token.
func (t Token) Bytes() []byte {
	return t.src[t.Span.Start:t.Span.End]
}

// Text returns the token text as a string.
func (t Token) Text() string {
	return string(t.Bytes())
}

func (t Token) String() string {
	if t.Type == TEOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Text())
}
