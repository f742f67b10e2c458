// Package token provides tokenization support for php literal source.
//
// [Tokenizer] turns source bytes into a lazily pulled sequence of spanned
// tokens. Comments and whitespace never surface as tokens.
//
// The package also holds the literal decoders: [ParseInt], [ParseFloat],
// [ParseBool] and [Unquote] turn token text into Go values following php
// semantics.
package token
