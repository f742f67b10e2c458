package encode

type EncodeOption func(*EncState)

// LongSyntax switches output to the array( ... ) form.
func LongSyntax(v bool) EncodeOption {
	return func(es *EncState) { es.long = v }
}

// Pretty writes one entry per line with indentation and a trailing
// comma before each closing delimiter.
func Pretty(v bool) EncodeOption {
	return func(es *EncState) { es.pretty = v }
}

// Indent sets the spaces per nesting level used by Pretty.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// ListKeys writes explicit integer keys even for list-shaped arrays.
func ListKeys(v bool) EncodeOption {
	return func(es *EncState) { es.listKeys = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
