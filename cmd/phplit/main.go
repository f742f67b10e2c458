// Command phplit parses a php literal from a file or stdin and
// reprints it as json, yaml, or normalized php.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/phplit-format/phplit/encode"
	"github.com/phplit-format/phplit/ir"
	"github.com/phplit-format/phplit/parse"
	"github.com/phplit-format/phplit/render"
)

var CLI struct {
	Input  string `help:"Path to the input file. Reads stdin when omitted." arg:"" optional:"" type:"path"`
	To     string `help:"Output format." short:"t" default:"php" enum:"php,json,yaml"`
	Long   bool   `help:"Use array( ... ) syntax for php output." short:"l"`
	Pretty bool   `help:"Indent the output." short:"p"`
	Color  string `help:"Colorize php output." default:"auto" enum:"auto,always,never"`
}

func main() {
	kctx := kong.Must(&CLI,
		kong.Name("phplit"),
		kong.Description("Parse php literals and convert them to json, yaml, or normalized php."),
		kong.UsageOnError(),
	)
	if _, err := kctx.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	src, err := input()
	if err != nil {
		return err
	}
	val, err := parse.Parse(src)
	if err != nil {
		var perr *parse.Error
		if errors.As(err, &perr) {
			fmt.Fprint(os.Stderr, render.Render(perr.Err.Error(), perr.Span, src, renderOpts()...))
			os.Exit(1)
		}
		return err
	}
	out, err := format(val)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func input() ([]byte, error) {
	if CLI.Input == "" || CLI.Input == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(CLI.Input)
}

func format(val ir.Value) ([]byte, error) {
	switch CLI.To {
	case "json":
		if CLI.Pretty {
			out, err := json.MarshalIndent(val.Interface(), "", "  ")
			return append(out, '\n'), err
		}
		out, err := json.Marshal(val.Interface())
		return append(out, '\n'), err
	case "yaml":
		return yaml.Marshal(val.Interface())
	}
	opts := []encode.EncodeOption{
		encode.LongSyntax(CLI.Long),
		encode.Pretty(CLI.Pretty),
	}
	if colorOut() {
		opts = append(opts, encode.EncodeColors(encode.NewColors()))
	}
	return append(encode.Marshal(val, opts...), '\n'), nil
}

func colorOut() bool {
	switch CLI.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func renderOpts() []render.Option {
	switch CLI.Color {
	case "always":
		return []render.Option{render.WithColor(true)}
	case "never":
		return []render.Option{render.WithColor(false)}
	}
	return []render.Option{render.WithColor(isatty.IsTerminal(os.Stderr.Fd()))}
}
