// Package render formats parse errors against their source text,
// pointing a caret line at the offending span.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/phplit-format/phplit/token"
)

type state struct {
	gutter  func(string, ...any) string
	carets  func(string, ...any) string
	heading func(string, ...any) string
}

type Option func(*state)

// WithColor turns ANSI color on or off. The default follows the
// fatih/color global, so piped output stays plain.
func WithColor(v bool) Option {
	return func(s *state) {
		if v {
			s.gutter = color.New(color.FgBlue, color.Bold).SprintfFunc()
			s.carets = color.New(color.FgRed, color.Bold).SprintfFunc()
			s.heading = color.New(color.FgRed, color.Bold).SprintfFunc()
		} else {
			s.gutter = plain
			s.carets = plain
			s.heading = plain
		}
	}
}

func plain(f string, args ...any) string { return fmt.Sprintf(f, args...) }

// Render lays out msg over the source lines covered by span:
//
//	error: unexpected token, found `garbage`
//	  --> 1:4
//	   |
//	 1 | 12 garbage
//	   |    ^^^^^^^
func Render(msg string, span token.Span, source []byte, opts ...Option) string {
	s := &state{
		gutter:  color.New(color.FgBlue, color.Bold).SprintfFunc(),
		carets:  color.New(color.FgRed, color.Bold).SprintfFunc(),
		heading: color.New(color.FgRed, color.Bold).SprintfFunc(),
	}
	for _, opt := range opts {
		opt(s)
	}

	start, end := clamp(span, len(source))
	lines := splitLines(source)
	firstLine, firstCol := locate(lines, start)
	lastLine, _ := locate(lines, end)

	width := len(strconv.Itoa(lastLine + 1))
	pad := strings.Repeat(" ", width)

	var b strings.Builder
	b.WriteString(s.heading("error: %s", msg))
	b.WriteByte('\n')
	b.WriteString(s.gutter("%s--> ", pad))
	fmt.Fprintf(&b, "%d:%d\n", firstLine+1, firstCol+1)
	b.WriteString(s.gutter("%s | ", pad))
	b.WriteByte('\n')
	for n := firstLine; n <= lastLine && n < len(lines); n++ {
		ln := lines[n]
		text := strings.TrimRight(string(source[ln.start:ln.end]), "\n")
		b.WriteString(s.gutter("%*d | ", width, n+1))
		b.WriteString(text)
		b.WriteByte('\n')

		from := max(start, ln.start) - ln.start
		to := min(end, ln.end) - ln.start
		if to > len(text) {
			to = len(text)
		}
		if to <= from {
			to = from + 1
		}
		b.WriteString(s.gutter("%s | ", pad))
		b.WriteString(strings.Repeat(" ", from))
		b.WriteString(s.carets("%s", strings.Repeat("^", to-from)))
		b.WriteByte('\n')
	}
	return b.String()
}

type lineSpan struct {
	start, end int
}

func splitLines(src []byte) []lineSpan {
	lines := []lineSpan{}
	start := 0
	for i, c := range src {
		if c == '\n' {
			lines = append(lines, lineSpan{start, i + 1})
			start = i + 1
		}
	}
	lines = append(lines, lineSpan{start, len(src)})
	return lines
}

// locate maps a byte offset to its zero based line and column.
func locate(lines []lineSpan, off int) (line, col int) {
	for n, ln := range lines {
		if off < ln.end || n == len(lines)-1 {
			return n, off - ln.start
		}
	}
	return 0, 0
}

func clamp(span token.Span, n int) (start, end int) {
	start, end = span.Start, span.End
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}
