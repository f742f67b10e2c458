package render

import (
	"errors"
	"testing"

	"github.com/phplit-format/phplit/parse"
	"github.com/phplit-format/phplit/token"
)

func TestRenderSingleLine(t *testing.T) {
	src := []byte("12 garbage")
	got := Render("unexpected trailing characters", token.Span{Start: 3, End: 10}, src, WithColor(false))
	want := "error: unexpected trailing characters\n" +
		" --> 1:4\n" +
		"  | \n" +
		"1 | 12 garbage\n" +
		"  |    ^^^^^^^\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderPointsAtParseError(t *testing.T) {
	src := []byte("[\"a\" => 1,\n broken => 2,\n]")
	_, err := parse.Parse(src)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var perr *parse.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected a spanned error, got %v", err)
	}
	got := Render(perr.Err.Error(), perr.Span, src, WithColor(false))
	if got == "" {
		t.Fatal("empty rendering")
	}
	// the caret line must sit under the second source line
	if want := "2 |  broken => 2,"; !contains(got, want) {
		t.Errorf("missing line gutter %q in:\n%s", want, got)
	}
}

func TestRenderSpanPastEOF(t *testing.T) {
	src := []byte("[1,")
	got := Render("unexpected end of input", token.Span{Start: 3, End: 3}, src, WithColor(false))
	if got == "" {
		t.Fatal("empty rendering")
	}
	if !contains(got, "1:4") {
		t.Errorf("expected position 1:4 in:\n%s", got)
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
