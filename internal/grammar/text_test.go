package grammar_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

func TestLWS(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, ws, rest string
		wantErr      bool
	}{
		{in: " foo", ws: " ", rest: "foo"},
		{in: "  \r\n\tfoo", ws: "  \r\n\t", rest: "foo"},
		{in: "\r\n bar", ws: "\r\n ", rest: "bar"},
		{in: "\r\nfoo", rest: "\r\nfoo", wantErr: true},
		{in: "\nfoo", rest: "\nfoo", wantErr: true},
		{in: "foo", rest: "foo", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			ws, rest, err := grammar.LWS(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("grammar.LWS(%q) error = %v, want error %v", c.in, err, c.wantErr)
			}
			if ws != c.ws || rest != c.rest {
				t.Errorf("grammar.LWS(%q) = (%q, %q), want (%q, %q)", c.in, ws, rest, c.ws, c.rest)
			}
		})
	}

	if got := grammar.SWS(" \r\n x"); got != "x" {
		t.Errorf("grammar.SWS() = %q, want %q", got, "x")
	}
	if got := grammar.SWS("\r\nx"); got != "\r\nx" {
		t.Errorf("grammar.SWS() = %q, want %q", got, "\r\nx")
	}
}

func TestLWS_LongRun(t *testing.T) {
	t.Parallel()

	in := strings.Repeat(" \t", 1<<15) + "x"
	ws, rest, err := grammar.LWS(in)
	if err != nil {
		t.Fatalf("grammar.LWS() error = %v, want nil", err)
	}
	if len(ws) != len(in)-1 || rest != "x" {
		t.Errorf("grammar.LWS() = (%d bytes, %q), want (%d bytes, %q)", len(ws), rest, len(in)-1, "x")
	}
}

func TestHColon(t *testing.T) {
	t.Parallel()

	rest, err := grammar.HColon("\t: \r\n value")
	if err != nil {
		t.Fatalf("grammar.HColon() error = %v, want nil", err)
	}
	if rest != "value" {
		t.Errorf("grammar.HColon() rest = %q, want %q", rest, "value")
	}

	in := "\r\n: value"
	rest, err = grammar.HColon(in)
	if err == nil {
		t.Fatalf("grammar.HColon(%q) error = nil, want error", in)
	}
	if rest != in {
		t.Errorf("grammar.HColon(%q) rest = %q, want input", in, rest)
	}
}

func TestInt32(t *testing.T) {
	t.Parallel()

	n, rest, err := grammar.Int32("port", "2147483647;x")
	if err != nil {
		t.Fatalf("grammar.Int32() error = %v, want nil", err)
	}
	if n != 2147483647 || rest != ";x" {
		t.Errorf("grammar.Int32() = (%d, %q), want (2147483647, %q)", n, rest, ";x")
	}

	_, rest, err = grammar.Int32("port", "2147483648")
	if !errors.Is(err, grammar.KindInteger) || !grammar.IsFatal(err) {
		t.Errorf("grammar.Int32() error = %v, want fatal %v", err, grammar.KindInteger)
	}
	if rest != "2147483648" {
		t.Errorf("grammar.Int32() rest = %q, want input", rest)
	}

	_, _, err = grammar.Int32("port", "x")
	if !errors.Is(err, grammar.KindSyntax) || grammar.IsFatal(err) {
		t.Errorf("grammar.Int32() error = %v, want recoverable %v", err, grammar.KindSyntax)
	}
}

func TestQuotedString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, in, want, rest, unquoted string
	}{
		{"escaped quotes", ` "a \"b\" c" ;tag`, `"a \"b\" c"`, " ;tag", `a "b" c`},
		{"folded", "\"line\r\n folded\"", "\"line\r\n folded\"", "", "line\r\n folded"},
		{"utf8", "\"\xd0\x9f\xd1\x80\xd0\xb8\xd0\xb2\xd0\xb5\xd1\x82\"", "\"Привет\"", "", "Привет"},
		{"empty", `"";x`, `""`, ";x", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			qs, rest, err := grammar.QuotedString(c.in)
			if err != nil {
				t.Fatalf("grammar.QuotedString(%q) error = %v, want nil", c.in, err)
			}
			if qs != c.want || rest != c.rest {
				t.Errorf("grammar.QuotedString(%q) = (%q, %q), want (%q, %q)", c.in, qs, rest, c.want, c.rest)
			}
			if got := grammar.Unquote(qs); got != c.unquoted {
				t.Errorf("grammar.Unquote(%q) = %q, want %q", qs, got, c.unquoted)
			}
		})
	}

	in := `"unterminated`
	_, rest, err := grammar.QuotedString(in)
	if !errors.Is(err, grammar.KindSyntax) {
		t.Errorf("grammar.QuotedString(%q) error = %v, want %v", in, err, grammar.KindSyntax)
	}
	if rest != in {
		t.Errorf("grammar.QuotedString(%q) rest = %q, want input", in, rest)
	}

	// byte ranges match UTF8-NONASCII but the sequence does not decode
	_, _, err = grammar.QuotedString("\"\xf8\x80\x80\x80\x80\"")
	if !errors.Is(err, grammar.KindEncoding) || !grammar.IsFatal(err) {
		t.Errorf("grammar.QuotedString() error = %v, want fatal %v", err, grammar.KindEncoding)
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "John Doe", `say "hi"`, `back\slash`} {
		q := grammar.Quote(s)
		if !grammar.IsQuoted(q) {
			t.Errorf("grammar.IsQuoted(%q) = false, want true", q)
		}
		if got := grammar.Unquote(q); got != s {
			t.Errorf("grammar.Unquote(%q) = %q, want %q", q, got, s)
		}
	}
	if grammar.IsQuoted("John") {
		t.Error("grammar.IsQuoted(\"John\") = true, want false")
	}
	if got := grammar.Unquote("John"); got != "John" {
		t.Errorf("grammar.Unquote(\"John\") = %q, want %q", got, "John")
	}
}

func TestComment(t *testing.T) {
	t.Parallel()

	cmt, rest, err := grammar.Comment(`(Beta (build 7) \) x) rest`)
	if err != nil {
		t.Fatalf("grammar.Comment() error = %v, want nil", err)
	}
	if want := `(Beta (build 7) \) x)`; cmt != want || rest != "rest" {
		t.Errorf("grammar.Comment() = (%q, %q), want (%q, %q)", cmt, rest, want, "rest")
	}

	deep := strings.Repeat("(", grammar.MaxCommentDepth) + strings.Repeat(")", grammar.MaxCommentDepth)
	cmt, _, err = grammar.Comment(deep)
	if err != nil {
		t.Fatalf("grammar.Comment() error = %v, want nil", err)
	}
	if cmt != deep {
		t.Errorf("grammar.Comment() = %q, want %q", cmt, deep)
	}

	tooDeep := "(" + deep + ")"
	_, rest, err = grammar.Comment(tooDeep)
	if !errors.Is(err, grammar.KindSyntax) || !grammar.IsFatal(err) {
		t.Errorf("grammar.Comment() error = %v, want fatal %v", err, grammar.KindSyntax)
	}
	if rest != tooDeep {
		t.Errorf("grammar.Comment() rest = %q, want input", rest)
	}

	_, _, err = grammar.Comment("(open")
	if err == nil || grammar.IsFatal(err) {
		t.Errorf("grammar.Comment(\"(open\") error = %v, want recoverable error", err)
	}
}

func TestTrimmedText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, text, rest string
	}{
		{"Call me  maybe \r\n", "Call me  maybe", " \r\n"},
		{"first\r\n second\r\n", "first\r\n second", "\r\n"},
	}
	for _, c := range cases {
		text, rest, err := grammar.TrimmedText(c.in)
		if err != nil {
			t.Fatalf("grammar.TrimmedText(%q) error = %v, want nil", c.in, err)
		}
		if text != c.text || rest != c.rest {
			t.Errorf("grammar.TrimmedText(%q) = (%q, %q), want (%q, %q)", c.in, text, rest, c.text, c.rest)
		}
	}

	if _, _, err := grammar.TrimmedText(" lead"); err == nil {
		t.Error("grammar.TrimmedText(\" lead\") error = nil, want error")
	}
}

func TestExtensionText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, text, rest string
	}{
		{"a, b ;c=d  \r\nNext: 1", "a, b ;c=d", "  \r\nNext: 1"},
		{"\r\n", "", "\r\n"},
	}
	for _, c := range cases {
		text, rest, err := grammar.ExtensionText(c.in)
		if err != nil {
			t.Fatalf("grammar.ExtensionText(%q) error = %v, want nil", c.in, err)
		}
		if text != c.text || rest != c.rest {
			t.Errorf("grammar.ExtensionText(%q) = (%q, %q), want (%q, %q)", c.in, text, rest, c.text, c.rest)
		}
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"alice%20smith", "alice smith"},
		{"a%3bb", "a;b"},
		{"100%", "100%"},
		{"%zz", "%zz"},
	}
	for _, c := range cases {
		if got := grammar.Unescape(c.in); got != c.want {
			t.Errorf("grammar.Unescape(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
