package grammar_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

func TestTTL(t *testing.T) {
	t.Parallel()

	for _, c := range []struct {
		in   string
		want int32
	}{
		{"0", 0},
		{"1", 1},
		{"255", 255},
	} {
		n, rest, err := grammar.TTL(c.in)
		if err != nil {
			t.Fatalf("grammar.TTL(%q) error = %v, want nil", c.in, err)
		}
		if n != c.want || rest != "" {
			t.Errorf("grammar.TTL(%q) = (%d, %q), want (%d, \"\")", c.in, n, rest, c.want)
		}
	}

	_, rest, err := grammar.TTL("256")
	if !errors.Is(err, grammar.KindTTL) || !grammar.IsFatal(err) {
		t.Fatalf("grammar.TTL(\"256\") error = %v, want fatal %v", err, grammar.KindTTL)
	}
	if rest != "256" {
		t.Errorf("grammar.TTL(\"256\") rest = %q, want input", rest)
	}
	if !strings.Contains(err.Error(), "TTL is out of range 0-255") {
		t.Errorf("grammar.TTL(\"256\") error = %q, want range message", err)
	}
}

func TestQValue(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"0", "0.", "0.5", "0.123", "1", "1.0", "1.000"} {
		q, rest, err := grammar.QValue(in + ";x")
		if err != nil {
			t.Fatalf("grammar.QValue(%q) error = %v, want nil", in, err)
		}
		if q != in || rest != ";x" {
			t.Errorf("grammar.QValue(%q) = (%q, %q), want (%q, %q)", in+";x", q, rest, in, ";x")
		}
	}
	for _, in := range []string{"2", "1.5", "0.1234", "10", ".5"} {
		_, rest, err := grammar.QValue(in)
		if err == nil {
			t.Fatalf("grammar.QValue(%q) error = nil, want error", in)
		}
		if rest != in {
			t.Errorf("grammar.QValue(%q) rest = %q, want input", in, rest)
		}
	}
}

func TestGenericParam(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, name, value, rest string
	}{
		{"transport=tcp;lr", "transport", "tcp", ";lr"},
		{"lr>", "lr", "", ">"},
		{"maddr = 239.255.255.1", "maddr", "239.255.255.1", ""},
		{`received="a b"`, "received", `"a b"`, ""},
		{"addr=[2001:db8::1];x", "addr", "[2001:db8::1]", ";x"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			name, value, rest, err := grammar.GenericParam(c.in)
			if err != nil {
				t.Fatalf("grammar.GenericParam(%q) error = %v, want nil", c.in, err)
			}
			got := []string{name, value, rest}
			want := []string{c.name, c.value, c.rest}
			if diff := cmp.Diff(got, want); diff != "" {
				t.Errorf("grammar.GenericParam(%q) = %q, want %q\ndiff (-got +want):\n%v", c.in, got, want, diff)
			}
		})
	}

	in := `x="open`
	_, _, rest, err := grammar.GenericParam(in)
	if err == nil {
		t.Fatalf("grammar.GenericParam(%q) error = nil, want error", in)
	}
	if rest != in {
		t.Errorf("grammar.GenericParam(%q) rest = %q, want input", in, rest)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in           string
		major, minor int32
		rest         string
	}{
		{"SIP/2.0\r\n", 2, 0, "\r\n"},
		{"sip/3.1", 3, 1, ""},
	}
	for _, c := range cases {
		major, minor, rest, err := grammar.Version(c.in)
		if err != nil {
			t.Fatalf("grammar.Version(%q) error = %v, want nil", c.in, err)
		}
		if major != c.major || minor != c.minor || rest != c.rest {
			t.Errorf("grammar.Version(%q) = (%d, %d, %q), want (%d, %d, %q)",
				c.in, major, minor, rest, c.major, c.minor, c.rest)
		}
	}

	for _, in := range []string{"HTTP/1.1", "SIP/2", "SIP/.0"} {
		_, _, rest, err := grammar.Version(in)
		if err == nil {
			t.Fatalf("grammar.Version(%q) error = nil, want error", in)
		}
		if rest != in {
			t.Errorf("grammar.Version(%q) rest = %q, want input", in, rest)
		}
	}
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	code, rest, err := grammar.StatusCode("180 Ringing")
	if err != nil {
		t.Fatalf("grammar.StatusCode() error = %v, want nil", err)
	}
	if code != 180 || rest != " Ringing" {
		t.Errorf("grammar.StatusCode() = (%d, %q), want (180, %q)", code, rest, " Ringing")
	}

	for _, in := range []string{"18", "1800", "abc"} {
		if _, _, err := grammar.StatusCode(in); err == nil {
			t.Errorf("grammar.StatusCode(%q) error = nil, want error", in)
		}
	}
}

func TestReasonPhrase(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want, rest string
	}{
		{"Session Progress%21\r\n", "Session Progress%21", "\r\n"},
		{"\r\n", "", "\r\n"},
		{"Привет\r\n", "Привет", "\r\n"},
	}
	for _, c := range cases {
		r, rest, err := grammar.ReasonPhrase(c.in)
		if err != nil {
			t.Fatalf("grammar.ReasonPhrase(%q) error = %v, want nil", c.in, err)
		}
		if r != c.want || rest != c.rest {
			t.Errorf("grammar.ReasonPhrase(%q) = (%q, %q), want (%q, %q)", c.in, r, rest, c.want, c.rest)
		}
	}

	if _, _, err := grammar.ReasonPhrase("Bad %zz"); err == nil {
		t.Error("grammar.ReasonPhrase(\"Bad %zz\") error = nil, want error")
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	vals, rest, err := grammar.List("list", "a , b,c rest", grammar.Token)
	if err != nil {
		t.Fatalf("grammar.List() error = %v, want nil", err)
	}
	if diff := cmp.Diff(vals, []string{"a", "b", "c"}); diff != "" {
		t.Errorf("grammar.List() = %q, want [a b c]\ndiff (-got +want):\n%v", vals, diff)
	}
	if rest != " rest" {
		t.Errorf("grammar.List() rest = %q, want %q", rest, " rest")
	}

	_, rest, err = grammar.List("list", "a, ;", grammar.Token)
	if err == nil {
		t.Fatal("grammar.List(\"a, ;\") error = nil, want error")
	}
	if rest != "a, ;" {
		t.Errorf("grammar.List(\"a, ;\") rest = %q, want input", rest)
	}

	if _, _, err = grammar.List("list", "", grammar.Token); err == nil {
		t.Error("grammar.List(\"\") error = nil, want error")
	}
}

func TestOptList(t *testing.T) {
	t.Parallel()

	vals, rest, err := grammar.OptList("Accept", "\r\n", grammar.Token)
	if err != nil {
		t.Fatalf("grammar.OptList() error = %v, want nil", err)
	}
	if vals == nil || len(vals) != 0 {
		t.Errorf("grammar.OptList() = %#v, want empty non-nil slice", vals)
	}
	if rest != "\r\n" {
		t.Errorf("grammar.OptList() rest = %q, want input", rest)
	}

	vals, _, err = grammar.OptList("Accept", "a,b", grammar.Token)
	if err != nil {
		t.Fatalf("grammar.OptList() error = %v, want nil", err)
	}
	if diff := cmp.Diff(vals, []string{"a", "b"}); diff != "" {
		t.Errorf("grammar.OptList() = %q, want [a b]\ndiff (-got +want):\n%v", vals, diff)
	}

	// a list that started and broke is not empty
	_, rest, err = grammar.OptList("Accept", "a, ;", grammar.Token)
	if err == nil {
		t.Fatal("grammar.OptList(\"a, ;\") error = nil, want error")
	}
	if rest != "a, ;" {
		t.Errorf("grammar.OptList(\"a, ;\") rest = %q, want input", rest)
	}

	// fatal failures of the first element are kept
	ttl := func(s string) (int32, string, error) { return grammar.TTL(s) }
	if _, _, err = grammar.OptList("ttls", "300", ttl); !errors.Is(err, grammar.KindTTL) {
		t.Errorf("grammar.OptList(\"300\") error = %v, want %v", err, grammar.KindTTL)
	}
}

func TestTelephoneSubscriber(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"+1-201-555-0123":                      true,
		"+1-201-555-0123;isub=1234;postd=pp22": true,
		"+1-201-555-0123;tsp=gw.example.com":   true,
		"+358-555-1234567;ext=22":              true,
		`+358-555-1234567;ext="a \" b"`:        true,
		"+358-555-1234567;ext=22?x":            true,
		"7042;phone-context=+1-201":            true,
		"5550123;phone-context=example.com":    true,
		"":                                     false,
		"alice":                                false,
		"5550123":                              false,
		"+":                                    false,
		"+abc":                                 false,
	} {
		if got := grammar.IsTelephoneSubscriber(in); got != want {
			t.Errorf("grammar.IsTelephoneSubscriber(%q) = %v, want %v", in, got, want)
		}
	}

	num, rest, err := grammar.TelephoneSubscriber("+1-201-555-0123@gw.example.com")
	if err != nil {
		t.Fatalf("grammar.TelephoneSubscriber() error = %v, want nil", err)
	}
	if num != "+1-201-555-0123" || rest != "@gw.example.com" {
		t.Errorf("grammar.TelephoneSubscriber() = (%q, %q), want (%q, %q)", num, rest, "+1-201-555-0123", "@gw.example.com")
	}
}
