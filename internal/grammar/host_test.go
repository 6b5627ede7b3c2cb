package grammar_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

func TestHostname(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"test.example.com",
		"a.b.c.d.e.test.example.com",
		"john",
		"john.",
		"x-1.example.com.",
		"a1.b2",
	} {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			got, rest, err := grammar.Hostname(in)
			if err != nil {
				t.Fatalf("grammar.Hostname(%q) error = %v, want nil", in, err)
			}
			if got != in || rest != "" {
				t.Errorf("grammar.Hostname(%q) = (%q, %q), want (%q, \"\")", in, got, rest, in)
			}
		})
	}

	for _, in := range []string{"-foo", "foo-", "1abc", ".example.com", "example.1com."} {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			_, rest, err := grammar.Hostname(in)
			if err == nil {
				t.Fatalf("grammar.Hostname(%q) error = nil, want error", in)
			}
			if rest != in {
				t.Errorf("grammar.Hostname(%q) rest = %q, want input", in, rest)
			}
		})
	}
}

func TestHostname_Prefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, host, rest string
	}{
		{"example.com:5060", "example.com", ":5060"},
		{"example.com;lr", "example.com", ";lr"},
		{"host.1abc", "host.", "1abc"},
		{"example.com-", "example.", "com-"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			host, rest, err := grammar.Hostname(c.in)
			if err != nil {
				t.Fatalf("grammar.Hostname(%q) error = %v, want nil", c.in, err)
			}
			if host != c.host || rest != c.rest {
				t.Errorf("grammar.Hostname(%q) = (%q, %q), want (%q, %q)", c.in, host, rest, c.host, c.rest)
			}
		})
	}
}

func TestHostname_ErrorKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		kind grammar.Kind
	}{
		{"1abc", grammar.KindHostname},
		{"abc-", grammar.KindHostname},
		{"-abc.example.com", grammar.KindDomainLabel},
		{"@", grammar.KindSyntax},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			_, _, err := grammar.Hostname(c.in)
			if !errors.Is(err, c.kind) {
				t.Errorf("grammar.Hostname(%q) error = %v, want %v", c.in, err, c.kind)
			}
			if grammar.IsFatal(err) {
				t.Errorf("grammar.IsFatal(%v) = true, want false", err)
			}
		})
	}
}

func TestHostname_LongName(t *testing.T) {
	t.Parallel()

	in := strings.Repeat("a.", 1<<12) + "com"
	got, rest, err := grammar.Hostname(in + ":5060")
	if err != nil {
		t.Fatalf("grammar.Hostname() error = %v, want nil", err)
	}
	if got != in || rest != ":5060" {
		t.Errorf("grammar.Hostname() = (%d bytes, %q), want (%d bytes, %q)", len(got), rest, len(in), ":5060")
	}
}

func TestIPv4(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"192.0.2.1", "999.999.999.999", "0.0.0.0"} {
		got, rest, err := grammar.IPv4(in)
		if err != nil {
			t.Fatalf("grammar.IPv4(%q) error = %v, want nil", in, err)
		}
		if got != in || rest != "" {
			t.Errorf("grammar.IPv4(%q) = (%q, %q), want (%q, \"\")", in, got, rest, in)
		}
	}
	for _, in := range []string{"1111.1.1.1", "1.1.1", "a.b.c.d", ""} {
		_, rest, err := grammar.IPv4(in)
		if err == nil {
			t.Fatalf("grammar.IPv4(%q) error = nil, want error", in)
		}
		if rest != in {
			t.Errorf("grammar.IPv4(%q) rest = %q, want input", in, rest)
		}
	}
}

func TestIPv6(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want, rest string
	}{
		{"2001:db8::1", "2001:db8::1", ""},
		{"::1", "::1", ""},
		{"::", "::", ""},
		{"::ffff:192.0.2.1", "::ffff:192.0.2.1", ""},
		{"::192.0.2.1", "::192.0.2.1", ""},
		{"1:2:3:4:5:6:192.0.2.1", "1:2:3:4:5:6:192.0.2.1", ""},
		{"fe80::1]:5060", "fe80::1", "]:5060"},
		{"1:2:3:4:5:6:7:8]", "1:2:3:4:5:6:7:8", "]"},
		// "192" is a hex group as well, it is given back to the IPv4 address
		{"1:192.0.2.1]", "1:192.0.2.1", "]"},
		{"1:192.0]", "1:192", ".0]"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got, rest, err := grammar.IPv6(c.in)
			if err != nil {
				t.Fatalf("grammar.IPv6(%q) error = %v, want nil", c.in, err)
			}
			if got != c.want || rest != c.rest {
				t.Errorf("grammar.IPv6(%q) = (%q, %q), want (%q, %q)", c.in, got, rest, c.want, c.rest)
			}
		})
	}

	if _, _, err := grammar.IPv6("g::1"); err == nil {
		t.Error("grammar.IPv6(\"g::1\") error = nil, want error")
	}
}

func TestHost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want, rest string
	}{
		{"192.0.2.1:5060", "192.0.2.1", ":5060"},
		{"1.2.3.4.example.com", "1.2.3.4.example.com", ""},
		{"[2001:db8::1]:5060", "[2001:db8::1]", ":5060"},
		{"atlanta.example.com;transport=tcp", "atlanta.example.com", ";transport=tcp"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got, rest, err := grammar.Host(c.in)
			if err != nil {
				t.Fatalf("grammar.Host(%q) error = %v, want nil", c.in, err)
			}
			if got != c.want || rest != c.rest {
				t.Errorf("grammar.Host(%q) = (%q, %q), want (%q, %q)", c.in, got, rest, c.want, c.rest)
			}
		})
	}

	for in, want := range map[string]bool{
		"biloxi.example.com": true,
		"[::1":               false,
		"-bad":               false,
	} {
		if got := grammar.IsHost(in); got != want {
			t.Errorf("grammar.IsHost(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHostPort(t *testing.T) {
	t.Parallel()

	host, port, hasPort, rest, err := grammar.HostPort("client.atlanta.example.com:5060;branch=x")
	if err != nil {
		t.Fatalf("grammar.HostPort() error = %v, want nil", err)
	}
	if host != "client.atlanta.example.com" || port != 5060 || !hasPort || rest != ";branch=x" {
		t.Errorf("grammar.HostPort() = (%q, %d, %v, %q), want (%q, 5060, true, %q)",
			host, port, hasPort, rest, "client.atlanta.example.com", ";branch=x")
	}

	host, _, hasPort, rest, err = grammar.HostPort("example.com:abc")
	if err != nil {
		t.Fatalf("grammar.HostPort() error = %v, want nil", err)
	}
	if host != "example.com" || hasPort || rest != ":abc" {
		t.Errorf("grammar.HostPort() = (%q, %v, %q), want (%q, false, %q)", host, hasPort, rest, "example.com", ":abc")
	}

	in := "example.com:99999999999"
	_, _, _, rest, err = grammar.HostPort(in)
	if !errors.Is(err, grammar.KindInteger) || !grammar.IsFatal(err) {
		t.Errorf("grammar.HostPort(%q) error = %v, want fatal %v", in, err, grammar.KindInteger)
	}
	if rest != in {
		t.Errorf("grammar.HostPort(%q) rest = %q, want input", in, rest)
	}
}
