package header_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipparser/header"
	"github.com/ghettovoice/sipparser/internal/errorutil"
	"github.com/ghettovoice/sipparser/internal/grammar"
)

type sessionExpires struct {
	Name    string
	Seconds string
}

func (*sessionExpires) CanonicName() header.Name { return "Session-Expires" }
func (*sessionExpires) CompactName() header.Name { return "x" }
func (h *sessionExpires) RenderValue() string    { return h.Seconds }
func (h *sessionExpires) String() string         { return "Session-Expires: " + h.RenderValue() }

func parseSessionExpires(name, value string) (header.Header, error) {
	if value == "" || strings.Trim(value, "0123456789") != "" {
		return nil, errorutil.Error("bad delta-seconds")
	}
	return &sessionExpires{Name: name, Seconds: value}, nil
}

func TestScanWith(t *testing.T) {
	t.Parallel()

	parsers := map[string]header.Parser{
		"Session-Expires": parseSessionExpires,
		"subject": func(name, value string) (header.Header, error) {
			return &header.Extension{Name: name, Value: strings.ToUpper(value)}, nil
		},
		"X-Nil": nil,
	}

	cases := []struct {
		name string
		in   string
		want header.Header
		rest string
	}{
		{
			"custom name",
			"Session-Expires: 1800\r\n\r\n",
			&sessionExpires{Name: "Session-Expires", Seconds: "1800"},
			"\r\n",
		},
		{
			"case-insensitive key",
			"session-expires: 90\r\n",
			&sessionExpires{Name: "session-expires", Seconds: "90"},
			"",
		},
		{
			"overrides built-in parser",
			"Subject: hi there\r\n\r\n",
			&header.Extension{Name: "Subject", Value: "HI THERE"},
			"\r\n",
		},
		{
			"compact name is not expanded",
			"s: hi there\r\n",
			header.Subject("hi there"),
			"",
		},
		{
			"nil parser is skipped",
			"X-Nil: value\r\n",
			&header.Extension{Name: "X-Nil", Value: "value"},
			"",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			hdr, rest, err := header.ScanWith(c.in, parsers)
			if err != nil {
				t.Fatalf("header.ScanWith(%q) error = %v, want nil", c.in, err)
			}
			if diff := cmp.Diff(hdr, c.want); diff != "" {
				t.Errorf("header.ScanWith(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, hdr, c.want, diff)
			}
			if rest != c.rest {
				t.Errorf("header.ScanWith(%q) rest = %q, want %q", c.in, rest, c.rest)
			}
		})
	}
}

func TestScanWith_ParserError(t *testing.T) {
	t.Parallel()

	parsers := map[string]header.Parser{"Session-Expires": parseSessionExpires}

	in := "Session-Expires: soon\r\n"
	_, rest, err := header.ScanWith(in, parsers)
	if err == nil {
		t.Fatalf("header.ScanWith(%q) error = nil, want error", in)
	}
	if !grammar.IsFatal(err) {
		t.Errorf("grammar.IsFatal(%v) = false, want true", err)
	}
	if !errors.Is(err, errorutil.Error("bad delta-seconds")) {
		t.Errorf("header.ScanWith(%q) error = %v, want the parser error in the chain", in, err)
	}
	if rest != in {
		t.Errorf("header.ScanWith(%q) rest = %q, want input", in, rest)
	}
}

func TestScan_NoCustomParsers(t *testing.T) {
	t.Parallel()

	// parsers of one call never leak into another
	if _, _, err := header.ScanWith("Session-Expires: 1800\r\n", map[string]header.Parser{
		"Session-Expires": parseSessionExpires,
	}); err != nil {
		t.Fatalf("header.ScanWith() error = %v, want nil", err)
	}

	hdr, _, err := header.Scan("Session-Expires: 1800\r\n")
	if err != nil {
		t.Fatalf("header.Scan() error = %v, want nil", err)
	}
	if want := (&header.Extension{Name: "Session-Expires", Value: "1800"}); !want.Equal(hdr) {
		t.Errorf("header.Scan() = %v, want %v", hdr, want)
	}
}
