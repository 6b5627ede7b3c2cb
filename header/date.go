package header

import (
	"strings"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

// Date represents the Date header field.
// The value is kept as text, use [Date.Time] to get the time.
type Date string

func (Date) CanonicName() Name { return "Date" }

func (Date) CompactName() Name { return "Date" }

func (hdr Date) RenderValue() string { return string(hdr) }

func (hdr Date) String() string { return render(hdr) }

// Time returns the date as time in UTC.
func (hdr Date) Time() (time.Time, error) {
	return errtrace.Wrap2(time.Parse(time.RFC1123, string(hdr)))
}

var (
	wkdays = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	months = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// parseDate consumes rfc1123-date = wkday "," SP date1 SP time SP "GMT",
// date1 = 2DIGIT SP month SP 4DIGIT, time = 2DIGIT ":" 2DIGIT ":" 2DIGIT.
func parseDate(s string) (Header, string, error) {
	fail := func(r string) (Header, string, error) {
		return nil, s, errtrace.Wrap(grammar.Fail("SIP-date", r))
	}

	oneOf := func(r string, names []string) (string, bool) {
		for _, n := range names {
			if strings.HasPrefix(r, n) {
				return r[len(n):], true
			}
		}
		return r, false
	}
	digits := func(r string, n int) (string, bool) {
		if len(r) < n {
			return r, false
		}
		for i := range n {
			if !grammar.IsCharDigit(r[i]) {
				return r, false
			}
		}
		return r[n:], true
	}
	lit := func(r, l string) (string, bool) {
		if !strings.HasPrefix(r, l) {
			return r, false
		}
		return r[len(l):], true
	}

	r, ok := oneOf(s, wkdays[:])
	if !ok {
		return fail(r)
	}
	steps := []func(string) (string, bool){
		func(r string) (string, bool) { return lit(r, ", ") },
		func(r string) (string, bool) { return digits(r, 2) },
		func(r string) (string, bool) { return lit(r, " ") },
		func(r string) (string, bool) { return oneOf(r, months[:]) },
		func(r string) (string, bool) { return lit(r, " ") },
		func(r string) (string, bool) { return digits(r, 4) },
		func(r string) (string, bool) { return lit(r, " ") },
		func(r string) (string, bool) { return digits(r, 2) },
		func(r string) (string, bool) { return lit(r, ":") },
		func(r string) (string, bool) { return digits(r, 2) },
		func(r string) (string, bool) { return lit(r, ":") },
		func(r string) (string, bool) { return digits(r, 2) },
		func(r string) (string, bool) { return lit(r, " GMT") },
	}
	for _, step := range steps {
		if r, ok = step(r); !ok {
			return fail(r)
		}
	}
	if r != "" && grammar.IsCharToken(r[0]) {
		return fail(r)
	}
	return Date(s[:len(s)-len(r)]), r, nil
}
