package header

import (
	"strconv"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

// Headers with a single 1*DIGIT value. Values must fit int32.

func scanInt32(rule, s string) (int32, string, error) {
	return errtrace.Wrap3(grammar.Int32(rule, s))
}

func fmtInt32(n int32) string { return strconv.FormatInt(int64(n), 10) }

// ContentLength represents the Content-Length header field.
type ContentLength int32

func (ContentLength) CanonicName() Name { return "Content-Length" }

func (ContentLength) CompactName() Name { return "l" }

func (hdr ContentLength) RenderValue() string { return fmtInt32(int32(hdr)) }

func (hdr ContentLength) String() string { return render(hdr) }

func parseContentLength(s string) (Header, string, error) {
	n, r, err := scanInt32("Content-Length", s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return ContentLength(n), r, nil
}

// Expires represents the Expires header field, the value is in seconds.
type Expires int32

func (Expires) CanonicName() Name { return "Expires" }

func (Expires) CompactName() Name { return "Expires" }

func (hdr Expires) RenderValue() string { return fmtInt32(int32(hdr)) }

func (hdr Expires) String() string { return render(hdr) }

// Duration returns the value as a duration.
func (hdr Expires) Duration() time.Duration { return time.Duration(hdr) * time.Second }

func parseExpires(s string) (Header, string, error) {
	n, r, err := scanInt32("Expires", s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Expires(n), r, nil
}

// MinExpires represents the Min-Expires header field, the value is in seconds.
type MinExpires int32

func (MinExpires) CanonicName() Name { return "Min-Expires" }

func (MinExpires) CompactName() Name { return "Min-Expires" }

func (hdr MinExpires) RenderValue() string { return fmtInt32(int32(hdr)) }

func (hdr MinExpires) String() string { return render(hdr) }

// Duration returns the value as a duration.
func (hdr MinExpires) Duration() time.Duration { return time.Duration(hdr) * time.Second }

func parseMinExpires(s string) (Header, string, error) {
	n, r, err := scanInt32("Min-Expires", s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return MinExpires(n), r, nil
}

// MaxForwards represents the Max-Forwards header field.
type MaxForwards int32

func (MaxForwards) CanonicName() Name { return "Max-Forwards" }

func (MaxForwards) CompactName() Name { return "Max-Forwards" }

func (hdr MaxForwards) RenderValue() string { return fmtInt32(int32(hdr)) }

func (hdr MaxForwards) String() string { return render(hdr) }

func parseMaxForwards(s string) (Header, string, error) {
	n, r, err := scanInt32("Max-Forwards", s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return MaxForwards(n), r, nil
}

// CSeq represents the CSeq header field.
type CSeq struct {
	SeqNum int32
	Method RequestMethod
}

func (CSeq) CanonicName() Name { return "CSeq" }

func (CSeq) CompactName() Name { return "CSeq" }

func (hdr CSeq) RenderValue() string { return fmtInt32(hdr.SeqNum) + " " + string(hdr.Method) }

func (hdr CSeq) String() string { return render(hdr) }

// parseCSeq consumes 1*DIGIT LWS Method.
func parseCSeq(s string) (Header, string, error) {
	n, r, err := scanInt32("CSeq", s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	if _, r, err = grammar.LWS(r); err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("CSeq", err))
	}
	m, r, err := grammar.Method(r)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("CSeq", err))
	}
	return CSeq{SeqNum: n, Method: RequestMethod(m)}, r, nil
}

// MIMEVersion represents the MIME-Version header field.
type MIMEVersion string

func (MIMEVersion) CanonicName() Name { return "MIME-Version" }

func (MIMEVersion) CompactName() Name { return "MIME-Version" }

func (hdr MIMEVersion) RenderValue() string { return string(hdr) }

func (hdr MIMEVersion) String() string { return render(hdr) }

// parseMIMEVersion consumes 1*DIGIT "." 1*DIGIT.
func parseMIMEVersion(s string) (Header, string, error) {
	_, r, err := grammar.Digits(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("MIME-Version", err))
	}
	if r, err = grammar.Lit("MIME-Version", r, "."); err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	if _, r, err = grammar.Digits(r); err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("MIME-Version", err))
	}
	return MIMEVersion(s[:len(s)-len(r)]), r, nil
}

// Timestamp represents the Timestamp header field.
// Time and Delay keep the decimal text, Delay is empty when absent.
type Timestamp struct {
	Time  string
	Delay string
}

func (Timestamp) CanonicName() Name { return "Timestamp" }

func (Timestamp) CompactName() Name { return "Timestamp" }

func (hdr Timestamp) RenderValue() string {
	if hdr.Delay == "" {
		return hdr.Time
	}
	return hdr.Time + " " + hdr.Delay
}

func (hdr Timestamp) String() string { return render(hdr) }

// parseTimestamp consumes 1*DIGIT [ "." *DIGIT ] [ LWS delay ], delay = *DIGIT [ "." *DIGIT ].
func parseTimestamp(s string) (Header, string, error) {
	_, r, err := grammar.Digits(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("Timestamp", err))
	}
	r = skipFraction(r)
	hdr := Timestamp{Time: s[:len(s)-len(r)]}

	if _, r2, err := grammar.LWS(r); err == nil && r2 != "" && (grammar.IsCharDigit(r2[0]) || r2[0] == '.') {
		_, r3, _ := grammar.Digits(r2)
		r3 = skipFraction(r3)
		hdr.Delay = r2[:len(r2)-len(r3)]
		r = r3
	}
	return hdr, r, nil
}

// skipFraction skips [ "." *DIGIT ].
func skipFraction(s string) string {
	if s == "" || s[0] != '.' {
		return s
	}
	i := 1
	for i < len(s) && grammar.IsCharDigit(s[i]) {
		i++
	}
	return s[i:]
}
