package header

import (
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// RetryParam is a Retry-After parameter: [DurationParam] or [ExtParam].
type RetryParam interface {
	String() string
	retryParam()
}

// DurationParam is the "duration" parameter of Retry-After, in seconds.
type DurationParam struct{ Value int32 }

func (p DurationParam) String() string { return "duration=" + fmtInt32(p.Value) }

func (DurationParam) retryParam() {}
func (ExtParam) retryParam()      {}

func retryDurationParam(name, s string) (RetryParam, string, bool, error) {
	if !util.EqFold(name, "duration") {
		return nil, s, false, nil
	}
	n, r, ok, err := paramInt32("delta-seconds", s)
	if !ok {
		return nil, s, false, errtrace.Wrap(err)
	}
	return DurationParam{Value: n}, r, true, nil
}

// RetryAfter represents the Retry-After header field.
// Comment keeps the parentheses, it is empty when absent.
type RetryAfter struct {
	Delay   int32
	Comment string
	Params  []RetryParam
}

func (*RetryAfter) CanonicName() Name { return "Retry-After" }

func (*RetryAfter) CompactName() Name { return "Retry-After" }

func (hdr *RetryAfter) RenderValue() string {
	v := fmtInt32(hdr.Delay)
	if hdr.Comment != "" {
		v += " " + hdr.Comment
	}
	return v + renderParams(hdr.Params)
}

func (hdr *RetryAfter) String() string { return render(hdr) }

// Duration returns the delay as a duration.
func (hdr *RetryAfter) Duration() time.Duration { return time.Duration(hdr.Delay) * time.Second }

// parseRetryAfter consumes delta-seconds [ comment ] *( SEMI retry-param ).
func parseRetryAfter(s string) (Header, string, error) {
	n, r, err := scanInt32("Retry-After", s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	hdr := &RetryAfter{Delay: n}
	if cmt, r2, err := grammar.Comment(r); err == nil {
		hdr.Comment, r = cmt, r2
	} else if grammar.IsFatal(err) {
		return nil, s, errtrace.Wrap(err)
	}
	if hdr.Params, r, err = scanParams(r, retryDurationParam, func(p ExtParam) RetryParam { return p }); err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return hdr, r, nil
}
