package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

// EncodingRange is an element of the Accept-Encoding header.
// Coding is a content-coding token or "*".
type EncodingRange struct {
	Coding string
	Params []AcceptParam
}

// Q returns the qvalue of the range, 1 when the range has no "q" parameter.
func (er EncodingRange) Q() float64 { return acceptQ(er.Params) }

func (er EncodingRange) String() string { return er.Coding + renderParams(er.Params) }

// AcceptEncoding represents the Accept-Encoding header field.
type AcceptEncoding []EncodingRange

func (AcceptEncoding) CanonicName() Name { return "Accept-Encoding" }

func (AcceptEncoding) CompactName() Name { return "Accept-Encoding" }

func (hdr AcceptEncoding) RenderValue() string { return joinStrings(hdr, ", ") }

func (hdr AcceptEncoding) String() string { return render(hdr) }

func parseAcceptEncoding(s string) (Header, string, error) {
	rngs, r, err := grammar.OptList("Accept-Encoding", s, func(s string) (EncodingRange, string, error) {
		// "*" is a token character, token covers both alternatives of codings.
		coding, r, err := grammar.Token(s)
		if err != nil {
			return EncodingRange{}, s, errtrace.Wrap(grammar.Wrap("codings", err))
		}
		ps, r, err := scanAcceptParams(r)
		if err != nil {
			return EncodingRange{}, s, errtrace.Wrap(err)
		}
		return EncodingRange{Coding: coding, Params: ps}, r, nil
	})
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return AcceptEncoding(rngs), r, nil
}
