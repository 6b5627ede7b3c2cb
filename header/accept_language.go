package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

// LanguageRange is an element of the Accept-Language header.
// Lang is a language range like "en-gb" or "*".
type LanguageRange struct {
	Lang   string
	Params []AcceptParam
}

// Q returns the qvalue of the range, 1 when the range has no "q" parameter.
func (lr LanguageRange) Q() float64 { return acceptQ(lr.Params) }

func (lr LanguageRange) String() string { return lr.Lang + renderParams(lr.Params) }

// AcceptLanguage represents the Accept-Language header field.
type AcceptLanguage []LanguageRange

func (AcceptLanguage) CanonicName() Name { return "Accept-Language" }

func (AcceptLanguage) CompactName() Name { return "Accept-Language" }

func (hdr AcceptLanguage) RenderValue() string { return joinStrings(hdr, ", ") }

func (hdr AcceptLanguage) String() string { return render(hdr) }

func parseAcceptLanguage(s string) (Header, string, error) {
	rngs, r, err := grammar.OptList("Accept-Language", s, func(s string) (LanguageRange, string, error) {
		lang, r, err := scanLanguageRange(s)
		if err != nil {
			return LanguageRange{}, s, errtrace.Wrap(err)
		}
		ps, r, err := scanAcceptParams(r)
		if err != nil {
			return LanguageRange{}, s, errtrace.Wrap(err)
		}
		return LanguageRange{Lang: lang, Params: ps}, r, nil
	})
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return AcceptLanguage(rngs), r, nil
}

// scanLanguageRange consumes ( 1*8ALPHA *( "-" 1*8ALPHA ) ) / "*".
func scanLanguageRange(s string) (string, string, error) {
	if s != "" && s[0] == '*' {
		return s[:1], s[1:], nil
	}
	return errtrace.Wrap3(scanLanguageTag("language-range", s, 8))
}

// scanLanguageTag consumes primary-tag *( "-" subtag ), each tag is 1*max ALPHA.
func scanLanguageTag(rule, s string, maxLen int) (string, string, error) {
	alpha := func(i int) int {
		n := 0
		for i+n < len(s) && n < maxLen && grammar.IsCharAlpha(s[i+n]) {
			n++
		}
		return n
	}

	i := alpha(0)
	if i == 0 {
		return "", s, errtrace.Wrap(grammar.Fail(rule, s))
	}
	for i < len(s) && s[i] == '-' {
		n := alpha(i + 1)
		if n == 0 {
			break
		}
		i += 1 + n
	}
	if i < len(s) && grammar.IsCharAlpha(s[i]) {
		return "", s, errtrace.Wrap(grammar.Fail(rule, s[i:]))
	}
	return s[:i], s[i:], nil
}
