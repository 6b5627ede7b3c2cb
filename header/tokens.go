package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// Headers whose value is a comma-separated list of tokens.

func scanTokens(rule, s string, optional bool, elem func(string) (string, string, error)) ([]string, string, error) {
	if optional {
		return errtrace.Wrap3(grammar.OptList(rule, s, elem))
	}
	return errtrace.Wrap3(grammar.List(rule, s, elem))
}

func renderTokens[T ~string](ts []T) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, t := range ts {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(t))
	}
	return sb.String()
}

// Allow represents the Allow header field.
type Allow []RequestMethod

func (Allow) CanonicName() Name { return "Allow" }

func (Allow) CompactName() Name { return "Allow" }

func (hdr Allow) RenderValue() string { return renderTokens(hdr) }

func (hdr Allow) String() string { return render(hdr) }

// Has reports whether the method is allowed.
func (hdr Allow) Has(m RequestMethod) bool {
	for _, v := range hdr {
		if v == m {
			return true
		}
	}
	return false
}

func parseAllow(s string) (Header, string, error) {
	ms, r, err := grammar.OptList("Allow", s, func(s string) (RequestMethod, string, error) {
		m, r, err := grammar.Method(s)
		return RequestMethod(m), r, err //errtrace:skip
	})
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Allow(ms), r, nil
}

// ContentEncoding represents the Content-Encoding header field.
type ContentEncoding []string

func (ContentEncoding) CanonicName() Name { return "Content-Encoding" }

func (ContentEncoding) CompactName() Name { return "e" }

func (hdr ContentEncoding) RenderValue() string { return renderTokens(hdr) }

func (hdr ContentEncoding) String() string { return render(hdr) }

func parseContentEncoding(s string) (Header, string, error) {
	cs, r, err := scanTokens("Content-Encoding", s, false, grammar.Token)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return ContentEncoding(cs), r, nil
}

// ContentLanguage represents the Content-Language header field.
type ContentLanguage []string

func (ContentLanguage) CanonicName() Name { return "Content-Language" }

func (ContentLanguage) CompactName() Name { return "Content-Language" }

func (hdr ContentLanguage) RenderValue() string { return renderTokens(hdr) }

func (hdr ContentLanguage) String() string { return render(hdr) }

func parseContentLanguage(s string) (Header, string, error) {
	ls, r, err := scanTokens("Content-Language", s, false, func(s string) (string, string, error) {
		return errtrace.Wrap3(scanLanguageTag("language-tag", s, 8))
	})
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return ContentLanguage(ls), r, nil
}

// ProxyRequire represents the Proxy-Require header field.
type ProxyRequire []string

func (ProxyRequire) CanonicName() Name { return "Proxy-Require" }

func (ProxyRequire) CompactName() Name { return "Proxy-Require" }

func (hdr ProxyRequire) RenderValue() string { return renderTokens(hdr) }

func (hdr ProxyRequire) String() string { return render(hdr) }

func parseProxyRequire(s string) (Header, string, error) {
	ts, r, err := scanTokens("Proxy-Require", s, false, grammar.OptionTag)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return ProxyRequire(ts), r, nil
}

// Require represents the Require header field.
type Require []string

func (Require) CanonicName() Name { return "Require" }

func (Require) CompactName() Name { return "Require" }

func (hdr Require) RenderValue() string { return renderTokens(hdr) }

func (hdr Require) String() string { return render(hdr) }

func parseRequire(s string) (Header, string, error) {
	ts, r, err := scanTokens("Require", s, false, grammar.OptionTag)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Require(ts), r, nil
}

// Supported represents the Supported header field, it may be empty.
type Supported []string

func (Supported) CanonicName() Name { return "Supported" }

func (Supported) CompactName() Name { return "k" }

func (hdr Supported) RenderValue() string { return renderTokens(hdr) }

func (hdr Supported) String() string { return render(hdr) }

func parseSupported(s string) (Header, string, error) {
	ts, r, err := scanTokens("Supported", s, true, grammar.OptionTag)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Supported(ts), r, nil
}

// Unsupported represents the Unsupported header field.
type Unsupported []string

func (Unsupported) CanonicName() Name { return "Unsupported" }

func (Unsupported) CompactName() Name { return "Unsupported" }

func (hdr Unsupported) RenderValue() string { return renderTokens(hdr) }

func (hdr Unsupported) String() string { return render(hdr) }

func parseUnsupported(s string) (Header, string, error) {
	ts, r, err := scanTokens("Unsupported", s, false, grammar.OptionTag)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Unsupported(ts), r, nil
}

// InReplyTo represents the In-Reply-To header field, a list of Call-IDs.
type InReplyTo []string

func (InReplyTo) CanonicName() Name { return "In-Reply-To" }

func (InReplyTo) CompactName() Name { return "In-Reply-To" }

func (hdr InReplyTo) RenderValue() string { return renderTokens(hdr) }

func (hdr InReplyTo) String() string { return render(hdr) }

func parseInReplyTo(s string) (Header, string, error) {
	ids, r, err := scanTokens("In-Reply-To", s, false, scanCallID)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return InReplyTo(ids), r, nil
}
