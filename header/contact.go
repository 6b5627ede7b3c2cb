package header

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// ContactParam is a Contact parameter: [QParam], [ExpiresParam] or [ExtParam].
type ContactParam interface {
	String() string
	contactParam()
}

func (QParam) contactParam()       {}
func (ExpiresParam) contactParam() {}
func (ExtParam) contactParam()     {}

func contactKnownParam(name, s string) (ContactParam, string, bool, error) {
	switch {
	case util.EqFold(name, "q"):
		q, r, err := grammar.QValue(s)
		if err != nil {
			return nil, s, false, nil
		}
		return QParam{Value: q}, r, true, nil
	case util.EqFold(name, "expires"):
		n, r, ok, err := paramInt32("delta-seconds", s)
		if !ok {
			return nil, s, false, errtrace.Wrap(err)
		}
		return ExpiresParam{Value: n}, r, true, nil
	default:
		return nil, s, false, nil
	}
}

// ContactAddr is an element of the Contact header.
type ContactAddr struct {
	NameAddr
	Params []ContactParam
}

// Q returns the "q" parameter.
func (ca ContactAddr) Q() (QParam, bool) {
	for _, p := range ca.Params {
		if q, ok := p.(QParam); ok {
			return q, true
		}
	}
	return QParam{}, false
}

// Expires returns the "expires" parameter value in seconds.
func (ca ContactAddr) Expires() (int32, bool) {
	for _, p := range ca.Params {
		if e, ok := p.(ExpiresParam); ok {
			return e.Value, true
		}
	}
	return 0, false
}

func (ca ContactAddr) String() string { return renderAddress(ca.NameAddr) + renderParams(ca.Params) }

// Contact represents the Contact header field.
// Wildcard is set for "Contact: *", Addrs is empty then.
type Contact struct {
	Wildcard bool
	Addrs    []ContactAddr
}

func (*Contact) CanonicName() Name { return "Contact" }

func (*Contact) CompactName() Name { return "m" }

func (hdr *Contact) RenderValue() string {
	if hdr.Wildcard {
		return "*"
	}
	return joinStrings(hdr.Addrs, ", ")
}

func (hdr *Contact) String() string { return render(hdr) }

func parseContact(s string) (Header, string, error) {
	if r, err := grammar.Star(s); err == nil && (r == "" || strings.HasPrefix(r, "\r\n")) {
		return &Contact{Wildcard: true}, r, nil
	}

	addrs, r, err := grammar.List("Contact", s, scanContactAddr)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return &Contact{Addrs: addrs}, r, nil
}

// scanContactAddr consumes contact-param = (name-addr / addr-spec) *( SEMI contact-params ).
func scanContactAddr(s string) (ContactAddr, string, error) {
	addr, r, err := scanAddress(s)
	if err != nil {
		return ContactAddr{}, s, errtrace.Wrap(err)
	}
	ps, r, err := scanParams(r, contactKnownParam, func(p ExtParam) ContactParam { return p })
	if err != nil {
		return ContactAddr{}, s, errtrace.Wrap(err)
	}
	return ContactAddr{NameAddr: addr, Params: ps}, r, nil
}

// ParseContactAddr parses a single contact-param from the given input s (string or []byte),
// for example `"John" <sip:j@example.com>;expires=8;q=1.0`.
func ParseContactAddr[T ~string | ~[]byte](s T) (ContactAddr, error) {
	src := string(s)
	ca, rest, err := scanContactAddr(src)
	if err == nil && rest != "" {
		err = grammar.Fail("contact-param", rest)
	}
	if err != nil {
		grammar.Locate(err, src)
		return ContactAddr{}, errtrace.Wrap(err)
	}
	return ca, nil
}
