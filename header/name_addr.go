package header

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
	"github.com/ghettovoice/sipparser/uri"
)

// NameAddr represents the address of From, To, Contact, Reply-To, Route and Record-Route headers.
// DisplayName holds the unquoted display name.
type NameAddr struct {
	DisplayName string
	URI         uri.URI
}

// String returns the string representation of the NameAddr.
func (addr NameAddr) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	if addr.DisplayName != "" {
		sb.WriteString(grammar.Quote(addr.DisplayName))
		sb.WriteByte(' ')
	}
	sb.WriteByte('<')
	if addr.URI != nil {
		sb.WriteString(addr.URI.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// scanNameAddr consumes name-addr = [ display-name ] LAQUOT addr-spec RAQUOT,
// display-name = *( token LWS ) / quoted-string.
func scanNameAddr(s string) (NameAddr, string, error) {
	var addr NameAddr
	r := s
	if qs, r2, err := grammar.QuotedString(r); err == nil {
		addr.DisplayName, r = grammar.Unquote(qs), r2
	} else if grammar.IsFatal(err) {
		return NameAddr{}, s, errtrace.Wrap(err)
	} else {
		r = grammar.SWS(r)
		r2 := r
		for {
			_, r3, err := grammar.Token(r2)
			if err != nil {
				break
			}
			_, r4, err := grammar.LWS(r3)
			if err != nil {
				break
			}
			r2 = r4
		}
		addr.DisplayName = strings.TrimRight(r[:len(r)-len(r2)], " \t\r\n")
		r = r2
	}

	r, err := grammar.LAQuot(r)
	if err != nil {
		return NameAddr{}, s, errtrace.Wrap(grammar.Wrap("name-addr", err))
	}
	if addr.URI, r, err = uri.ScanAddrSpec(r); err != nil {
		return NameAddr{}, s, errtrace.Wrap(grammar.Wrap("name-addr", err))
	}
	if r, err = grammar.RAQuot(r); err != nil {
		return NameAddr{}, s, errtrace.Wrap(grammar.Wrap("name-addr", err))
	}
	return addr, r, nil
}

// scanAddress consumes name-addr / addr-spec.
func scanAddress(s string) (NameAddr, string, error) {
	addr, r, err := scanNameAddr(s)
	if err == nil {
		return addr, r, nil
	}
	if grammar.IsFatal(err) {
		return NameAddr{}, s, errtrace.Wrap(err)
	}

	u, r, uerr := uri.ScanBareAddrSpec(grammar.SWS(s))
	if uerr != nil {
		return NameAddr{}, s, errtrace.Wrap(grammar.Join("address", err, uerr))
	}
	return NameAddr{URI: u}, r, nil
}

// renderAddress renders the address in name-addr form when it has a display name
// or its URI contains a comma, a semicolon or a question mark, and in addr-spec form otherwise.
func renderAddress(addr NameAddr) string {
	if addr.DisplayName != "" || addr.URI == nil {
		return addr.String()
	}
	if u := addr.URI.String(); !strings.ContainsAny(u, ",;?") {
		return u
	}
	return addr.String()
}
