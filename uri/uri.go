package uri

//go:generate go tool errtrace -w .

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/types"
	"github.com/ghettovoice/sipparser/internal/util"
)

// Addr represents a network address consisting of a host and optional port.
type Addr = types.Addr

// Host creates an Addr from a hostname without a port.
func Host(host string) Addr { return types.Host(host) }

// HostPort creates an Addr from a hostname and port.
func HostPort(host string, port int32) Addr { return types.HostPort(host, port) }

// ParseAddr parses a network address from the given input s (string or []byte).
func ParseAddr[T ~string | ~[]byte](s T) (Addr, error) { return errtrace.Wrap2(types.ParseAddr(s)) }

type TransportProto = types.TransportProto

type RequestMethod = types.RequestMethod

// URI represents a parsed URI (SIP, SIPS or any absolute URI).
type URI interface {
	// Scheme returns the URI scheme in lower case.
	Scheme() string
	String() string
	types.ValidFlag
	types.Equalable
}

// Parse parses a whole URI from the given input s (string or []byte).
//
// Parsing of:
//   - sip/sips returns [SIP];
//   - any other absolute URI returns [Any].
func Parse[T ~string | ~[]byte](s T) (URI, error) {
	src := string(s)
	u, rest, err := ScanAddrSpec(src)
	if err != nil {
		grammar.Locate(err, src)
		return nil, errtrace.Wrap(err)
	}
	if rest != "" {
		err = grammar.Fail("addr-spec", rest)
		grammar.Locate(err, src)
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// ScanAddrSpec consumes SIP-URI / SIPS-URI / absoluteURI from the front of s.
//
// A SIP URI that fails after its scheme matched is not retried as an absolute URI
// when the failure is fatal (for example, a TTL out of range).
func ScanAddrSpec(s string) (URI, string, error) {
	if isSIPScheme(s) {
		u, rest, err := ScanSIP(s)
		if err == nil {
			return u, rest, nil
		}
		if grammar.IsFatal(err) {
			return nil, s, errtrace.Wrap(err)
		}
		a, arest, aerr := ScanAny(s)
		if aerr != nil {
			return nil, s, errtrace.Wrap(grammar.Join("addr-spec", err, aerr))
		}
		return a, arest, nil
	}
	a, rest, err := ScanAny(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("addr-spec", err))
	}
	return a, rest, nil
}

// ScanBareAddrSpec consumes an addr-spec that is not enclosed in angle brackets.
//
// Such URI can not contain a comma, a semicolon or a question mark, so a SIP URI has
// no parameters and headers of its own, the parameters that follow belong to
// the header field (RFC 3261 section 20).
func ScanBareAddrSpec(s string) (URI, string, error) {
	if isSIPScheme(s) {
		u, rest, err := scanSIP(s, false)
		if err == nil {
			return u, rest, nil
		}
		if grammar.IsFatal(err) {
			return nil, s, errtrace.Wrap(err)
		}
	}

	end := strings.IndexAny(s, ",;? \t\r\n>")
	if end < 0 {
		end = len(s)
	}
	a, rest, err := ScanAny(s[:end])
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("addr-spec", err))
	}
	return a, s[end-len(rest):], nil
}

func isSIPScheme(s string) bool {
	return util.HasPrefixFold(s, "sip:") || util.HasPrefixFold(s, "sips:")
}

// Unescape decodes escaped octets of a raw URI component.
func Unescape(s string) string { return grammar.Unescape(s) }
