package header

//go:generate go tool errtrace -w .

import (
	"net/textproto"
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

// TransportProto represents a transport protocol (UDP, TCP, TLS, SCTP or an extension).
type TransportProto = types.TransportProto

// RequestMethod represents a SIP request method (INVITE, ACK, BYE, etc.).
type RequestMethod = types.RequestMethod

// GenericParam represents a generic "name[=value]" header parameter.
type GenericParam = types.GenericParam

// GenericParams is an ordered list of generic header parameters.
type GenericParams = types.GenericParams

// Header represents a parsed SIP header field.
type Header interface {
	CanonicName() Name
	CompactName() Name
	// RenderValue returns the header value without the name prefix.
	RenderValue() string
	// String returns the header as "Name: value".
	String() string
}

// Name represents a SIP header name.
type Name string

// ToCanonic converts the Name to its canonical form.
func (n Name) ToCanonic() Name { return CanonicName(n) }

// IsValid checks whether the Name is syntactically valid.
func (n Name) IsValid() bool { return grammar.IsToken(n) }

// Equal compares this Name with another for equality.
func (n Name) Equal(val any) bool {
	var other Name
	switch v := val.(type) {
	case Name:
		other = v
	case *Name:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return CanonicName(n) == CanonicName(other)
}

// CanonicName converts name to the canonical form.
// Known names and their compact forms are converted to the form RFC 3261 uses,
// for example "call-id" and "i" convert to "Call-ID".
// Other names get the first letter and any letter following a hyphen in upper case.
func CanonicName[T ~string](name T) Name {
	n := util.TrimSP(string(name))
	if def, ok := lookupDef(n); ok {
		return def.name
	}
	return Name(textproto.CanonicalMIMEHeaderKey(n))
}

func render(hdr Header) string {
	return string(hdr.CanonicName()) + ": " + hdr.RenderValue()
}

// Parse parses one header line "name: value" from the given input s (string or []byte).
// The terminating CRLF is optional.
func Parse[T ~string | ~[]byte](s T) (Header, error) {
	src := string(s)
	if !strings.HasSuffix(src, "\r\n") {
		src += "\r\n"
	}
	hdr, rest, err := Scan(src)
	if err != nil {
		grammar.Locate(err, src)
		return nil, errtrace.Wrap(err)
	}
	if rest != "" {
		err = grammar.Fail("message-header", rest)
		grammar.Locate(err, src)
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// Scan consumes one CRLF-terminated message-header from the front of s.
//
//	message-header = header-name HCOLON header-value CRLF
//
// The name is matched case-insensitively against canonical and compact names.
// Unknown names produce [Extension].
// A known name followed by a value that does not match its grammar is a fatal failure.
func Scan(s string) (Header, string, error) { return errtrace.Wrap3(ScanWith(s, nil)) }

// ScanWith is [Scan] that consults parsers before the built-in ones.
// Keys of parsers are header names in any letter case, compact names are not expanded.
// An error returned by a custom parser is a fatal failure.
func ScanWith(s string, parsers map[string]Parser) (Header, string, error) {
	name, r, err := grammar.Token(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("header-name", err))
	}
	if r, err = grammar.HColon(r); err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("message-header", err))
	}

	if p, ok := lookupParser(name, parsers); ok {
		hdr, rest, err := scanCustom(name, r, p)
		if err != nil {
			return nil, s, errtrace.Wrap(err)
		}
		return hdr, rest, nil
	}

	if def, ok := lookupDef(name); ok {
		hdr, r2, err := def.parse(r)
		if err != nil {
			return nil, s, errtrace.Wrap(grammar.Commit(string(def.name), err))
		}
		rest, err := lineEnd(r2)
		if err != nil {
			return nil, s, errtrace.Wrap(grammar.Commit(string(def.name), err))
		}
		return hdr, rest, nil
	}

	val, r, err := grammar.ExtensionText(r)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("extension-header", err))
	}
	rest, err := lineEnd(r)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("extension-header", err))
	}
	return &Extension{Name: name, Value: val}, rest, nil
}

func scanCustom(name, s string, p Parser) (Header, string, error) {
	val, r, err := grammar.ExtensionText(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Commit(name, err))
	}
	rest, err := lineEnd(r)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Commit(name, err))
	}
	hdr, err := p(name, val)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Commit(name, grammar.FailKind(grammar.KindSyntax, name, s, err)))
	}
	return hdr, rest, nil
}

// lineEnd consumes trailing whitespace and the CRLF of a header line.
func lineEnd(s string) (string, error) {
	r, err := grammar.CRLF(strings.TrimLeft(s, " \t"))
	if err != nil {
		return s, errtrace.Wrap(grammar.Fail("CRLF", s))
	}
	return r, nil
}

type valueParser func(s string) (Header, string, error)

type hdrDef struct {
	name    Name
	compact Name
	parse   valueParser
}

var hdrDefs = [...]hdrDef{
	{"Accept", "", parseAccept},
	{"Accept-Encoding", "", parseAcceptEncoding},
	{"Accept-Language", "", parseAcceptLanguage},
	{"Alert-Info", "", parseAlertInfo},
	{"Allow", "", parseAllow},
	{"Authentication-Info", "", parseAuthenticationInfo},
	{"Authorization", "", parseAuthorization},
	{"Call-ID", "i", parseCallID},
	{"Call-Info", "", parseCallInfo},
	{"Contact", "m", parseContact},
	{"Content-Disposition", "", parseContentDisposition},
	{"Content-Encoding", "e", parseContentEncoding},
	{"Content-Language", "", parseContentLanguage},
	{"Content-Length", "l", parseContentLength},
	{"Content-Type", "c", parseContentType},
	{"CSeq", "", parseCSeq},
	{"Date", "", parseDate},
	{"Error-Info", "", parseErrorInfo},
	{"Expires", "", parseExpires},
	{"From", "f", parseFrom},
	{"In-Reply-To", "", parseInReplyTo},
	{"Max-Forwards", "", parseMaxForwards},
	{"MIME-Version", "", parseMIMEVersion},
	{"Min-Expires", "", parseMinExpires},
	{"Organization", "", parseOrganization},
	{"Priority", "", parsePriority},
	{"Proxy-Authenticate", "", parseProxyAuthenticate},
	{"Proxy-Authorization", "", parseProxyAuthorization},
	{"Proxy-Require", "", parseProxyRequire},
	{"Record-Route", "", parseRecordRoute},
	{"Reply-To", "", parseReplyTo},
	{"Require", "", parseRequire},
	{"Retry-After", "", parseRetryAfter},
	{"Route", "", parseRoute},
	{"Server", "", parseServer},
	{"Subject", "s", parseSubject},
	{"Supported", "k", parseSupported},
	{"Timestamp", "", parseTimestamp},
	{"To", "t", parseTo},
	{"Unsupported", "", parseUnsupported},
	{"User-Agent", "", parseUserAgent},
	{"Via", "v", parseVia},
	{"Warning", "", parseWarning},
	{"WWW-Authenticate", "", parseWWWAuthenticate},
}

// hdrIndex maps lower-case canonical and compact names to definitions.
var hdrIndex = func() map[string]*hdrDef {
	idx := make(map[string]*hdrDef, 2*len(hdrDefs))
	for i := range hdrDefs {
		def := &hdrDefs[i]
		idx[util.LCase(string(def.name))] = def
		if def.compact != "" {
			idx[string(def.compact)] = def
		}
	}
	return idx
}()

func lookupDef(name string) (*hdrDef, bool) {
	if def, ok := hdrIndex[name]; ok {
		return def, true
	}
	def, ok := hdrIndex[util.LCase(name)]
	return def, ok
}

// KnownNames returns canonical names of all headers with built-in parsers.
func KnownNames() []Name {
	names := make([]Name, len(hdrDefs))
	for i := range hdrDefs {
		names[i] = hdrDefs[i].name
	}
	return names
}
