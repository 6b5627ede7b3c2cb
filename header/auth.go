package header

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/icholy/digest"

	"github.com/ghettovoice/sipparser/internal/errorutil"
	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// Algorithm is the Digest "algorithm" parameter value.
type Algorithm string

// Algorithms of RFC 2617.
const (
	AlgorithmMD5     Algorithm = "MD5"
	AlgorithmMD5Sess Algorithm = "MD5-sess"
)

// IsExtension reports whether the algorithm is not MD5 or MD5-sess.
func (a Algorithm) IsExtension() bool {
	return !util.EqFold(a, AlgorithmMD5) && !util.EqFold(a, AlgorithmMD5Sess)
}

// QOP is a Digest quality of protection value.
type QOP string

// QOP values of RFC 2617.
const (
	QOPAuth    QOP = "auth"
	QOPAuthInt QOP = "auth-int"
)

// IsExtension reports whether the value is not auth or auth-int.
func (q QOP) IsExtension() bool { return !util.EqFold(q, QOPAuth) && !util.EqFold(q, QOPAuthInt) }

// DigestParam is a parameter of a Digest challenge:
// [DigestRealm], [DigestDomain], [DigestNonce], [DigestOpaque], [DigestStale],
// [DigestAlgorithm], [DigestQOPOptions] or [AuthParam].
type DigestParam interface {
	String() string
	digestParam()
}

// DigestResponseParam is a parameter of Digest credentials:
// [DigestUsername], [DigestRealm], [DigestNonce], [DigestURI], [DigestResponse], [DigestAlgorithm],
// [DigestCNonce], [DigestOpaque], [DigestQOP], [DigestNonceCount] or [AuthParam].
type DigestResponseParam interface {
	String() string
	digestResponseParam()
}

// AuthInfo is an element of the Authentication-Info header:
// [DigestNextNonce], [DigestQOP], [DigestRspAuth], [DigestCNonce] or [DigestNonceCount].
type AuthInfo interface {
	String() string
	authInfo()
}

// Values of quoted parameters are kept unquoted.
type (
	DigestRealm      struct{ Value string }
	DigestDomain     struct{ URIs []string }
	DigestNonce      struct{ Value string }
	DigestOpaque     struct{ Value string }
	DigestStale      struct{ Stale bool }
	DigestAlgorithm  struct{ Algorithm Algorithm }
	DigestQOPOptions struct{ QOPs []QOP }
	DigestUsername   struct{ Value string }
	DigestURI        struct{ URI string }
	DigestResponse   struct{ Value string }
	DigestCNonce     struct{ Value string }
	DigestQOP        struct{ QOP QOP }
	DigestNonceCount struct{ Value string }
	DigestNextNonce  struct{ Value string }
	DigestRspAuth    struct{ Value string }
)

// AuthParam is an auth-param, quoted values keep their quotes.
type AuthParam struct {
	Name  string
	Value string
}

func (p DigestRealm) String() string  { return "realm=" + grammar.Quote(p.Value) }
func (p DigestDomain) String() string { return "domain=" + grammar.Quote(strings.Join(p.URIs, " ")) }
func (p DigestNonce) String() string  { return "nonce=" + grammar.Quote(p.Value) }
func (p DigestOpaque) String() string { return "opaque=" + grammar.Quote(p.Value) }
func (p DigestStale) String() string  { return "stale=" + strconv.FormatBool(p.Stale) }

func (p DigestAlgorithm) String() string { return "algorithm=" + string(p.Algorithm) }

func (p DigestQOPOptions) String() string {
	return "qop=" + grammar.Quote(renderTokens(p.QOPs))
}

func (p DigestUsername) String() string   { return "username=" + grammar.Quote(p.Value) }
func (p DigestURI) String() string        { return "uri=" + grammar.Quote(p.URI) }
func (p DigestResponse) String() string   { return "response=" + grammar.Quote(p.Value) }
func (p DigestCNonce) String() string     { return "cnonce=" + grammar.Quote(p.Value) }
func (p DigestQOP) String() string        { return "qop=" + string(p.QOP) }
func (p DigestNonceCount) String() string { return "nc=" + p.Value }
func (p DigestNextNonce) String() string  { return "nextnonce=" + grammar.Quote(p.Value) }
func (p DigestRspAuth) String() string    { return "rspauth=" + grammar.Quote(p.Value) }
func (p AuthParam) String() string        { return p.Name + "=" + p.Value }

// Unquoted returns the value without quotes.
func (p AuthParam) Unquoted() string { return grammar.Unquote(p.Value) }

func (DigestRealm) digestParam()      {}
func (DigestDomain) digestParam()     {}
func (DigestNonce) digestParam()      {}
func (DigestOpaque) digestParam()     {}
func (DigestStale) digestParam()      {}
func (DigestAlgorithm) digestParam()  {}
func (DigestQOPOptions) digestParam() {}
func (AuthParam) digestParam()        {}

func (DigestUsername) digestResponseParam()   {}
func (DigestRealm) digestResponseParam()      {}
func (DigestNonce) digestResponseParam()      {}
func (DigestURI) digestResponseParam()        {}
func (DigestResponse) digestResponseParam()   {}
func (DigestAlgorithm) digestResponseParam()  {}
func (DigestCNonce) digestResponseParam()     {}
func (DigestOpaque) digestResponseParam()     {}
func (DigestQOP) digestResponseParam()        {}
func (DigestNonceCount) digestResponseParam() {}
func (AuthParam) digestResponseParam()        {}

func (DigestNextNonce) authInfo()  {}
func (DigestQOP) authInfo()        {}
func (DigestRspAuth) authInfo()    {}
func (DigestCNonce) authInfo()     {}
func (DigestNonceCount) authInfo() {}

// Challenge is the value of WWW-Authenticate and Proxy-Authenticate headers.
// Parameters of the Digest scheme are in Digest, parameters of other schemes are in Params.
type Challenge struct {
	Scheme string
	Digest []DigestParam
	Params []AuthParam
}

// IsDigest reports whether the scheme is Digest.
func (c Challenge) IsDigest() bool { return util.EqFold(c.Scheme, "Digest") }

func (c Challenge) String() string {
	if c.IsDigest() {
		return c.Scheme + " " + joinStrings(c.Digest, ", ")
	}
	return c.Scheme + " " + joinStrings(c.Params, ", ")
}

// DigestChallenge converts a Digest challenge to [digest.Challenge],
// it can be answered then with [digest.Digest].
func (c Challenge) DigestChallenge() (*digest.Challenge, error) {
	if !c.IsDigest() {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("not a Digest challenge: %q", c.Scheme))
	}
	var dc digest.Challenge
	for _, p := range c.Digest {
		switch p := p.(type) {
		case DigestRealm:
			dc.Realm = p.Value
		case DigestDomain:
			dc.Domain = p.URIs
		case DigestNonce:
			dc.Nonce = p.Value
		case DigestOpaque:
			dc.Opaque = p.Value
		case DigestStale:
			dc.Stale = p.Stale
		case DigestAlgorithm:
			dc.Algorithm = string(p.Algorithm)
		case DigestQOPOptions:
			for _, q := range p.QOPs {
				dc.QOP = append(dc.QOP, string(q))
			}
		case AuthParam:
			switch util.LCase(p.Name) {
			case "charset":
				dc.Charset = p.Unquoted()
			case "userhash":
				dc.Userhash = util.EqFold(p.Unquoted(), "true")
			}
		}
	}
	return &dc, nil
}

// Credentials is the value of Authorization and Proxy-Authorization headers.
// Parameters of the Digest scheme are in Digest, parameters of other schemes are in Params.
type Credentials struct {
	Scheme string
	Digest []DigestResponseParam
	Params []AuthParam
}

// IsDigest reports whether the scheme is Digest.
func (c Credentials) IsDigest() bool { return util.EqFold(c.Scheme, "Digest") }

func (c Credentials) String() string {
	if c.IsDigest() {
		return c.Scheme + " " + joinStrings(c.Digest, ", ")
	}
	return c.Scheme + " " + joinStrings(c.Params, ", ")
}

// DigestCredentials converts Digest credentials to [digest.Credentials].
func (c Credentials) DigestCredentials() (*digest.Credentials, error) {
	if !c.IsDigest() {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("not Digest credentials: %q", c.Scheme))
	}
	var dc digest.Credentials
	for _, p := range c.Digest {
		switch p := p.(type) {
		case DigestUsername:
			dc.Username = p.Value
		case DigestRealm:
			dc.Realm = p.Value
		case DigestNonce:
			dc.Nonce = p.Value
		case DigestURI:
			dc.URI = p.URI
		case DigestResponse:
			dc.Response = p.Value
		case DigestAlgorithm:
			dc.Algorithm = string(p.Algorithm)
		case DigestCNonce:
			dc.Cnonce = p.Value
		case DigestOpaque:
			dc.Opaque = p.Value
		case DigestQOP:
			dc.QOP = string(p.QOP)
		case DigestNonceCount:
			nc, err := strconv.ParseInt(p.Value, 16, 32)
			if err != nil {
				return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
			}
			dc.Nc = int(nc)
		case AuthParam:
			if util.EqFold(p.Name, "userhash") {
				dc.Userhash = util.EqFold(p.Unquoted(), "true")
			}
		}
	}
	return &dc, nil
}

// scanAuthItem consumes name EQUAL value, the value is parsed by known for recognized names
// and as auth-param value otherwise. With nil ext only known items are accepted.
func scanAuthItem[P any](s string, known knownParam[P], ext func(AuthParam) P) (P, string, error) {
	var zero P
	name, r, err := grammar.Token(s)
	if err != nil {
		return zero, s, errtrace.Wrap(grammar.Wrap("auth-param", err))
	}
	if r, err = grammar.Equal(r); err != nil {
		return zero, s, errtrace.Wrap(grammar.Wrap("auth-param", err))
	}
	if known != nil {
		p, kr, ok, err := known(name, r)
		if err != nil {
			return zero, s, errtrace.Wrap(err)
		}
		if ok {
			return p, kr, nil
		}
	}
	if ext == nil {
		return zero, s, errtrace.Wrap(grammar.Fail("ainfo", s))
	}

	val, r, err := grammar.QuotedString(r)
	if err != nil {
		if grammar.IsFatal(err) {
			return zero, s, errtrace.Wrap(err)
		}
		if val, r, err = grammar.Token(r); err != nil {
			return zero, s, errtrace.Wrap(grammar.Wrap("auth-param", err))
		}
	}
	return ext(AuthParam{Name: name, Value: val}), r, nil
}

func scanAuthParams(s string) ([]AuthParam, string, error) {
	return errtrace.Wrap3(grammar.List("auth-param", s, func(s string) (AuthParam, string, error) {
		return errtrace.Wrap3(scanAuthItem[AuthParam](s, nil, func(p AuthParam) AuthParam { return p }))
	}))
}

// scanLHex consumes n lower-case hex digits not followed by another token character,
// n < 0 means any number of them.
func scanLHex(s string, n int) (string, string, bool) {
	i := 0
	for i < len(s) && (n < 0 || i < n) && grammar.IsCharLowerHex(s[i]) {
		i++
	}
	if n >= 0 && i != n || i < len(s) && grammar.IsCharToken(s[i]) {
		return "", s, false
	}
	return s[:i], s[i:], true
}

// scanQuotedLHex consumes LDQUOT n*LHEX RDQUOT, n < 0 means any number.
func scanQuotedLHex(s string, n int) (string, string, bool) {
	qs, r, ok := paramQuoted(s)
	if !ok {
		return "", s, false
	}
	if _, rest, ok := scanLHex(qs, n); !ok || rest != "" {
		return "", s, false
	}
	return qs, r, true
}

func scanQuotedOK(s string) (string, string, bool) { return paramQuoted(s) }

// scanDomainURIs consumes LDQUOT URI *( 1*SP URI ) RDQUOT, URI = absoluteURI / abs-path.
func scanDomainURIs(s string) ([]string, string, bool) {
	qs, r, ok := paramQuoted(s)
	if !ok {
		return nil, s, false
	}
	us := strings.Fields(qs)
	if len(us) == 0 {
		return nil, s, false
	}
	for _, u := range us {
		if _, rest, err := grammar.AbsPath(u); err == nil && rest == "" {
			continue
		}
		if _, rest, err := grammar.ParseAbsoluteURI(u); err == nil && rest == "" {
			continue
		}
		return nil, s, false
	}
	return us, r, true
}

// scanQOPOptions consumes LDQUOT qop-value *( "," qop-value ) RDQUOT.
func scanQOPOptions(s string) ([]QOP, string, bool) {
	qs, r, ok := paramQuoted(s)
	if !ok {
		return nil, s, false
	}
	var qops []QOP
	for v := range strings.SplitSeq(qs, ",") {
		v = strings.TrimSpace(v)
		if !grammar.IsToken(v) {
			return nil, s, false
		}
		qops = append(qops, QOP(v))
	}
	return qops, r, true
}

func digestChallengeParam(name, s string) (DigestParam, string, bool, error) {
	switch util.LCase(name) {
	case "realm":
		if v, r, ok := scanQuotedOK(s); ok {
			return DigestRealm{Value: v}, r, true, nil
		}
	case "domain":
		if us, r, ok := scanDomainURIs(s); ok {
			return DigestDomain{URIs: us}, r, true, nil
		}
	case "nonce":
		if v, r, ok := scanQuotedOK(s); ok {
			return DigestNonce{Value: v}, r, true, nil
		}
	case "opaque":
		if v, r, ok := scanQuotedOK(s); ok {
			return DigestOpaque{Value: v}, r, true, nil
		}
	case "stale":
		if t, r, ok := paramToken(s); ok && (util.EqFold(t, "true") || util.EqFold(t, "false")) {
			return DigestStale{Stale: util.EqFold(t, "true")}, r, true, nil
		}
	case "algorithm":
		if t, r, ok := paramToken(s); ok {
			return DigestAlgorithm{Algorithm: Algorithm(t)}, r, true, nil
		}
	case "qop":
		if qops, r, ok := scanQOPOptions(s); ok {
			return DigestQOPOptions{QOPs: qops}, r, true, nil
		}
	}
	return nil, s, false, nil
}

func digestResponseParam(name, s string) (DigestResponseParam, string, bool, error) {
	switch util.LCase(name) {
	case "username":
		if v, r, ok := scanQuotedOK(s); ok {
			return DigestUsername{Value: v}, r, true, nil
		}
	case "realm":
		if v, r, ok := scanQuotedOK(s); ok {
			return DigestRealm{Value: v}, r, true, nil
		}
	case "nonce":
		if v, r, ok := scanQuotedOK(s); ok {
			return DigestNonce{Value: v}, r, true, nil
		}
	case "uri":
		if v, r, ok := scanQuotedOK(s); ok {
			return DigestURI{URI: v}, r, true, nil
		}
	case "response":
		if v, r, ok := scanQuotedLHex(s, 32); ok {
			return DigestResponse{Value: v}, r, true, nil
		}
	case "algorithm":
		if t, r, ok := paramToken(s); ok {
			return DigestAlgorithm{Algorithm: Algorithm(t)}, r, true, nil
		}
	case "cnonce":
		if v, r, ok := scanQuotedOK(s); ok {
			return DigestCNonce{Value: v}, r, true, nil
		}
	case "opaque":
		if v, r, ok := scanQuotedOK(s); ok {
			return DigestOpaque{Value: v}, r, true, nil
		}
	case "qop":
		if t, r, ok := paramToken(s); ok {
			return DigestQOP{QOP: QOP(t)}, r, true, nil
		}
	case "nc":
		if v, r, ok := scanLHex(s, 8); ok {
			return DigestNonceCount{Value: v}, r, true, nil
		}
	}
	return nil, s, false, nil
}

func authInfoParam(name, s string) (AuthInfo, string, bool, error) {
	switch util.LCase(name) {
	case "nextnonce":
		if v, r, ok := scanQuotedOK(s); ok {
			return DigestNextNonce{Value: v}, r, true, nil
		}
	case "qop":
		if t, r, ok := paramToken(s); ok {
			return DigestQOP{QOP: QOP(t)}, r, true, nil
		}
	case "rspauth":
		if v, r, ok := scanQuotedLHex(s, -1); ok {
			return DigestRspAuth{Value: v}, r, true, nil
		}
	case "cnonce":
		if v, r, ok := scanQuotedOK(s); ok {
			return DigestCNonce{Value: v}, r, true, nil
		}
	case "nc":
		if v, r, ok := scanLHex(s, 8); ok {
			return DigestNonceCount{Value: v}, r, true, nil
		}
	}
	return nil, s, false, nil
}

// scanScheme consumes auth-scheme LWS.
func scanScheme(s string) (string, string, error) {
	scheme, r, err := grammar.Token(s)
	if err != nil {
		return "", s, errtrace.Wrap(grammar.Wrap("auth-scheme", err))
	}
	if _, r, err = grammar.LWS(r); err != nil {
		return "", s, errtrace.Wrap(grammar.Wrap("auth-scheme", err))
	}
	return scheme, r, nil
}

// scanChallenge consumes challenge = ( "Digest" LWS digest-cln *( COMMA digest-cln ) ) / other-challenge.
func scanChallenge(s string) (Challenge, string, error) {
	scheme, r, err := scanScheme(s)
	if err != nil {
		return Challenge{}, s, errtrace.Wrap(err)
	}
	c := Challenge{Scheme: scheme}
	if c.IsDigest() {
		c.Digest, r, err = grammar.List("digest-cln", r, func(s string) (DigestParam, string, error) {
			return errtrace.Wrap3(scanAuthItem(s, digestChallengeParam, func(p AuthParam) DigestParam { return p }))
		})
	} else {
		c.Params, r, err = scanAuthParams(r)
	}
	if err != nil {
		return Challenge{}, s, errtrace.Wrap(err)
	}
	return c, r, nil
}

// scanCredentials consumes credentials = ( "Digest" LWS digest-response ) / other-response.
func scanCredentials(s string) (Credentials, string, error) {
	scheme, r, err := scanScheme(s)
	if err != nil {
		return Credentials{}, s, errtrace.Wrap(err)
	}
	c := Credentials{Scheme: scheme}
	if c.IsDigest() {
		c.Digest, r, err = grammar.List("digest-response", r, func(s string) (DigestResponseParam, string, error) {
			return errtrace.Wrap3(scanAuthItem(s, digestResponseParam, func(p AuthParam) DigestResponseParam { return p }))
		})
	} else {
		c.Params, r, err = scanAuthParams(r)
	}
	if err != nil {
		return Credentials{}, s, errtrace.Wrap(err)
	}
	return c, r, nil
}

// WWWAuthenticate represents the WWW-Authenticate header field.
type WWWAuthenticate struct{ Challenge }

func (*WWWAuthenticate) CanonicName() Name { return "WWW-Authenticate" }

func (*WWWAuthenticate) CompactName() Name { return "WWW-Authenticate" }

func (hdr *WWWAuthenticate) RenderValue() string { return hdr.Challenge.String() }

func (hdr *WWWAuthenticate) String() string { return render(hdr) }

func parseWWWAuthenticate(s string) (Header, string, error) {
	c, r, err := scanChallenge(s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return &WWWAuthenticate{c}, r, nil
}

// ProxyAuthenticate represents the Proxy-Authenticate header field.
type ProxyAuthenticate struct{ Challenge }

func (*ProxyAuthenticate) CanonicName() Name { return "Proxy-Authenticate" }

func (*ProxyAuthenticate) CompactName() Name { return "Proxy-Authenticate" }

func (hdr *ProxyAuthenticate) RenderValue() string { return hdr.Challenge.String() }

func (hdr *ProxyAuthenticate) String() string { return render(hdr) }

func parseProxyAuthenticate(s string) (Header, string, error) {
	c, r, err := scanChallenge(s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return &ProxyAuthenticate{c}, r, nil
}

// Authorization represents the Authorization header field.
type Authorization struct{ Credentials }

func (*Authorization) CanonicName() Name { return "Authorization" }

func (*Authorization) CompactName() Name { return "Authorization" }

func (hdr *Authorization) RenderValue() string { return hdr.Credentials.String() }

func (hdr *Authorization) String() string { return render(hdr) }

func parseAuthorization(s string) (Header, string, error) {
	c, r, err := scanCredentials(s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return &Authorization{c}, r, nil
}

// ProxyAuthorization represents the Proxy-Authorization header field.
type ProxyAuthorization struct{ Credentials }

func (*ProxyAuthorization) CanonicName() Name { return "Proxy-Authorization" }

func (*ProxyAuthorization) CompactName() Name { return "Proxy-Authorization" }

func (hdr *ProxyAuthorization) RenderValue() string { return hdr.Credentials.String() }

func (hdr *ProxyAuthorization) String() string { return render(hdr) }

func parseProxyAuthorization(s string) (Header, string, error) {
	c, r, err := scanCredentials(s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return &ProxyAuthorization{c}, r, nil
}

// AuthenticationInfo represents the Authentication-Info header field.
type AuthenticationInfo []AuthInfo

func (AuthenticationInfo) CanonicName() Name { return "Authentication-Info" }

func (AuthenticationInfo) CompactName() Name { return "Authentication-Info" }

func (hdr AuthenticationInfo) RenderValue() string { return joinStrings(hdr, ", ") }

func (hdr AuthenticationInfo) String() string { return render(hdr) }

func parseAuthenticationInfo(s string) (Header, string, error) {
	ais, r, err := grammar.List("Authentication-Info", s, func(s string) (AuthInfo, string, error) {
		return errtrace.Wrap3(scanAuthItem[AuthInfo](s, authInfoParam, nil))
	})
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return AuthenticationInfo(ais), r, nil
}
