package grammar

import "github.com/ghettovoice/abnf"

// Generic URI rules of RFC 2396 referenced by RFC 3261 section 25.1.
var (
	// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
	schemeChar = abnf.Alt("scheme-char", alphanum, oneOf("scheme-mark", "+-."))
	scheme     = abnf.Concat("scheme", core.ALPHA, many("*scheme-char", 0, schemeChar))

	// pchar = unreserved / escaped / ":" / "@" / "&" / "=" / "+" / "$" / ","
	pchar = abnf.Alt("pchar", unreserved, escaped, oneOf("pchar-mark", ":@&=+$,"))
	// segment = *pchar *( ";" param ), param = *pchar
	segment = abnf.Concat("segment",
		many("*pchar", 0, pchar),
		many("*( \";\" param )", 0, abnf.Concat("\";\" param", lit(";"), many("param", 0, pchar))),
	)
	// abs-path = "/" path-segments, path-segments = segment *( "/" segment )
	absPath = abnf.Concat("abs-path", lit("/"), segment,
		many("*( \"/\" segment )", 0, abnf.Concat("\"/\" segment", lit("/"), segment)))
	// query = *uric
	query = many("query", 0, uric)

	// userinfo = *( unreserved / escaped / ";" / ":" / "&" / "=" / "+" / "$" / "," ) "@"
	authUserinfo = abnf.Concat("userinfo \"@\"",
		many("userinfo", 0, abnf.Alt("userinfo-char", unreserved, escaped, oneOf("userinfo-mark", ";:&=+$,"))),
		lit("@"),
	)
	// srvr = [ [ userinfo "@" ] hostport ]
	srvr = abnf.Optional("srvr", abnf.Concat("[ userinfo \"@\" ] hostport", abnf.Optional("[ userinfo \"@\" ]", authUserinfo), hostport))
	// reg-name = 1*( unreserved / escaped / "$" / "," / ";" / ":" / "@" / "&" / "=" / "+" )
	regName = many("reg-name", 1, abnf.Alt("reg-name-char", unreserved, escaped, oneOf("reg-name-mark", "$,;:@&=+")))
	// authority = srvr / reg-name
	authority = abnf.Alt("authority", srvr, regName)

	// uric-no-slash = unreserved / escaped / ";" / "?" / ":" / "@" / "&" / "=" / "+" / "$" / ","
	uricNoSlash = abnf.Alt("uric-no-slash", unreserved, escaped, oneOf("uric-no-slash-mark", ";?:@&=+$,"))
	// opaque-part = uric-no-slash *uric
	opaquePart = abnf.Concat("opaque-part", uricNoSlash, many("*uric", 0, uric))
	// net-path = "//" authority [ abs-path ]
	netPath = abnf.Concat("net-path", lit("//"), authority, abnf.Optional("[ abs-path ]", absPath))
	// hier-part = ( net-path / abs-path ) [ "?" query ]
	hierPart = abnf.Concat("hier-part",
		abnf.AltFirst("net-path / abs-path", netPath, absPath),
		abnf.Optional("[ \"?\" query ]", abnf.Concat("\"?\" query", lit("?"), query)),
	)
	// absoluteURI = scheme ":" ( hier-part / opaque-part )
	absoluteURI = abnf.Concat("absoluteURI", scheme, colon, abnf.AltFirst("hier-part / opaque-part", hierPart, opaquePart))

	user         = many("user", 1, userChar)
	userBare     = many("user", 1, abnf.Alt("user-char", unreserved, escaped, oneOf("user-unreserved", "&=+$/")))
	password     = many("password", 0, passwordChar)
	passwordBare = many("password", 0, abnf.Alt("password-char", unreserved, escaped, oneOf("password-mark", "&=+$")))
	paramChars   = many("paramchar", 1, paramChar)
	headerChars  = many("hname", 0, headerChar)
)

// AbsPath consumes "/" segment *( "/" segment ).
func AbsPath(s string) (string, string, error) { return scan("abs-path", absPath, s) }

// AbsoluteURI holds the parts of a generic absolute URI.
type AbsoluteURI struct {
	Scheme    string
	Authority string
	HasAuth   bool
	Path      string
	Query     string
	HasQuery  bool
	Opaque    string
}

// ParseAbsoluteURI consumes scheme ":" ( hier-part / opaque-part ).
//
//	hier-part   = ( net-path / abs-path ) [ "?" query ]
//	net-path    = "//" authority [ abs-path ]
//	opaque-part = uric-no-slash *uric
func ParseAbsoluteURI(s string) (AbsoluteURI, string, error) {
	var u AbsoluteURI
	n, err := match("absoluteURI", absoluteURI, s)
	if err != nil {
		return u, s, err
	}
	u.Scheme = nodeText(s, n.Children[0])

	part := n.Children[2].Children[0]
	if part.Key == "opaque-part" {
		u.Opaque = nodeText(s, part)
		return u, s[n.Len():], nil
	}

	path := part.Children[0].Children[0]
	if path.Key == "net-path" {
		u.HasAuth = true
		u.Authority = nodeText(s, path.Children[1])
		if p := path.Children[2]; !p.IsEmpty() {
			u.Path = nodeText(s, p)
		}
	} else {
		u.Path = nodeText(s, path)
	}
	if q := part.Children[1]; !q.IsEmpty() {
		u.HasQuery = true
		u.Query = nodeText(s, q)[1:]
	}
	return u, s[n.Len():], nil
}

// User consumes 1*( unreserved / escaped / user-unreserved ).
func User(s string) (string, string, error) { return scan("user", user, s) }

// BareUser is [User] that stops at a comma, a semicolon or a question mark.
// It is used for URIs that are not enclosed in angle brackets.
func BareUser(s string) (string, string, error) { return scan("user", userBare, s) }

// Password consumes *( unreserved / escaped / "&" / "=" / "+" / "$" / "," ).
func Password(s string) (string, string) {
	p, rest, _ := scan("password", password, s)
	return p, rest
}

// BarePassword is [Password] that stops at a comma.
func BarePassword(s string) (string, string) {
	p, rest, _ := scan("password", passwordBare, s)
	return p, rest
}

// ParamChars consumes 1*paramchar.
func ParamChars(s string) (string, string, error) { return scan("paramchar", paramChars, s) }

// HeaderChars consumes *( hnv-unreserved / unreserved / escaped ).
func HeaderChars(s string) (string, string) {
	h, rest, _ := scan("hname", headerChars, s)
	return h, rest
}
