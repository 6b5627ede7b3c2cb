package grammar

import (
	"github.com/ghettovoice/abnf"
	"github.com/miekg/dns"

	"github.com/ghettovoice/sipparser/internal/constraints"
)

const (
	errLabelHyphen = textError("label starts or ends with a hyphen")
	errLabelAlpha  = textError("top label does not start with a letter")
)

var (
	dot   = lit(".")
	colon = lit(":")

	// label = 1*( alphanum / "-" ), its edges are checked by domainlabel and toplabel
	label = many("label", 1, abnf.AltFirst("alphanum / \"-\"", alphanum, lit("-")))
	// domainlabel = alphanum / alphanum *( alphanum / "-" ) alphanum
	domainLabel = check("domainlabel", label, func(n *abnf.Node) bool { return domainLabelError(n.Value) == nil })
	// toplabel = ALPHA / ALPHA *( alphanum / "-" ) alphanum
	topLabel = check("toplabel", label, func(n *abnf.Node) bool { return topLabelError(n.Value) == nil })

	domainLabelDot = abnf.Concat("domainlabel \".\"", domainLabel, dot)
	// hostname = *( domainlabel "." ) toplabel [ "." ]
	//
	// A name that ends with a dot is also matched as 1*( domainlabel "." )
	// when its last label is a top label.
	hostname = abnf.Alt("hostname",
		abnf.Concat("*( domainlabel \".\" ) toplabel [ \".\" ]",
			many("*( domainlabel \".\" )", 0, domainLabelDot),
			topLabel,
			abnf.Optional("[ \".\" ]", dot),
		),
		check("FQDN", many("1*( domainlabel \".\" )", 1, domainLabelDot), func(n *abnf.Node) bool {
			name := string(n.Value)
			if !dns.IsFqdn(name) {
				return false
			}
			lbls := dns.SplitDomainName(name)
			return len(lbls) > 0 && topLabelError(lbls[len(lbls)-1]) == nil
		}),
	)

	// IPv4address = 1*3DIGIT "." 1*3DIGIT "." 1*3DIGIT "." 1*3DIGIT
	ipv4Octet = abnf.Repeat("1*3DIGIT", 1, 3, core.DIGIT)
	ipv4      = abnf.Concat("IPv4address", ipv4Octet, dot, ipv4Octet, dot, ipv4Octet, dot, ipv4Octet)

	// hex4 = 1*4HEXDIG
	hex4 = abnf.Repeat("hex4", 1, 4, core.HEXDIG)
	// hexseq = hex4 *( ":" hex4)
	hexseq = abnf.ConcatAll("hexseq", hex4, abnf.Repeat0Inf("*( \":\" hex4 )", abnf.ConcatAll("\":\" hex4", colon, hex4)))
	// hexpart = hexseq / hexseq "::" [ hexseq ] / "::" [ hexseq ]
	hexpart = abnf.Alt("hexpart",
		hexseq,
		abnf.ConcatAll("hexseq \"::\" [ hexseq ]", hexseq, lit("::"), abnf.Optional("[ hexseq ]", hexseq)),
		abnf.ConcatAll("\"::\" [ hexseq ]", lit("::"), abnf.Optional("[ hexseq ]", hexseq)),
	)
	// IPv6address = hexpart [ ":" IPv4address ]
	//
	// An IPv4 address right after "::" is accepted as well.
	ipv6 = abnf.Alt("IPv6address",
		abnf.Concat("hexpart [ \":\" IPv4address ]",
			hexpart,
			abnf.Optional("[ \":\" IPv4address ]", abnf.Concat("\":\" IPv4address", colon, ipv4)),
		),
		abnf.Concat("[ hexseq ] \"::\" IPv4address", abnf.Optional("[ hexseq ]", hexseq), lit("::"), ipv4),
	)
	// IPv6reference = "[" IPv6address "]"
	ipv6Reference = abnf.Concat("IPv6reference", lit("["), ipv6, lit("]"))

	// host = hostname / IPv4address / IPv6reference
	host = abnf.Alt("host", hostname, ipv4, ipv6Reference)
	// hostport = host [ ":" port ]
	hostport = abnf.Concat("hostport", host, abnf.Optional("[ \":\" port ]", abnf.Concat("\":\" port", colon, digits)))
)

func domainLabelError[T constraints.Byteseq](lbl T) error {
	if len(lbl) == 0 {
		return errLabelHyphen
	}
	if lbl[0] == '-' || lbl[len(lbl)-1] == '-' {
		return errLabelHyphen
	}
	return nil
}

func topLabelError[T constraints.Byteseq](lbl T) error {
	if len(lbl) == 0 || lbl[len(lbl)-1] == '-' {
		return errLabelHyphen
	}
	if !IsCharAlpha(lbl[0]) {
		return errLabelAlpha
	}
	return nil
}

// hostnameError classifies a failed hostname by its first label.
func hostnameError(s string) error {
	n, err := match("hostname", label, s)
	if err != nil {
		return err
	}
	lbl, rest := s[:n.Len()], s[n.Len():]
	if _, err := skip("hostname", dot, rest); err == nil {
		if err := domainLabelError(lbl); err != nil {
			return FailKind(KindDomainLabel, "domainlabel", s, err)
		}
		return Fail("hostname", s)
	}
	if err := topLabelError(lbl); err != nil {
		return FailKind(KindHostname, "toplabel", s, err)
	}
	return Fail("hostname", s)
}

// hostError classifies a failed host.
func hostError(s string) error {
	if _, err := skip("IPv6reference", lit("["), s); err == nil {
		return Fail("IPv6reference", s)
	}
	return Wrap("host", hostnameError(s))
}

// Hostname consumes *( domainlabel "." ) toplabel [ "." ].
//
// A hostname that ends with a dot is matched as 1*( domainlabel "." ),
// then its last label is checked as a top label.
func Hostname(s string) (string, string, error) {
	h, rest, err := scan("hostname", hostname, s)
	if err != nil {
		return "", s, hostnameError(s)
	}
	return h, rest, nil
}

// IPv4 consumes 1*3DIGIT "." 1*3DIGIT "." 1*3DIGIT "." 1*3DIGIT.
// Octet values are not checked.
func IPv4(s string) (string, string, error) { return scan("IPv4address", ipv4, s) }

// IPv6 consumes hexpart [ ":" IPv4address ].
func IPv6(s string) (string, string, error) { return scan("IPv6address", ipv6, s) }

// IPv6Reference consumes "[" IPv6address "]".
func IPv6Reference(s string) (string, string, error) { return scan("IPv6reference", ipv6Reference, s) }

// Host consumes hostname / IPv4address / IPv6reference.
// The longest match of hostname and IPv4address wins.
func Host(s string) (string, string, error) {
	h, rest, err := scan("host", host, s)
	if err != nil {
		return "", s, hostError(s)
	}
	return h, rest, nil
}

// IsHost reports whether s is a complete host.
func IsHost[T ~string | ~[]byte](s T) bool {
	_, rest, err := Host(string(s))
	return err == nil && rest == ""
}

// IsToken reports whether s is a complete token.
func IsToken[T ~string | ~[]byte](s T) bool {
	_, rest, err := Token(string(s))
	return err == nil && rest == ""
}

// Port consumes 1*DIGIT fitting a signed 32-bit integer.
func Port(s string) (int32, string, error) { return Int32("port", s) }

// HostPort consumes host [ ":" port ].
func HostPort(s string) (host string, port int32, hasPort bool, rest string, err error) {
	n, err := match("hostport", hostport, s)
	if err != nil {
		return "", 0, false, s, hostError(s)
	}
	host, rest = nodeText(s, n.Children[0]), s[n.Len():]
	if p := n.Children[1]; !p.IsEmpty() {
		if port, _, err = Port(nodeText(s, p)[1:]); err != nil {
			return "", 0, false, s, err
		}
		hasPort = true
	}
	return host, port, hasPort, rest, nil
}
