package types

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// Addr is a container for host and optional port.
type Addr struct {
	host    string
	port    int32
	hasPort bool
}

// Host returns an [Addr] containing the provided host and no port.
func Host(host string) Addr { return Addr{host: host} }

// HostPort returns an [Addr] containing the provided host and port.
func HostPort(host string, port int32) Addr { return Addr{host: host, port: port, hasPort: true} }

// ParseAddr parses a "host[:port]" string into an [Addr].
func ParseAddr[T ~string | ~[]byte](s T) (Addr, error) {
	host, port, hasPort, rest, err := grammar.HostPort(string(s))
	if err != nil {
		return Addr{}, errtrace.Wrap(err)
	}
	if rest != "" {
		return Addr{}, errtrace.Wrap(grammar.Fail("hostport", rest))
	}
	return Addr{host: host, port: port, hasPort: hasPort}, nil
}

// Host returns the host as it appeared in the input, IPv6 references keep brackets.
func (addr Addr) Host() string { return addr.host }

// Port returns the port, in case it is set, and bool flag indicating whether it is set.
func (addr Addr) Port() (int32, bool) { return addr.port, addr.hasPort }

// IP returns the address when the host is an IP literal.
// Octets of IPv4 literals are not range checked by the grammar, so parsing may fail here.
func (addr Addr) IP() (netip.Addr, bool) {
	ip, err := netip.ParseAddr(strings.Trim(addr.host, "[]"))
	return ip, err == nil
}

// IsFQDN reports whether the host is a domain name terminated with a dot.
func (addr Addr) IsFQDN() bool {
	if _, ok := addr.IP(); ok || strings.HasPrefix(addr.host, "[") {
		return false
	}
	return dns.IsFqdn(addr.host)
}

// Labels returns domain labels of the host name.
func (addr Addr) Labels() []string {
	if _, ok := addr.IP(); ok || strings.HasPrefix(addr.host, "[") {
		return nil
	}
	return dns.SplitDomainName(addr.host)
}

func (addr Addr) IsZero() bool { return addr.host == "" && !addr.hasPort }

func (addr Addr) IsValid() bool { return grammar.IsHost(addr.host) }

func (addr Addr) Equal(val any) bool {
	var other Addr
	switch v := val.(type) {
	case Addr:
		other = v
	case *Addr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(addr.host, other.host) && addr.port == other.port && addr.hasPort == other.hasPort
}

// String formats the address as host[:port].
func (addr Addr) String() string {
	if !addr.hasPort {
		return addr.host
	}
	return addr.host + ":" + strconv.FormatInt(int64(addr.port), 10)
}

// Format implements fmt.Formatter to support custom formatting verbs for Addr values.
func (addr Addr) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		if verb == 'v' && (f.Flag('+') || f.Flag('#')) {
			fmt.Fprintf(f, "types.Addr{host:%q, port:%d, hasPort:%t}", addr.host, addr.port, addr.hasPort)
			return
		}
		fmt.Fprint(f, addr.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(addr.String()))
	}
}
