package header

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/types"
	"github.com/ghettovoice/sipparser/internal/util"
)

// ViaParam is a Via parameter: [TTLParam], [MAddrParam], [ReceivedParam], [BranchParam] or [ExtParam].
type ViaParam interface {
	String() string
	viaParam()
}

// TTLParam is the "ttl" parameter of Via.
type TTLParam struct{ TTL int32 }

func (p TTLParam) String() string { return "ttl=" + fmtInt32(p.TTL) }

// MAddrParam is the "maddr" parameter of Via.
type MAddrParam struct{ Host string }

func (p MAddrParam) String() string { return "maddr=" + p.Host }

// ReceivedParam is the "received" parameter of Via, Addr is an IPv4 or IPv6 address.
type ReceivedParam struct{ Addr string }

func (p ReceivedParam) String() string { return "received=" + p.Addr }

// BranchParam is the "branch" parameter of Via.
type BranchParam struct{ Value string }

func (p BranchParam) String() string { return "branch=" + p.Value }

// MagicCookie starts branch values of RFC 3261 compliant transactions.
const MagicCookie = "z9hG4bK"

// IsRFC3261 reports whether the branch starts with the magic cookie.
func (p BranchParam) IsRFC3261() bool {
	return len(p.Value) > len(MagicCookie) && strings.HasPrefix(p.Value, MagicCookie)
}

func (TTLParam) viaParam()      {}
func (MAddrParam) viaParam()    {}
func (ReceivedParam) viaParam() {}
func (BranchParam) viaParam()   {}
func (ExtParam) viaParam()      {}

func viaKnownParam(name, s string) (ViaParam, string, bool, error) {
	switch {
	case util.EqFold(name, "ttl"):
		ttl, r, ok, err := paramTTL(s)
		if !ok {
			return nil, s, false, errtrace.Wrap(err)
		}
		return TTLParam{TTL: ttl}, r, true, nil
	case util.EqFold(name, "maddr"):
		h, r, err := grammar.Host(s)
		if err != nil {
			return nil, s, false, errtrace.Wrap(softOnly(err))
		}
		return MAddrParam{Host: h}, r, true, nil
	case util.EqFold(name, "received"):
		ip, r, err := grammar.IPv4(s)
		if err != nil {
			if ip, r, err = grammar.IPv6(s); err != nil {
				return nil, s, false, nil
			}
		}
		return ReceivedParam{Addr: ip}, r, true, nil
	case util.EqFold(name, "branch"):
		t, r, ok := paramToken(s)
		if !ok {
			return nil, s, false, nil
		}
		return BranchParam{Value: t}, r, true, nil
	default:
		return nil, s, false, nil
	}
}

// ProtoInfo is the protocol name and version of the sent-protocol.
type ProtoInfo struct {
	Name    string
	Version string
}

func (p ProtoInfo) String() string { return p.Name + "/" + p.Version }

// ViaHop is an element of the Via header: sent-protocol LWS sent-by *( SEMI via-params ).
type ViaHop struct {
	Proto     ProtoInfo
	Transport TransportProto
	Addr      Addr
	Params    []ViaParam
}

// Protocol returns the sent-protocol, for example "SIP/2.0/UDP".
func (h ViaHop) Protocol() string { return h.Proto.String() + "/" + string(h.Transport) }

// SentBy returns the sent-by address.
func (h ViaHop) SentBy() Addr { return h.Addr }

// Branch returns the "branch" parameter value.
func (h ViaHop) Branch() (string, bool) {
	for _, p := range h.Params {
		if b, ok := p.(BranchParam); ok {
			return b.Value, true
		}
	}
	return "", false
}

// Received returns the "received" parameter value.
func (h ViaHop) Received() (string, bool) {
	for _, p := range h.Params {
		if rp, ok := p.(ReceivedParam); ok {
			return rp.Addr, true
		}
	}
	return "", false
}

func (h ViaHop) String() string {
	return h.Protocol() + " " + h.Addr.String() + renderParams(h.Params)
}

// Via represents the Via header field.
type Via []ViaHop

func (Via) CanonicName() Name { return "Via" }

func (Via) CompactName() Name { return "v" }

func (hdr Via) RenderValue() string { return joinStrings(hdr, ", ") }

func (hdr Via) String() string { return render(hdr) }

func parseVia(s string) (Header, string, error) {
	hops, r, err := grammar.List("Via", s, scanViaHop)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Via(hops), r, nil
}

// scanViaHop consumes via-parm = sent-protocol LWS sent-by *( SEMI via-params ),
// sent-protocol = protocol-name SLASH protocol-version SLASH transport,
// sent-by = host [ COLON port ].
func scanViaHop(s string) (ViaHop, string, error) {
	var hop ViaHop

	name, r, err := grammar.Token(s)
	if err != nil {
		return ViaHop{}, s, errtrace.Wrap(grammar.Wrap("protocol-name", err))
	}
	if util.EqFold(name, "SIP") {
		name = "SIP"
	}
	if r, err = grammar.Slash(r); err != nil {
		return ViaHop{}, s, errtrace.Wrap(grammar.Wrap("sent-protocol", err))
	}
	ver, r, err := grammar.Token(r)
	if err != nil {
		return ViaHop{}, s, errtrace.Wrap(grammar.Wrap("protocol-version", err))
	}
	if r, err = grammar.Slash(r); err != nil {
		return ViaHop{}, s, errtrace.Wrap(grammar.Wrap("sent-protocol", err))
	}
	tp, r, err := grammar.Token(r)
	if err != nil {
		return ViaHop{}, s, errtrace.Wrap(grammar.Wrap("transport", err))
	}
	hop.Proto = ProtoInfo{Name: name, Version: ver}
	hop.Transport = TransportProto(tp)

	if _, r, err = grammar.LWS(r); err != nil {
		return ViaHop{}, s, errtrace.Wrap(grammar.Wrap("via-parm", err))
	}

	host, r, err := grammar.Host(r)
	if err != nil {
		return ViaHop{}, s, errtrace.Wrap(grammar.Wrap("sent-by", err))
	}
	hop.Addr = types.Host(host)
	if r2, err := grammar.Colon(r); err == nil {
		port, r3, err := grammar.Port(r2)
		if err != nil {
			return ViaHop{}, s, errtrace.Wrap(grammar.Wrap("sent-by", err))
		}
		hop.Addr, r = types.HostPort(host, port), r3
	}

	if hop.Params, r, err = scanParams(r, viaKnownParam, func(p ExtParam) ViaParam { return p }); err != nil {
		return ViaHop{}, s, errtrace.Wrap(err)
	}
	return hop, r, nil
}
