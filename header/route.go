package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

// RouteHop is an element of Route and Record-Route headers: name-addr *( SEMI rr-param ).
type RouteHop struct {
	NameAddr
	Params GenericParams
}

func (h RouteHop) String() string { return h.NameAddr.String() + h.Params.String() }

func scanRouteHops(rule, s string) ([]RouteHop, string, error) {
	return errtrace.Wrap3(grammar.List(rule, s, func(s string) (RouteHop, string, error) {
		addr, r, err := scanNameAddr(s)
		if err != nil {
			return RouteHop{}, s, errtrace.Wrap(err)
		}
		ps, r, err := scanGenericParams(r)
		if err != nil {
			return RouteHop{}, s, errtrace.Wrap(err)
		}
		return RouteHop{NameAddr: addr, Params: ps}, r, nil
	}))
}

// Route represents the Route header field.
type Route []RouteHop

func (Route) CanonicName() Name { return "Route" }

func (Route) CompactName() Name { return "Route" }

func (hdr Route) RenderValue() string { return joinStrings(hdr, ", ") }

func (hdr Route) String() string { return render(hdr) }

func parseRoute(s string) (Header, string, error) {
	hops, r, err := scanRouteHops("Route", s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Route(hops), r, nil
}

// RecordRoute represents the Record-Route header field.
type RecordRoute []RouteHop

func (RecordRoute) CanonicName() Name { return "Record-Route" }

func (RecordRoute) CompactName() Name { return "Record-Route" }

func (hdr RecordRoute) RenderValue() string { return joinStrings(hdr, ", ") }

func (hdr RecordRoute) String() string { return render(hdr) }

func parseRecordRoute(s string) (Header, string, error) {
	hops, r, err := scanRouteHops("Record-Route", s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return RecordRoute(hops), r, nil
}

// ReplyTo represents the Reply-To header field.
type ReplyTo struct {
	NameAddr
	Params GenericParams
}

func (*ReplyTo) CanonicName() Name { return "Reply-To" }

func (*ReplyTo) CompactName() Name { return "Reply-To" }

func (hdr *ReplyTo) RenderValue() string { return renderAddress(hdr.NameAddr) + hdr.Params.String() }

func (hdr *ReplyTo) String() string { return render(hdr) }

func parseReplyTo(s string) (Header, string, error) {
	addr, r, err := scanAddress(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("Reply-To", err))
	}
	ps, r, err := scanGenericParams(r)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return &ReplyTo{NameAddr: addr, Params: ps}, r, nil
}
