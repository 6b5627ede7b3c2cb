package uri

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// Param is a SIP URI parameter.
// It is one of [TransportParam], [UserParam], [MethodParam], [TTLParam],
// [MAddrParam], [LRParam] or [OtherParam].
type Param interface {
	String() string
	uriParam()
}

// UserType is the value of the user URI parameter.
type UserType string

const (
	UserTypePhone UserType = "phone"
	UserTypeIP    UserType = "ip"
)

// IsExtension reports whether the value is neither phone nor ip.
func (t UserType) IsExtension() bool {
	return !util.EqFold(t, UserTypePhone) && !util.EqFold(t, UserTypeIP)
}

// TransportParam is the transport parameter.
type TransportParam struct{ Transport TransportProto }

// UserParam is the user parameter.
type UserParam struct{ User UserType }

// MethodParam is the method parameter.
type MethodParam struct{ Method RequestMethod }

// TTLParam is the ttl parameter, its value is in range 0-255.
type TTLParam struct{ TTL int32 }

// MAddrParam is the maddr parameter.
type MAddrParam struct{ Host string }

// LRParam is the lr flag parameter.
type LRParam struct{}

// OtherParam is any other parameter, kept as raw text.
// Empty Value means the parameter has no value.
type OtherParam struct {
	Name  string
	Value string
}

func (TransportParam) uriParam() {}
func (UserParam) uriParam()      {}
func (MethodParam) uriParam()    {}
func (TTLParam) uriParam()       {}
func (MAddrParam) uriParam()     {}
func (LRParam) uriParam()        {}
func (OtherParam) uriParam()     {}

func (p TransportParam) String() string { return "transport=" + string(p.Transport) }
func (p UserParam) String() string      { return "user=" + string(p.User) }
func (p MethodParam) String() string    { return "method=" + string(p.Method) }
func (p TTLParam) String() string       { return "ttl=" + strconv.FormatInt(int64(p.TTL), 10) }
func (p MAddrParam) String() string     { return "maddr=" + p.Host }
func (LRParam) String() string          { return "lr" }

func (p OtherParam) String() string {
	if p.Value == "" {
		return p.Name
	}
	return p.Name + "=" + p.Value
}

func paramsEqual(p1, p2 Param) bool {
	switch v1 := p1.(type) {
	case TransportParam:
		v2, ok := p2.(TransportParam)
		return ok && v1.Transport.Equal(v2.Transport)
	case UserParam:
		v2, ok := p2.(UserParam)
		return ok && util.EqFold(v1.User, v2.User)
	case MAddrParam:
		v2, ok := p2.(MAddrParam)
		return ok && util.EqFold(v1.Host, v2.Host)
	case OtherParam:
		v2, ok := p2.(OtherParam)
		return ok && util.EqFold(v1.Name, v2.Name) && util.EqFold(v1.Value, v2.Value)
	default:
		return p1 == p2
	}
}

// scanParams consumes *( ";" uri-parameter ).
//
//	uri-parameter   = transport-param / user-param / method-param
//	                  / ttl-param / maddr-param / lr-param / other-param
//	other-param     = pname [ "=" pvalue ]
//
// A known parameter whose value does not fit its grammar is kept as [OtherParam],
// except ttl whose value out of range is a fatal failure.
func scanParams(s string) ([]Param, string, error) {
	var ps []Param
	for s != "" && s[0] == ';' {
		p, r, err := scanParam(s[1:])
		if err != nil {
			if grammar.IsFatal(err) {
				return nil, s, errtrace.Wrap(err)
			}
			break
		}
		ps = append(ps, p)
		s = r
	}
	return ps, s, nil
}

func scanParam(s string) (Param, string, error) {
	name, r, err := grammar.ParamChars(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("uri-parameter", err))
	}
	var value, vs string
	if r != "" && r[0] == '=' {
		vs = r[1:]
		if value, r, err = grammar.ParamChars(vs); err != nil {
			return nil, s, errtrace.Wrap(grammar.Wrap("uri-parameter", err))
		}
	}
	other := OtherParam{Name: name, Value: value}

	if value == "" {
		if util.EqFold(name, "lr") {
			return LRParam{}, r, nil
		}
		return other, r, nil
	}

	switch {
	case util.EqFold(name, "transport"):
		if grammar.IsToken(value) {
			return TransportParam{Transport: TransportProto(value)}, r, nil
		}
	case util.EqFold(name, "user"):
		if grammar.IsToken(value) {
			return UserParam{User: UserType(value)}, r, nil
		}
	case util.EqFold(name, "method"):
		if grammar.IsToken(value) {
			return MethodParam{Method: RequestMethod(value)}, r, nil
		}
	case util.EqFold(name, "ttl"):
		ttl, r2, err := grammar.TTL(vs)
		if err != nil {
			if grammar.IsFatal(err) {
				return nil, s, errtrace.Wrap(grammar.Wrap("ttl-param", err))
			}
			break
		}
		if len(r2) == len(r) {
			return TTLParam{TTL: ttl}, r, nil
		}
	case util.EqFold(name, "maddr"):
		if grammar.IsHost(value) {
			return MAddrParam{Host: value}, r, nil
		}
	}
	return other, r, nil
}

// Header is a SIP URI header, name and value are kept as raw text.
type Header struct {
	Name  string
	Value string
}

func (h Header) String() string { return h.Name + "=" + h.Value }

func (h Header) Equal(val any) bool {
	var other Header
	switch v := val.(type) {
	case Header:
		other = v
	case *Header:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(Unescape(h.Name), Unescape(other.Name)) && Unescape(h.Value) == Unescape(other.Value)
}

// scanHeaders consumes [ "?" header *( "&" header ) ], header = hname "=" hvalue.
// Nothing is consumed when the headers are malformed.
func scanHeaders(s string) ([]Header, string) {
	if s == "" || s[0] != '?' {
		return nil, s
	}

	var hs []Header
	r := s
	for {
		name, r2 := grammar.HeaderChars(r[1:])
		if name == "" || r2 == "" || r2[0] != '=' {
			return nil, s
		}
		value, r3 := grammar.HeaderChars(r2[1:])
		hs = append(hs, Header{Name: name, Value: value})
		r = r3
		if r == "" || r[0] != '&' {
			return hs, r
		}
	}
}
