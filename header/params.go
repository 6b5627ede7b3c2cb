package header

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// ExtParam is a generic parameter kept in a typed parameter list.
// Quoted values keep their quotes.
type ExtParam struct {
	Name  string
	Value string
}

func (p ExtParam) String() string { return GenericParam(p).String() }

// QParam is the "q" parameter, Value is the qvalue text.
type QParam struct{ Value string }

func (p QParam) String() string { return "q=" + p.Value }

// Float returns the qvalue as a number.
func (p QParam) Float() float64 {
	f, _ := strconv.ParseFloat(p.Value, 64)
	return f
}

// ExpiresParam is the "expires" parameter of Contact.
type ExpiresParam struct{ Value int32 }

func (p ExpiresParam) String() string { return "expires=" + strconv.FormatInt(int64(p.Value), 10) }

// TagParam is the "tag" parameter of From and To.
type TagParam struct{ Value string }

func (p TagParam) String() string { return "tag=" + p.Value }

// knownParam parses the value of a parameter with a specific grammar.
// s starts right after EQUAL. It returns ok false to keep the parameter generic,
// err is returned only for fatal failures.
type knownParam[P any] func(name, s string) (p P, rest string, ok bool, err error)

// scanParams consumes *( SEMI param ), where param is a parameter recognized by known
// or a generic-param wrapped by ext.
// A known parameter is used when it consumes not less than the generic one.
func scanParams[P any](s string, known knownParam[P], ext func(ExtParam) P) ([]P, string, error) {
	var ps []P
	for {
		r, err := grammar.Semi(s)
		if err != nil {
			return ps, s, nil
		}

		name, val, gr, gerr := grammar.GenericParam(r)
		if gerr != nil && grammar.IsFatal(gerr) {
			return nil, s, errtrace.Wrap(gerr)
		}

		if known != nil {
			if n, nr, err := grammar.Token(r); err == nil {
				if vs, err := grammar.Equal(nr); err == nil {
					p, kr, ok, err := known(n, vs)
					if err != nil {
						return nil, s, errtrace.Wrap(err)
					}
					if ok && (gerr != nil || len(kr) <= len(gr)) {
						ps = append(ps, p)
						s = kr
						continue
					}
				}
			}
		}

		if gerr != nil {
			return nil, s, errtrace.Wrap(grammar.Wrap("generic-param", gerr))
		}
		ps = append(ps, ext(ExtParam{Name: name, Value: val}))
		s = gr
	}
}

// softOnly drops recoverable failures.
func softOnly(err error) error {
	if grammar.IsFatal(err) {
		return err
	}
	return nil
}

func paramTTL(s string) (int32, string, bool, error) {
	ttl, r, err := grammar.TTL(s)
	if err != nil {
		return 0, s, false, softOnly(err)
	}
	return ttl, r, true, nil
}

func paramInt32(rule, s string) (int32, string, bool, error) {
	n, r, err := grammar.Int32(rule, s)
	if err != nil {
		return 0, s, false, softOnly(err)
	}
	return n, r, true, nil
}

func paramToken(s string) (string, string, bool) {
	t, r, err := grammar.Token(s)
	return t, r, err == nil
}

func paramQuoted(s string) (string, string, bool) {
	qs, r, err := grammar.QuotedString(s)
	if err != nil {
		return "", s, false
	}
	return grammar.Unquote(qs), r, true
}

// scanGenericParams consumes *( SEMI generic-param ).
func scanGenericParams(s string) (GenericParams, string, error) {
	ps, r, err := scanParams[GenericParam](s, nil, func(p ExtParam) GenericParam { return GenericParam(p) })
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return ps, r, nil
}

func renderParams[P interface{ String() string }](ps []P) string {
	if len(ps) == 0 {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for _, p := range ps {
		sb.WriteByte(';')
		sb.WriteString(p.String())
	}
	return sb.String()
}

func joinStrings[E interface{ String() string }](es []E, sep string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, e := range es {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}
