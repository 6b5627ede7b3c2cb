package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

// ServerVal is a product or a comment of Server and User-Agent headers.
// For a product Product is set and Version is optional, for a comment only Comment is set
// and it keeps the parentheses.
type ServerVal struct {
	Product string
	Version string
	Comment string
}

func (v ServerVal) String() string {
	if v.Product == "" {
		return v.Comment
	}
	if v.Version == "" {
		return v.Product
	}
	return v.Product + "/" + v.Version
}

// scanServerVal consumes server-val = product / comment, product = token [ SLASH product-version ].
func scanServerVal(s string) (ServerVal, string, error) {
	if cmt, r, err := grammar.Comment(s); err == nil {
		return ServerVal{Comment: cmt}, r, nil
	} else if grammar.IsFatal(err) {
		return ServerVal{}, s, errtrace.Wrap(err)
	}

	p, r, err := grammar.Token(s)
	if err != nil {
		return ServerVal{}, s, errtrace.Wrap(grammar.Wrap("server-val", err))
	}
	v := ServerVal{Product: p}
	if r2, err := grammar.Slash(r); err == nil {
		ver, r3, err := grammar.Token(r2)
		if err != nil {
			return ServerVal{}, s, errtrace.Wrap(grammar.Wrap("product-version", err))
		}
		v.Version, r = ver, r3
	}
	return v, r, nil
}

// scanServerVals consumes server-val *( sep server-val ).
// Server separates values with LWS or COMMA, User-Agent with LWS only.
func scanServerVals(rule, s string, commas bool) ([]ServerVal, string, error) {
	v, r, err := scanServerVal(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap(rule, err))
	}
	vals := []ServerVal{v}
	for {
		// a comment consumes the whitespace after it
		consumed := s[:len(s)-len(r)]
		sep := consumed != "" && grammar.IsCharWSP(consumed[len(consumed)-1])
		r2 := r
		if commas {
			if r3, err := grammar.Comma(r); err == nil {
				r2, sep = r3, true
			}
		}
		if !sep {
			if _, r3, err := grammar.LWS(r); err == nil {
				r2, sep = r3, true
			}
		}
		if !sep && (r == "" || r[0] != '(') {
			return vals, r, nil
		}

		v, r3, err := scanServerVal(r2)
		if err != nil {
			if grammar.IsFatal(err) {
				return nil, s, errtrace.Wrap(err)
			}
			return vals, r, nil
		}
		vals = append(vals, v)
		r = r3
	}
}

func renderServerVals(vals []ServerVal) string { return joinStrings(vals, " ") }

// Server represents the Server header field.
type Server []ServerVal

func (Server) CanonicName() Name { return "Server" }

func (Server) CompactName() Name { return "Server" }

func (hdr Server) RenderValue() string { return renderServerVals(hdr) }

func (hdr Server) String() string { return render(hdr) }

func parseServer(s string) (Header, string, error) {
	vals, r, err := scanServerVals("Server", s, true)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Server(vals), r, nil
}

// UserAgent represents the User-Agent header field.
type UserAgent []ServerVal

func (UserAgent) CanonicName() Name { return "User-Agent" }

func (UserAgent) CompactName() Name { return "User-Agent" }

func (hdr UserAgent) RenderValue() string { return renderServerVals(hdr) }

func (hdr UserAgent) String() string { return render(hdr) }

func parseUserAgent(s string) (Header, string, error) {
	vals, r, err := scanServerVals("User-Agent", s, false)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return UserAgent(vals), r, nil
}
