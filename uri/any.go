package uri

import (
	"fmt"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// Any implements any absolute URI (usually not SIP).
//
// Either Opaque is set, or the URI is hierarchical with optional authority and query.
type Any struct {
	grammar.AbsoluteURI
}

// Scheme returns the URI scheme in lower case.
func (u *Any) Scheme() string {
	if u == nil {
		return ""
	}
	return util.LCase(u.AbsoluteURI.Scheme)
}

// String returns the URI text.
func (u *Any) String() string {
	if u == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(u.AbsoluteURI.Scheme)
	sb.WriteByte(':')
	if u.Opaque != "" {
		sb.WriteString(u.Opaque)
		return sb.String()
	}
	if u.HasAuth {
		sb.WriteString("//")
		sb.WriteString(u.Authority)
	}
	sb.WriteString(u.Path)
	if u.HasQuery {
		sb.WriteByte('?')
		sb.WriteString(u.Query)
	}
	return sb.String()
}

// Format implements [fmt.Formatter] for custom formatting of the URI.
func (u *Any) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		fmt.Fprint(f, u.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
	}
}

// Equal compares the URI with another URI.
// Scheme and authority are compared case-insensitively.
func (u *Any) Equal(val any) bool {
	var other *Any
	switch v := val.(type) {
	case Any:
		other = &v
	case *Any:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return util.EqFold(u.AbsoluteURI.Scheme, other.AbsoluteURI.Scheme) &&
		u.HasAuth == other.HasAuth &&
		util.EqFold(u.Authority, other.Authority) &&
		u.Path == other.Path &&
		u.HasQuery == other.HasQuery &&
		u.Query == other.Query &&
		u.Opaque == other.Opaque
}

// IsValid checks whether the URI is a complete absolute URI.
func (u *Any) IsValid() bool {
	if u == nil {
		return false
	}
	_, rest, err := grammar.ParseAbsoluteURI(u.String())
	return err == nil && rest == ""
}

// ParseAny parses a whole absolute URI from the given input s (string or []byte).
func ParseAny[T ~string | ~[]byte](s T) (*Any, error) {
	src := string(s)
	u, rest, err := ScanAny(src)
	if err != nil {
		grammar.Locate(err, src)
		return nil, errtrace.Wrap(err)
	}
	if rest != "" {
		err = grammar.Fail("absoluteURI", rest)
		grammar.Locate(err, src)
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// ScanAny consumes absoluteURI from the front of s.
//
//	absoluteURI = scheme ":" ( hier-part / opaque-part )
func ScanAny(s string) (*Any, string, error) {
	au, rest, err := grammar.ParseAbsoluteURI(s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return &Any{au}, rest, nil
}
