package uri

import (
	"fmt"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// SIP represents a SIP or SIPS URI.
type SIP struct {
	User    UserInfo // username and passwd
	Addr    Addr     // host and port
	Params  []Param  // parameters in order of appearance
	Headers []Header // headers in order of appearance
	Secured bool
}

// Scheme returns the URI scheme.
func (u *SIP) Scheme() string {
	if u == nil {
		return ""
	}
	return u.scheme()
}

func (u *SIP) scheme() string {
	if u.Secured {
		return "sips"
	}
	return "sip"
}

// String returns the URI text.
func (u *SIP) String() string {
	if u == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(u.scheme())
	sb.WriteByte(':')
	if !u.User.IsZero() {
		sb.WriteString(u.User.String())
		sb.WriteByte('@')
	}
	sb.WriteString(u.Addr.String())
	for _, p := range u.Params {
		sb.WriteByte(';')
		sb.WriteString(p.String())
	}
	for i, h := range u.Headers {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(h.String())
	}
	return sb.String()
}

// Format implements [fmt.Formatter] for custom formatting of the URI.
func (u *SIP) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
	case 'v':
		if f.Flag('+') {
			fmt.Fprintf(f, "&uri.SIP{Secured:%t, User:%q, Addr:%q, Params:%v, Headers:%v}",
				u.Secured, u.User.String(), u.Addr.String(), u.Params, u.Headers)
			return
		}
		fmt.Fprint(f, u.String())
	}
}

// Equal compares the URI with another URI.
// Scheme, host and parameter names are compared case-insensitively,
// user info and parameter values are compared as is.
func (u *SIP) Equal(val any) bool {
	var other *SIP
	switch v := val.(type) {
	case SIP:
		other = &v
	case *SIP:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	if u.Secured != other.Secured ||
		!u.User.Equal(other.User) ||
		!u.Addr.Equal(other.Addr) ||
		len(u.Params) != len(other.Params) ||
		len(u.Headers) != len(other.Headers) {
		return false
	}
	for i := range u.Params {
		if !paramsEqual(u.Params[i], other.Params[i]) {
			return false
		}
	}
	for i := range u.Headers {
		if !u.Headers[i].Equal(other.Headers[i]) {
			return false
		}
	}
	return true
}

// IsValid checks whether the URI is syntactically valid.
func (u *SIP) IsValid() bool {
	if u == nil || !u.Addr.IsValid() {
		return false
	}
	if !u.User.IsZero() && !u.User.IsValid() {
		return false
	}
	for _, p := range u.Params {
		if p == nil {
			return false
		}
	}
	return true
}

// IsPhoneUser reports whether the user part is a telephone-subscriber.
func (u *SIP) IsPhoneUser() bool {
	return u != nil && grammar.IsTelephoneSubscriber(u.User.Username())
}

// Transport returns the value of the transport parameter.
func (u *SIP) Transport() (TransportProto, bool) {
	if p, ok := findParam[TransportParam](u); ok {
		return p.Transport, true
	}
	return "", false
}

// UserType returns the value of the user parameter.
func (u *SIP) UserType() (UserType, bool) {
	if p, ok := findParam[UserParam](u); ok {
		return p.User, true
	}
	return "", false
}

// Method returns the value of the method parameter.
func (u *SIP) Method() (RequestMethod, bool) {
	if p, ok := findParam[MethodParam](u); ok {
		return p.Method, true
	}
	return "", false
}

// MAddr returns the value of the maddr parameter.
func (u *SIP) MAddr() (string, bool) {
	if p, ok := findParam[MAddrParam](u); ok {
		return p.Host, true
	}
	return "", false
}

// TTL returns the value of the ttl parameter.
func (u *SIP) TTL() (int32, bool) {
	if p, ok := findParam[TTLParam](u); ok {
		return p.TTL, true
	}
	return 0, false
}

// LR reports whether the lr parameter is present.
func (u *SIP) LR() bool {
	_, ok := findParam[LRParam](u)
	return ok
}

func findParam[P Param](u *SIP) (P, bool) {
	var zero P
	if u == nil {
		return zero, false
	}
	for _, p := range u.Params {
		if v, ok := p.(P); ok {
			return v, true
		}
	}
	return zero, false
}

// ParseSIP parses a whole SIP or SIPS URI from the given input s (string or []byte).
func ParseSIP[T ~string | ~[]byte](s T) (*SIP, error) {
	src := string(s)
	u, rest, err := ScanSIP(src)
	if err != nil {
		grammar.Locate(err, src)
		return nil, errtrace.Wrap(err)
	}
	if rest != "" {
		err = grammar.Fail("SIP-URI", rest)
		grammar.Locate(err, src)
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// ScanSIP consumes SIP-URI / SIPS-URI from the front of s:
//
//	SIP-URI  = "sip:" [ userinfo ] hostport uri-parameters [ headers ]
//	SIPS-URI = "sips:" [ userinfo ] hostport uri-parameters [ headers ]
//
// The scheme is case-insensitive.
func ScanSIP(s string) (*SIP, string, error) { return errtrace.Wrap3(scanSIP(s, true)) }

func scanSIP(s string, withParams bool) (*SIP, string, error) {
	var u SIP
	r, err := grammar.LitFold("SIP-URI", s, "sip:")
	if err != nil {
		if r, err = grammar.LitFold("SIPS-URI", s, "sips:"); err != nil {
			return nil, s, errtrace.Wrap(grammar.Fail("SIP-URI", s))
		}
		u.Secured = true
	}

	if ui, r2, ok := scanUserInfo(r, !withParams); ok {
		u.User, r = ui, r2
	}

	host, port, hasPort, r, err := grammar.HostPort(r)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("SIP-URI", err))
	}
	if hasPort {
		u.Addr = HostPort(host, port)
	} else {
		u.Addr = Host(host)
	}

	if !withParams {
		return &u, r, nil
	}
	if u.Params, r, err = scanParams(r); err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("SIP-URI", err))
	}
	u.Headers, r = scanHeaders(r)
	return &u, r, nil
}

var (
	userRules     = []func(string) (string, string, error){grammar.User, grammar.TelephoneSubscriber}
	bareUserRules = []func(string) (string, string, error){grammar.BareUser}
)

// scanUserInfo consumes ( user / telephone-subscriber ) [ ":" password ] "@".
// A bare user info of a URI outside angle brackets stops at a comma, a semicolon or a question mark.
func scanUserInfo(s string, bare bool) (UserInfo, string, bool) {
	users, passwd := userRules, grammar.Password
	if bare {
		users, passwd = bareUserRules, grammar.BarePassword
	}
	for _, user := range users {
		name, r, err := user(s)
		if err != nil {
			continue
		}
		ui := UserInfo{usrname: name}
		if r != "" && r[0] == ':' {
			ui.passwd, r = passwd(r[1:])
			ui.hasPasswd = true
		}
		if r != "" && r[0] == '@' {
			return ui, r[1:], true
		}
	}
	return UserInfo{}, s, false
}

// UserInfo holds the user and password of a SIP URI as raw text.
type UserInfo struct {
	usrname,
	passwd string
	hasPasswd bool
}

// User returns a user info with the username only.
func User(usrname string) UserInfo { return UserInfo{usrname: usrname} }

// UserPassword returns a user info with the username and password.
func UserPassword(usrname, passwd string) UserInfo {
	return UserInfo{usrname: usrname, passwd: passwd, hasPasswd: true}
}

// Username returns the raw username.
func (ui UserInfo) Username() string { return ui.usrname }

// Password returns the raw password and whether it is set.
func (ui UserInfo) Password() (string, bool) { return ui.passwd, ui.hasPasswd }

func (ui UserInfo) String() string {
	if !ui.hasPasswd {
		return ui.usrname
	}
	return ui.usrname + ":" + ui.passwd
}

func (ui UserInfo) Equal(val any) bool {
	var other UserInfo
	switch v := val.(type) {
	case UserInfo:
		other = v
	case *UserInfo:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return ui == other
}

func (ui UserInfo) IsValid() bool {
	if ui.usrname == "" {
		return false
	}
	if _, r, err := grammar.User(ui.usrname); err != nil || r != "" {
		if !grammar.IsTelephoneSubscriber(ui.usrname) {
			return false
		}
	}
	if p, r := grammar.Password(ui.passwd); p != ui.passwd || r != "" {
		return false
	}
	return true
}

func (ui UserInfo) IsZero() bool { return ui.usrname == "" && ui.passwd == "" && !ui.hasPasswd }
