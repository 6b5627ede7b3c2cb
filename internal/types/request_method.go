package types

import (
	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// Methods defined by RFC 3261.
const (
	RequestMethodInvite   RequestMethod = "INVITE"
	RequestMethodAck      RequestMethod = "ACK"
	RequestMethodOptions  RequestMethod = "OPTIONS"
	RequestMethodBye      RequestMethod = "BYE"
	RequestMethodCancel   RequestMethod = "CANCEL"
	RequestMethodRegister RequestMethod = "REGISTER"
)

// RequestMethod is a SIP request method.
// Methods are case-sensitive, any token that is not one of RFC 3261 methods is an extension method.
type RequestMethod string

// IsExtension reports whether the method is not one of RFC 3261 methods.
func (m RequestMethod) IsExtension() bool {
	switch m {
	case RequestMethodInvite, RequestMethodAck, RequestMethodOptions,
		RequestMethodBye, RequestMethodCancel, RequestMethodRegister:
		return false
	default:
		return true
	}
}

func (m RequestMethod) IsValid() bool { return grammar.IsToken(m) }

func (m RequestMethod) ToUpper() RequestMethod { return util.UCase(m) }

func (m RequestMethod) Equal(val any) bool {
	var other RequestMethod
	switch v := val.(type) {
	case RequestMethod:
		other = v
	case *RequestMethod:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return m == other
}
