package types

import (
	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

const (
	TransportProtoUDP  TransportProto = "UDP"
	TransportProtoTCP  TransportProto = "TCP"
	TransportProtoSCTP TransportProto = "SCTP"
	TransportProtoTLS  TransportProto = "TLS"
)

// TransportProto is a transport name as it appeared in the message.
// Known transports are matched case-insensitively.
type TransportProto string

// IsExtension reports whether the transport is not one of UDP, TCP, SCTP, TLS.
func (p TransportProto) IsExtension() bool {
	switch util.UCase(p) {
	case TransportProtoUDP, TransportProtoTCP, TransportProtoSCTP, TransportProtoTLS:
		return false
	default:
		return true
	}
}

func (p TransportProto) ToUpper() TransportProto { return util.UCase(p) }

func (p TransportProto) IsValid() bool { return grammar.IsToken(p) }

func (p TransportProto) Equal(val any) bool {
	var other TransportProto
	switch v := val.(type) {
	case TransportProto:
		other = v
	case *TransportProto:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(p, other)
}
