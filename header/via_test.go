package header_test

import (
	"testing"

	"github.com/ghettovoice/sipparser/header"
	"github.com/ghettovoice/sipparser/internal/grammar"
)

func TestParse_Via(t *testing.T) {
	t.Parallel()

	testParse(t, []parseCase{
		{
			"single hop",
			"Via: SIP/2.0/TCP client.atlanta.example.com:5060;branch=z9hG4bK74b43\r\n",
			header.Via{{
				Proto:     header.ProtoInfo{Name: "SIP", Version: "2.0"},
				Transport: "TCP",
				Addr:      header.HostPort("client.atlanta.example.com", 5060),
				Params:    []header.ViaParam{header.BranchParam{Value: "z9hG4bK74b43"}},
			}},
		},
		{
			"list",
			"v: SIP/2.0/UDP 192.0.2.1;received=2001:db8::9:1;ttl=16;rport, " +
				"SIP / 2.0 / SCTP [2001:db8::1]:5061 ; maddr=224.2.0.1 ; x=\"y\"",
			header.Via{
				{
					Proto:     header.ProtoInfo{Name: "SIP", Version: "2.0"},
					Transport: "UDP",
					Addr:      header.Host("192.0.2.1"),
					Params: []header.ViaParam{
						header.ReceivedParam{Addr: "2001:db8::9:1"},
						header.TTLParam{TTL: 16},
						header.ExtParam{Name: "rport"},
					},
				},
				{
					Proto:     header.ProtoInfo{Name: "SIP", Version: "2.0"},
					Transport: "SCTP",
					Addr:      header.HostPort("[2001:db8::1]", 5061),
					Params: []header.ViaParam{
						header.MAddrParam{Host: "224.2.0.1"},
						header.ExtParam{Name: "x", Value: `"y"`},
					},
				},
			},
		},
	})
}

func TestParse_ViaErrors(t *testing.T) {
	t.Parallel()

	testParseErrors(t, []parseErrorCase{
		{"ttl out of range", "Via: SIP/2.0/UDP host;ttl=256", grammar.KindTTL},
		{"without sent-by", "Via: SIP/2.0/UDP", grammar.KindSyntax},
	})
}

func TestRender_Via(t *testing.T) {
	t.Parallel()

	testRender(t, []renderCase{
		{
			"hops",
			header.Via{
				{
					Proto:     header.ProtoInfo{Name: "SIP", Version: "2.0"},
					Transport: "UDP",
					Addr:      header.HostPort("pc33.atlanta.com", 5060),
					Params:    []header.ViaParam{header.BranchParam{Value: "z9hG4bK776asdhds"}, header.ExtParam{Name: "rport"}},
				},
				{
					Proto:     header.ProtoInfo{Name: "SIP", Version: "2.0"},
					Transport: "TCP",
					Addr:      header.Host("192.0.2.1"),
					Params:    []header.ViaParam{header.TTLParam{TTL: 1}, header.MAddrParam{Host: "224.2.0.1"}},
				},
			},
			"Via: SIP/2.0/UDP pc33.atlanta.com:5060;branch=z9hG4bK776asdhds;rport, " +
				"SIP/2.0/TCP 192.0.2.1;ttl=1;maddr=224.2.0.1",
		},
	})
}
