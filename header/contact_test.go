package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipparser/header"
	"github.com/ghettovoice/sipparser/internal/grammar"
)

func TestParse_Contact(t *testing.T) {
	t.Parallel()

	testParse(t, []parseCase{
		{
			"name-addr",
			"Contact: \"John\" <sip:j@example.com>;expires=8;q=1.0",
			&header.Contact{Addrs: []header.ContactAddr{{
				NameAddr: header.NameAddr{DisplayName: "John", URI: mustURI(t, "sip:j@example.com")},
				Params:   []header.ContactParam{header.ExpiresParam{Value: 8}, header.QParam{Value: "1.0"}},
			}}},
		},
		{
			"bare addr-spec",
			"m: sip:j@example.com;transport=tcp;q=0.1, Bob Smith <sip:b@example.com;transport=tcp>",
			&header.Contact{Addrs: []header.ContactAddr{
				{
					NameAddr: header.NameAddr{URI: mustURI(t, "sip:j@example.com")},
					Params: []header.ContactParam{
						header.ExtParam{Name: "transport", Value: "tcp"},
						header.QParam{Value: "0.1"},
					},
				},
				{
					NameAddr: header.NameAddr{
						DisplayName: "Bob Smith",
						URI:         mustURI(t, "sip:b@example.com;transport=tcp"),
					},
				},
			}},
		},
		{"wildcard", "Contact: *", &header.Contact{Wildcard: true}},
	})
}

func TestParse_ContactErrors(t *testing.T) {
	t.Parallel()

	testParseErrors(t, []parseErrorCase{
		{"empty", "Contact: ", grammar.KindSyntax},
		{"expires overflow", "Contact: <sip:a@b>;expires=99999999999", grammar.KindInteger},
	})
}

func TestRender_Contact(t *testing.T) {
	t.Parallel()

	testRender(t, []renderCase{
		{
			"uri params keep angle brackets",
			&header.Contact{Addrs: []header.ContactAddr{{
				NameAddr: header.NameAddr{URI: mustURI(t, "sip:alice@pc33.atlanta.com;transport=tcp")},
			}}},
			"Contact: <sip:alice@pc33.atlanta.com;transport=tcp>",
		},
		{
			"addr-spec with params",
			&header.Contact{Addrs: []header.ContactAddr{{
				NameAddr: header.NameAddr{URI: mustURI(t, "sip:alice@pc33.atlanta.com")},
				Params:   []header.ContactParam{header.ExpiresParam{Value: 3600}},
			}}},
			"Contact: sip:alice@pc33.atlanta.com;expires=3600",
		},
		{"wildcard", &header.Contact{Wildcard: true}, "Contact: *"},
	})
}

func TestParseContactAddr(t *testing.T) {
	t.Parallel()

	got, err := header.ParseContactAddr(`"John" <sip:j@example.com>;expires=8;q=1.0`)
	if err != nil {
		t.Fatalf("header.ParseContactAddr() error = %v, want nil", err)
	}
	want := header.ContactAddr{
		NameAddr: header.NameAddr{DisplayName: "John", URI: mustURI(t, "sip:j@example.com")},
		Params:   []header.ContactParam{header.ExpiresParam{Value: 8}, header.QParam{Value: "1.0"}},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("header.ParseContactAddr() = %+v, want %+v\ndiff (-got +want):\n%v", got, want, diff)
	}
	if exp, ok := got.Expires(); !ok || exp != 8 {
		t.Errorf("ca.Expires() = (%d, %v), want (8, true)", exp, ok)
	}
	if q, ok := got.Q(); !ok || q.Float() != 1 {
		t.Errorf("ca.Q() = (%v, %v), want (1.0, true)", q, ok)
	}
}
