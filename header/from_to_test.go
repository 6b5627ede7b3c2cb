package header_test

import (
	"testing"

	"github.com/ghettovoice/sipparser/header"
	"github.com/ghettovoice/sipparser/internal/grammar"
)

func TestParse_FromTo(t *testing.T) {
	t.Parallel()

	testParse(t, []parseCase{
		{
			"from tel uri",
			"From: <tel:+1-201-555-0123>;tag=abc;x",
			&header.From{
				NameAddr: header.NameAddr{URI: mustURI(t, "tel:+1-201-555-0123")},
				Params:   []header.FromParam{header.TagParam{Value: "abc"}, header.ExtParam{Name: "x"}},
			},
		},
		{
			"to with quoted display name",
			`t: "A \"B\" C" <sips:c@example.com>`,
			&header.To{NameAddr: header.NameAddr{DisplayName: `A "B" C`, URI: mustURI(t, "sips:c@example.com")}},
		},
		{
			"to bare addr-spec",
			"To: sip:alice@example.com;tag=x",
			&header.To{
				NameAddr: header.NameAddr{URI: mustURI(t, "sip:alice@example.com")},
				Params:   []header.ToParam{header.TagParam{Value: "x"}},
			},
		},
		{
			"to semicolon in bracketed user",
			"To: <sip:a;b@example.com>;tag=1",
			&header.To{
				NameAddr: header.NameAddr{URI: mustURI(t, "sip:a;b@example.com")},
				Params:   []header.ToParam{header.TagParam{Value: "1"}},
			},
		},
	})
}

func TestParse_FromToErrors(t *testing.T) {
	t.Parallel()

	testParseErrors(t, []parseErrorCase{
		{"from without address", "From: ;tag=1", grammar.KindSyntax},
		// a bare URI ends at the semicolon, the at sign can not follow the tag
		{"to bare user with semicolon", "To: sip:a.example.com;tag=x@b.example.com", grammar.KindSyntax},
	})
}

func TestRender_FromTo(t *testing.T) {
	t.Parallel()

	testRender(t, []renderCase{
		{
			"from display name",
			&header.From{
				NameAddr: header.NameAddr{DisplayName: "Alice", URI: mustURI(t, "sip:alice@atlanta.com")},
				Params:   []header.FromParam{header.TagParam{Value: "88sja8x"}},
			},
			`From: "Alice" <sip:alice@atlanta.com>;tag=88sja8x`,
		},
		{
			"to addr-spec",
			&header.To{
				NameAddr: header.NameAddr{URI: mustURI(t, "sip:bob@biloxi.com")},
				Params:   []header.ToParam{header.TagParam{Value: "a6c85cf"}},
			},
			"To: sip:bob@biloxi.com;tag=a6c85cf",
		},
		{
			"to semicolon in user keeps angle brackets",
			&header.To{
				NameAddr: header.NameAddr{URI: mustURI(t, "sip:a;b@example.com")},
				Params:   []header.ToParam{header.TagParam{Value: "1"}},
			},
			"To: <sip:a;b@example.com>;tag=1",
		},
	})
}
