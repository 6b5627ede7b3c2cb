package header_test

import (
	"testing"

	"github.com/ghettovoice/sipparser/header"
	"github.com/ghettovoice/sipparser/internal/grammar"
)

func TestParse_ContentType(t *testing.T) {
	t.Parallel()

	testParse(t, []parseCase{
		{
			"quoted param",
			"c: multipart/mixed; boundary=\"boundary42\"",
			header.ContentType{
				Type:    "multipart",
				Subtype: "mixed",
				Params:  header.GenericParams{{Name: "boundary", Value: `"boundary42"`}},
			},
		},
		{"plain", "Content-Type: application/sdp", header.ContentType{Type: "application", Subtype: "sdp"}},
	})
}

func TestRender_ContentType(t *testing.T) {
	t.Parallel()

	testRender(t, []renderCase{
		{
			"quoted param",
			header.ContentType{
				Type:    "multipart",
				Subtype: "mixed",
				Params:  header.GenericParams{{Name: "boundary", Value: `"boundary42"`}},
			},
			`Content-Type: multipart/mixed;boundary="boundary42"`,
		},
	})
}

func TestParse_ContentLength(t *testing.T) {
	t.Parallel()

	testParse(t, []parseCase{
		{"compact", "l: 0", header.ContentLength(0)},
		{"full", "Content-Length: 349", header.ContentLength(349)},
	})
	testParseErrors(t, []parseErrorCase{
		{"overflow", "Content-Length: 99999999999999999999\r\n", grammar.KindInteger},
		{"text", "Content-Length: abc", grammar.KindSyntax},
	})
	testRender(t, []renderCase{
		{"value", header.ContentLength(42), "Content-Length: 42"},
	})
}
