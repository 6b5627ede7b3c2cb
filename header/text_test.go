package header_test

import (
	"testing"

	"github.com/ghettovoice/sipparser/header"
)

func TestParse_Extension(t *testing.T) {
	t.Parallel()

	testParse(t, []parseCase{
		{"plain", "X-Custom-Thing: anything", &header.Extension{Name: "X-Custom-Thing", Value: "anything"}},
		{"folded", "X-Folded: a\r\n b  \r\n", &header.Extension{Name: "X-Folded", Value: "a\r\n b"}},
		{"empty", "X-Empty:", &header.Extension{Name: "X-Empty"}},
	})
}

func TestParse_Text(t *testing.T) {
	t.Parallel()

	testParse(t, []parseCase{
		{"organization empty", "Organization:", header.Organization("")},
		{"subject compact", "s: Need more boxes", header.Subject("Need more boxes")},
	})
}

func TestRender_Text(t *testing.T) {
	t.Parallel()

	testRender(t, []renderCase{
		{"extension", &header.Extension{Name: "X-Foo", Value: "bar"}, "X-Foo: bar"},
		{"subject", header.Subject("Need more boxes"), "Subject: Need more boxes"},
		{"priority", header.Priority("urgent"), "Priority: urgent"},
	})
}
