package header_test

import (
	"testing"

	"github.com/ghettovoice/sipparser/header"
)

func TestParse_Tokens(t *testing.T) {
	t.Parallel()

	testParse(t, []parseCase{
		{"allow empty", "Allow:", header.Allow{}},
		{"supported empty", "k:", header.Supported{}},
		{"allow", "Allow: INVITE ,ACK", header.Allow{"INVITE", "ACK"}},
		{"require", "Require: 100rel, timer", header.Require{"100rel", "timer"}},
	})
}

func TestRender_Tokens(t *testing.T) {
	t.Parallel()

	testRender(t, []renderCase{
		{"allow", header.Allow{"INVITE", "ACK"}, "Allow: INVITE, ACK"},
		{"supported", header.Supported{"100rel", "timer"}, "Supported: 100rel, timer"},
	})
}
