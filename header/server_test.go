package header_test

import (
	"testing"

	"github.com/ghettovoice/sipparser/header"
)

func TestParse_Server(t *testing.T) {
	t.Parallel()

	testParse(t, []parseCase{
		{
			"server",
			"Server: SIPd/1.0 (Linux (x86_64)), gw",
			header.Server{{Product: "SIPd", Version: "1.0"}, {Comment: "(Linux (x86_64))"}, {Product: "gw"}},
		},
		{
			"user agent",
			"User-Agent: Softphone/1.5 (beta)",
			header.UserAgent{{Product: "Softphone", Version: "1.5"}, {Comment: "(beta)"}},
		},
	})
}

func TestRender_Server(t *testing.T) {
	t.Parallel()

	testRender(t, []renderCase{
		{
			"server",
			header.Server{{Product: "SIPd", Version: "1.0"}, {Comment: "(Linux)"}},
			"Server: SIPd/1.0 (Linux)",
		},
		{
			"user agent",
			header.UserAgent{{Product: "Softphone"}},
			"User-Agent: Softphone",
		},
	})
}
