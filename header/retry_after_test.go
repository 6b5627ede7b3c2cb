package header_test

import (
	"testing"

	"github.com/ghettovoice/sipparser/header"
)

func TestParse_RetryAfter(t *testing.T) {
	t.Parallel()

	testParse(t, []parseCase{
		{
			"comment and params",
			"Retry-After: 120 (I'm in a meeting) ;duration=3600;x=1",
			&header.RetryAfter{
				Delay:   120,
				Comment: "(I'm in a meeting)",
				Params:  []header.RetryParam{header.DurationParam{Value: 3600}, header.ExtParam{Name: "x", Value: "1"}},
			},
		},
		{"delay only", "Retry-After: 18000", &header.RetryAfter{Delay: 18000}},
	})
}

func TestRender_RetryAfter(t *testing.T) {
	t.Parallel()

	testRender(t, []renderCase{
		{
			"comment and params",
			&header.RetryAfter{
				Delay:   120,
				Comment: "(I'm in a meeting)",
				Params:  []header.RetryParam{header.DurationParam{Value: 3600}},
			},
			"Retry-After: 120 (I'm in a meeting);duration=3600",
		},
	})
}
