package header_test

import (
	"testing"

	"github.com/ghettovoice/sipparser/header"
)

func TestParse_CallInfo(t *testing.T) {
	t.Parallel()

	testParse(t, []parseCase{
		{
			"purpose and ext param",
			"Call-Info: <http://www.example.com/alice/>;purpose=info;x",
			header.CallInfo{{
				URI:    mustURI(t, "http://www.example.com/alice/"),
				Params: []header.InfoParam{header.PurposeParam{Purpose: "info"}, header.ExtParam{Name: "x"}},
			}},
		},
	})
}

func TestRender_CallInfo(t *testing.T) {
	t.Parallel()

	testRender(t, []renderCase{
		{
			"purpose",
			header.CallInfo{{
				URI:    mustURI(t, "http://www.example.com/alice/photo.jpg"),
				Params: []header.InfoParam{header.PurposeParam{Purpose: "icon"}},
			}},
			"Call-Info: <http://www.example.com/alice/photo.jpg>;purpose=icon",
		},
	})
}
