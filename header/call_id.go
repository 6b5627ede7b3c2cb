package header

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

// CallID represents the Call-ID header field.
type CallID string

func (CallID) CanonicName() Name { return "Call-ID" }

func (CallID) CompactName() Name { return "i" }

func (hdr CallID) RenderValue() string { return string(hdr) }

func (hdr CallID) String() string { return render(hdr) }

// Equal compares Call-IDs, they are case-sensitive.
func (hdr CallID) Equal(val any) bool {
	switch v := val.(type) {
	case CallID:
		return hdr == v
	case *CallID:
		return v != nil && hdr == *v
	default:
		return false
	}
}

func (hdr CallID) IsValid() bool {
	id, rest, err := scanCallID(string(hdr))
	return err == nil && rest == "" && id != ""
}

func parseCallID(s string) (Header, string, error) {
	id, r, err := scanCallID(s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return CallID(id), r, nil
}

// scanCallID consumes callid = word [ "@" word ].
func scanCallID(s string) (string, string, error) {
	_, r, err := grammar.Word(s)
	if err != nil {
		return "", s, errtrace.Wrap(grammar.Wrap("callid", err))
	}
	if strings.HasPrefix(r, "@") {
		if _, r, err = grammar.Word(r[1:]); err != nil {
			return "", s, errtrace.Wrap(grammar.Wrap("callid", err))
		}
	}
	return s[:len(s)-len(r)], r, nil
}
