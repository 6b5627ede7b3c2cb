package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// scanOptText consumes [ TEXT-UTF8-TRIM ].
func scanOptText(s string) (string, string, error) {
	txt, r, err := grammar.TrimmedText(s)
	if err != nil {
		if grammar.IsFatal(err) {
			return "", s, errtrace.Wrap(err)
		}
		return "", s, nil
	}
	return txt, r, nil
}

// Organization represents the Organization header field, it may be empty.
type Organization string

func (Organization) CanonicName() Name { return "Organization" }

func (Organization) CompactName() Name { return "Organization" }

func (hdr Organization) RenderValue() string { return string(hdr) }

func (hdr Organization) String() string { return render(hdr) }

func parseOrganization(s string) (Header, string, error) {
	txt, r, err := scanOptText(s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Organization(txt), r, nil
}

// Subject represents the Subject header field, it may be empty.
type Subject string

func (Subject) CanonicName() Name { return "Subject" }

func (Subject) CompactName() Name { return "s" }

func (hdr Subject) RenderValue() string { return string(hdr) }

func (hdr Subject) String() string { return render(hdr) }

func parseSubject(s string) (Header, string, error) {
	txt, r, err := scanOptText(s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Subject(txt), r, nil
}

// Priority represents the Priority header field.
// Values other than RFC 3261 ones are kept as is.
type Priority string

// Priorities of RFC 3261.
const (
	PriorityEmergency Priority = "emergency"
	PriorityUrgent    Priority = "urgent"
	PriorityNormal    Priority = "normal"
	PriorityNonUrgent Priority = "non-urgent"
)

func (Priority) CanonicName() Name { return "Priority" }

func (Priority) CompactName() Name { return "Priority" }

func (hdr Priority) RenderValue() string { return string(hdr) }

func (hdr Priority) String() string { return render(hdr) }

// IsExtension reports whether the priority is not one of RFC 3261 values.
func (hdr Priority) IsExtension() bool {
	switch util.LCase(hdr) {
	case PriorityEmergency, PriorityUrgent, PriorityNormal, PriorityNonUrgent:
		return false
	default:
		return true
	}
}

func parsePriority(s string) (Header, string, error) {
	t, r, err := grammar.Token(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("priority-value", err))
	}
	return Priority(t), r, nil
}

// Extension represents a header field without a built-in parser.
// Value is the raw value text without surrounding whitespace.
type Extension struct {
	Name  string
	Value string
}

func (hdr *Extension) CanonicName() Name { return CanonicName(hdr.Name) }

func (hdr *Extension) CompactName() Name { return hdr.CanonicName() }

func (hdr *Extension) RenderValue() string { return hdr.Value }

func (hdr *Extension) String() string { return render(hdr) }

// Equal compares extension headers, names are case-insensitive and values are compared as is.
func (hdr *Extension) Equal(val any) bool {
	var other *Extension
	switch v := val.(type) {
	case *Extension:
		other = v
	case Extension:
		other = &v
	default:
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return util.EqFold(hdr.Name, other.Name) && hdr.Value == other.Value
}
