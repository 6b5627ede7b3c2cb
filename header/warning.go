package header

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

// WarningEntry is an element of the Warning header.
// Agent is a host[:port] or a pseudonym, Text is the unquoted warning text.
type WarningEntry struct {
	Code  int
	Agent string
	Text  string
}

func (w WarningEntry) String() string {
	return strconv.Itoa(w.Code) + " " + w.Agent + " " + grammar.Quote(w.Text)
}

// Warning represents the Warning header field.
type Warning []WarningEntry

func (Warning) CanonicName() Name { return "Warning" }

func (Warning) CompactName() Name { return "Warning" }

func (hdr Warning) RenderValue() string { return joinStrings(hdr, ", ") }

func (hdr Warning) String() string { return render(hdr) }

func parseWarning(s string) (Header, string, error) {
	ws, r, err := grammar.List("Warning", s, scanWarningEntry)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Warning(ws), r, nil
}

// scanWarningEntry consumes warning-value = warn-code SP warn-agent SP warn-text.
func scanWarningEntry(s string) (WarningEntry, string, error) {
	code, r, err := grammar.StatusCode(s)
	if err != nil {
		return WarningEntry{}, s, errtrace.Wrap(grammar.Wrap("warn-code", err))
	}
	if r, err = grammar.Lit("warning-value", r, " "); err != nil {
		return WarningEntry{}, s, errtrace.Wrap(err)
	}

	// warn-agent = hostport / pseudonym, take the longest match.
	agentEnd := r
	if _, _, _, r2, err := grammar.HostPort(r); err == nil {
		agentEnd = r2
	} else if grammar.IsFatal(err) {
		return WarningEntry{}, s, errtrace.Wrap(err)
	}
	if _, r2, err := grammar.Token(r); err == nil && len(r2) < len(agentEnd) {
		agentEnd = r2
	}
	if len(agentEnd) == len(r) {
		return WarningEntry{}, s, errtrace.Wrap(grammar.Fail("warn-agent", r))
	}
	agent := r[:len(r)-len(agentEnd)]
	r = agentEnd

	if r, err = grammar.Lit("warning-value", r, " "); err != nil {
		return WarningEntry{}, s, errtrace.Wrap(err)
	}
	qs, r, err := grammar.QuotedString(r)
	if err != nil {
		return WarningEntry{}, s, errtrace.Wrap(grammar.Wrap("warn-text", err))
	}
	return WarningEntry{Code: code, Agent: agent, Text: grammar.Unquote(qs)}, r, nil
}
