package grammar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a grammar failure.
// Kind implements error so it can be matched with [errors.Is].
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSyntax
	KindInteger
	KindTTL
	KindHostname
	KindDomainLabel
	KindEncoding
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindInteger:
		return "invalid integer"
	case KindTTL:
		return "invalid TTL value"
	case KindHostname:
		return "invalid hostname label"
	case KindDomainLabel:
		return "invalid domain label"
	case KindEncoding:
		return "invalid text encoding"
	default:
		return "unknown error"
	}
}

func (k Kind) Error() string { return k.String() }

// Grammar marks [Kind] as a grammar error.
func (Kind) Grammar() bool { return true }

// Error is a failure of a grammar production.
//
// Input holds the unconsumed input at the point of failure, Offset is its position
// in the whole parsed text and is filled by [Locate].
// Backtrace keeps failures of the alternatives tried before giving up.
type Error struct {
	Kind      Kind
	Rule      string
	Input     string
	Offset    int
	Err       error
	Backtrace []*Error

	fatal bool
}

const errSnippetLen = 24

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Rule != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.Rule)
	}
	if e.Offset > 0 {
		sb.WriteString(" at offset ")
		sb.WriteString(strconv.Itoa(e.Offset))
	}
	sb.WriteString(" near ")
	sb.WriteString(strconv.Quote(snippet(e.Input)))
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func snippet(s string) string {
	if len(s) > errSnippetLen {
		return s[:errSnippetLen] + "..."
	}
	return s
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Grammar marks [Error] as a grammar error.
func (*Error) Grammar() bool { return true }

// Fatal reports whether the failure stops alternation.
func (e *Error) Fatal() bool { return e != nil && e.fatal }

// Format prints the error with its backtrace when the '+' flag is set.
func (e *Error) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			e.writeTrace(f, "")
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(f, e.Error())
	case 'q':
		fmt.Fprint(f, strconv.Quote(e.Error()))
	}
}

func (e *Error) writeTrace(f fmt.State, indent string) {
	fmt.Fprint(f, indent, e.Error())
	for _, be := range e.Backtrace {
		fmt.Fprint(f, "\n")
		be.writeTrace(f, indent+"  ")
	}
}

// Fail returns a recoverable syntax failure of the rule at input s.
func Fail(rule, s string) error {
	return &Error{Kind: KindSyntax, Rule: rule, Input: s} //errtrace:skip
}

// FailKind returns a recoverable failure of the given kind.
func FailKind(kind Kind, rule, s string, err error) error {
	return &Error{Kind: kind, Rule: rule, Input: s, Err: err} //errtrace:skip
}

// Fatal returns a failure that is not retried by alternation.
func Fatal(kind Kind, rule, s string, err error) error {
	return &Error{Kind: kind, Rule: rule, Input: s, Err: err, fatal: true} //errtrace:skip
}

// AsError extracts a grammar [Error] from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsFatal reports whether err is a grammar failure that must not be retried.
func IsFatal(err error) bool {
	e, ok := AsError(err)
	return ok && e.fatal
}

// Wrap attaches the rule name to a failure of a nested production.
// The kind, position and fatality of the nested failure are kept.
func Wrap(rule string, err error) error {
	if err == nil {
		return nil
	}
	e, ok := AsError(err)
	if !ok {
		return &Error{Kind: KindUnknown, Rule: rule, Err: err} //errtrace:skip
	}
	return &Error{ //errtrace:skip
		Kind:      e.Kind,
		Rule:      rule,
		Input:     e.Input,
		Backtrace: []*Error{e},
		fatal:     e.fatal,
	}
}

// Locate fills offsets of err and its backtrace relative to src.
func Locate(err error, src string) {
	e, ok := AsError(err)
	if !ok {
		return
	}
	e.locate(src)
}

func (e *Error) locate(src string) {
	if n := len(src) - len(e.Input); n >= 0 && n <= len(src) && src[n:] == e.Input {
		e.Offset = n
	}
	for _, be := range e.Backtrace {
		be.locate(src)
	}
}

// Furthest returns the failure that consumed the most input, preferring the first one.
func Furthest(errs ...*Error) *Error {
	var best *Error
	for _, e := range errs {
		if e == nil {
			continue
		}
		if best == nil || len(e.Input) < len(best.Input) {
			best = e
		}
	}
	return best
}

// Join combines failures of alternatives of a rule into one failure
// that carries the kind and position of the furthest one.
func Join(rule string, errs ...error) error {
	trace := make([]*Error, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		e, ok := AsError(err)
		if !ok {
			e = &Error{Kind: KindUnknown, Rule: rule, Err: err}
		}
		if e.fatal {
			return e //errtrace:skip
		}
		trace = append(trace, e)
	}
	best := Furthest(trace...)
	if best == nil {
		return nil
	}
	return &Error{Kind: best.Kind, Rule: rule, Input: best.Input, Backtrace: trace} //errtrace:skip
}

// Commit returns err as a fatal failure of the rule.
// It is used once a production is identified and its remaining part does not match.
func Commit(rule string, err error) error {
	if err == nil {
		return nil
	}
	e, ok := AsError(err)
	if !ok {
		return &Error{Kind: KindUnknown, Rule: rule, Err: err, fatal: true} //errtrace:skip
	}
	return &Error{Kind: e.Kind, Rule: rule, Input: e.Input, Backtrace: []*Error{e}, fatal: true} //errtrace:skip
}
