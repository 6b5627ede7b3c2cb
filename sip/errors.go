package sip

import (
	"fmt"

	"github.com/ghettovoice/sipparser/internal/errorutil"
	"github.com/ghettovoice/sipparser/internal/grammar"
)

// Grammar error kinds.
// See [grammar.Kind].
const (
	ErrSyntax             = grammar.KindSyntax
	ErrInvalidInteger     = grammar.KindInteger
	ErrInvalidTTL         = grammar.KindTTL
	ErrInvalidHostname    = grammar.KindHostname
	ErrInvalidDomainLabel = grammar.KindDomainLabel
	ErrInvalidEncoding    = grammar.KindEncoding
)

// Common errors.
const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument

	ErrEmptyInput      Error = "empty input"
	ErrMessageTooLarge Error = "message too large"
	ErrInvalidLength   Error = "invalid Content-Length"
)

// Error represents a SIP error.
// See [errorutil.Error].
type Error = errorutil.Error

// GrammarError is a failure of a grammar production.
// See [grammar.Error].
type GrammarError = grammar.Error

// ParseError represents an error that occurred during parsing.
//
// It contains the error that occurred, the parsing state and the line that caused the error.
type ParseError struct {
	Err   error
	State ParseState
	Buf   []byte

	framing bool
}

func (err *ParseError) Error() string {
	if err == nil {
		return "<nil>"
	}
	return fmt.Sprintf("parse error at %s: %v", err.State, err.Err)
}

func (err *ParseError) Unwrap() error { return err.Err }

// Grammar reports whether the message text does not match the SIP grammar.
func (err *ParseError) Grammar() bool { return errorutil.IsGrammarErr(err.Err) }

// Temporary reports whether the underlying read error is temporary.
func (err *ParseError) Temporary() bool { return errorutil.IsTemporaryErr(err.Err) }

// Framing reports whether the error broke message framing of a stream.
// A stream parser stops after such error.
func (err *ParseError) Framing() bool { return err.framing }

// Offset returns the position of the failure in the message text, or -1 if unknown.
func (err *ParseError) Offset() int {
	if e, ok := grammar.AsError(err.Err); ok {
		return e.Offset
	}
	return -1
}

// ParseState is a part of a message being parsed.
type ParseState int

const (
	ParseStateStart   ParseState = iota // parsing message start line
	ParseStateHeaders                   // parsing message headers
	ParseStateBody                      // parsing message body

	parseStateDone
)

func (s ParseState) String() string {
	switch s {
	case ParseStateStart:
		return "start line"
	case ParseStateHeaders:
		return "headers"
	case ParseStateBody:
		return "body"
	case parseStateDone:
		return "done"
	default:
		return fmt.Sprintf("ParseState(%d)", int(s))
	}
}
