package sip

import (
	"bufio"
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/sipparser/header"
	"github.com/ghettovoice/sipparser/internal/log"
	"github.com/ghettovoice/sipparser/internal/util"
)

type streamTrigger int

const (
	triggerStartLine streamTrigger = iota
	triggerHeadersEnd
	triggerBodyRead
	triggerStop
)

func (t streamTrigger) String() string {
	switch t {
	case triggerStartLine:
		return "start line"
	case triggerHeadersEnd:
		return "headers end"
	case triggerBodyRead:
		return "body read"
	case triggerStop:
		return "stop"
	default:
		return "unknown"
	}
}

// StreamParser frames SIP messages of a byte stream and parses them.
//
// Messages are framed by the Content-Length header, a message without it has an empty body.
// Empty lines between messages (keep-alive pings) are skipped.
//
// It can be initialized using [Parser.ParseStream] method.
// A StreamParser is not safe for concurrent use.
type StreamParser struct {
	parser *Parser
	rdr    *bufio.Reader
	fsm    *stateless.StateMachine

	buf     strings.Builder
	hdrLine string
	bodyLen int
	hasLen  bool
}

func newStreamParser(p *Parser, r io.Reader) *StreamParser {
	sp := &StreamParser{parser: p, rdr: bufio.NewReader(r)}

	fsm := stateless.NewStateMachine(ParseStateStart)
	fsm.Configure(ParseStateStart).
		OnEntry(sp.reset).
		Permit(triggerStartLine, ParseStateHeaders).
		Permit(triggerStop, parseStateDone)
	fsm.Configure(ParseStateHeaders).
		Permit(triggerHeadersEnd, ParseStateBody).
		Permit(triggerStop, parseStateDone)
	fsm.Configure(ParseStateBody).
		Permit(triggerBodyRead, ParseStateStart).
		Permit(triggerStop, parseStateDone)
	sp.fsm = fsm
	return sp
}

func (sp *StreamParser) reset(context.Context, ...any) error {
	sp.buf.Reset()
	sp.hdrLine = ""
	sp.bodyLen = 0
	sp.hasLen = false
	return nil
}

func (sp *StreamParser) fire(t streamTrigger) { util.Must(sp.fsm.Fire(t)) }

func (sp *StreamParser) state() ParseState { return sp.fsm.MustState().(ParseState) }

// Messages returns an iterator that yields each parsed [Message] and an error, if any.
//
// In succeeded case, it yields a [Message] and nil error.
// If a framed message does not match the SIP grammar, it yields nil message and [*ParseError],
// the iteration continues with the next message.
// If the stream breaks, for example an [io.EOF] happens in the middle of a message or
// Content-Length is invalid, it yields nil message and [*ParseError] which reports [ParseError.Framing],
// the iteration stops after that.
// A clean [io.EOF] between messages stops the iteration without an error.
//
// Example:
//
//	for msg, err := range p.Messages() {
//		if err != nil {
//			var perr *sip.ParseError
//			if errors.As(err, &perr) && !perr.Framing() {
//				// skip broken message
//				continue
//			}
//			break
//		}
//		// everything ok, message is valid
//	}
func (sp *StreamParser) Messages() iter.Seq2[Message, error] {
	return func(yield func(Message, error) bool) {
		for {
			msg, more, err := sp.next()
			if !more || !yield(msg, err) {
				return
			}
		}
	}
}

// next advances the framing machine until a message is framed or the stream ends.
func (sp *StreamParser) next() (Message, bool, error) {
	for {
		state := sp.state()
		switch state {
		case ParseStateStart:
			line, err := sp.readLine()
			if err != nil {
				if errors.Is(err, io.EOF) && line == "" {
					sp.fire(triggerStop)
					return nil, false, nil
				}
				return nil, true, errtrace.Wrap(sp.broken(state, unexpectedEOF(err)))
			}
			if isEmptyLine(line) {
				continue
			}
			sp.buf.WriteString(line)
			sp.fire(triggerStartLine)
		case ParseStateHeaders:
			line, err := sp.readLine()
			if err != nil {
				return nil, true, errtrace.Wrap(sp.broken(state, unexpectedEOF(err)))
			}
			sp.buf.WriteString(line)
			if line[0] == ' ' || line[0] == '\t' {
				sp.hdrLine += line
				continue
			}
			if err := sp.flushHeader(); err != nil {
				return nil, true, errtrace.Wrap(sp.broken(state, err))
			}
			if isEmptyLine(line) {
				sp.fire(triggerHeadersEnd)
				continue
			}
			sp.hdrLine = line
		case ParseStateBody:
			if sp.bodyLen > 0 {
				body := make([]byte, sp.bodyLen)
				if _, err := io.ReadFull(sp.rdr, body); err != nil {
					return nil, true, errtrace.Wrap(sp.broken(state, unexpectedEOF(err)))
				}
				sp.buf.Write(body)
			}
			text := sp.buf.String()
			sp.fire(triggerBodyRead)
			msg, err := sp.parser.parseMessage(text)
			if err != nil {
				return nil, true, errtrace.Wrap(err)
			}
			return msg, true, nil
		default:
			return nil, false, nil
		}
	}
}

func (sp *StreamParser) readLine() (string, error) {
	line, err := sp.rdr.ReadString('\n')
	if err != nil {
		return line, errtrace.Wrap(err)
	}
	if limit := sp.parser.MaxMessageSize; limit > 0 && sp.buf.Len()+len(line) > limit {
		return line, errtrace.Wrap(ErrMessageTooLarge)
	}
	return line, nil
}

// flushHeader inspects the complete header line collected so far, Content-Length sets the body size.
func (sp *StreamParser) flushHeader() error {
	line := sp.hdrLine
	sp.hdrLine = ""
	if line == "" || sp.hasLen {
		return nil
	}
	name, _, ok := strings.Cut(line, ":")
	if !ok || header.CanonicName(name) != "Content-Length" {
		return nil
	}
	hdr, err := header.Parse(line)
	if err != nil {
		return errtrace.Wrap(errors.Join(ErrInvalidLength, err))
	}
	cl, ok := hdr.(header.ContentLength)
	if !ok {
		// a custom parser took over the header
		return nil
	}
	if cl < 0 {
		return errtrace.Wrap(ErrInvalidLength)
	}
	n := int(cl)
	if limit := sp.parser.MaxMessageSize; limit > 0 && sp.buf.Len()+n > limit {
		return errtrace.Wrap(ErrMessageTooLarge)
	}
	sp.bodyLen, sp.hasLen = n, true
	return nil
}

// broken stops the machine and builds a framing error.
func (sp *StreamParser) broken(state ParseState, err error) error {
	perr := &ParseError{Err: err, State: state, Buf: []byte(sp.buf.String()), framing: true}
	sp.fire(triggerStop)
	sp.parser.logger().LogAttrs(context.Background(), slog.LevelDebug, "SIP stream broken",
		slog.String("state", state.String()),
		slog.Any("buffer", log.ShortStringValue(perr.Buf, 64)),
		slog.Any("error", err),
	)
	return perr //errtrace:skip
}

func isEmptyLine(line string) bool { return line == "\r\n" || line == "\n" }

// unexpectedEOF replaces io.EOF in the middle of a message.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF //errtrace:skip
	}
	return err //errtrace:skip
}
