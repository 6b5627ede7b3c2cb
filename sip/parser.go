package sip

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/header"
	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/log"
	"github.com/ghettovoice/sipparser/uri"
)

var defParser = &Parser{}

// ParseMessage parses a single SIP message from the given input b (string or []byte).
// See [Parser.ParseMessage] for details.
func ParseMessage[T ~string | ~[]byte](b T) (Message, error) {
	return errtrace.Wrap2(defParser.parseMessage(string(b)))
}

// ParseRequest parses a single SIP request from the given input b (string or []byte).
// See [Parser.ParseRequest] for details.
func ParseRequest[T ~string | ~[]byte](b T) (*Request, error) {
	return errtrace.Wrap2(defParser.parseRequest(string(b)))
}

// ParseResponse parses a single SIP response from the given input b (string or []byte).
// See [Parser.ParseResponse] for details.
func ParseResponse[T ~string | ~[]byte](b T) (*Response, error) {
	return errtrace.Wrap2(defParser.parseResponse(string(b)))
}

// ParseStream creates a new [StreamParser] for the given [io.Reader] using the default parser.
// See [Parser.ParseStream] for details.
func ParseStream(r io.Reader) *StreamParser { return defParser.ParseStream(r) }

// Parser parses SIP messages.
//
// The zero value is ready to use. A parser is safe for concurrent use as long as
// its fields are not modified.
type Parser struct {
	// Logger receives debug records about failed parses.
	// If nil, nothing is logged.
	Logger *slog.Logger
	// HeaderParsers is a set of custom header parsers keyed by header name.
	// They take precedence over the built-in parsers.
	HeaderParsers map[string]header.Parser
	// MaxMessageSize limits the size of a message framed by a stream parser.
	// Zero means no limit.
	MaxMessageSize int
}

// ParseMessage parses a single SIP message from the given buffer b.
//
// It assumes that b contains a full SIP message: the start line, the header section
// terminated by an empty line and the body.
// Everything after the empty line is the body, Content-Length does not truncate it.
//
// The request grammar is tried first. If it fails with a fatal error, for example
// a known header with a broken value, the error is returned without trying the response grammar.
// Otherwise, when both fail, the returned error is the one that progressed further
// and keeps the other in its backtrace.
//
// The returned error is a [*ParseError].
func (p *Parser) ParseMessage(b []byte) (Message, error) {
	return errtrace.Wrap2(p.parseMessage(string(b)))
}

// ParseRequest parses a single SIP request from the given buffer b.
// See [Parser.ParseMessage] for details.
func (p *Parser) ParseRequest(b []byte) (*Request, error) {
	return errtrace.Wrap2(p.parseRequest(string(b)))
}

// ParseResponse parses a single SIP response from the given buffer b.
// See [Parser.ParseMessage] for details.
func (p *Parser) ParseResponse(b []byte) (*Response, error) {
	return errtrace.Wrap2(p.parseResponse(string(b)))
}

// ParseStream creates a new [StreamParser] for parsing SIP messages from the given [io.Reader].
//
// The returned parser uses the options of p.
func (p *Parser) ParseStream(r io.Reader) *StreamParser { return newStreamParser(p, r) }

func (p *Parser) logger() *slog.Logger {
	if p.Logger == nil {
		return log.Noop
	}
	return p.Logger
}

func (p *Parser) parseMessage(src string) (Message, error) {
	if src == "" {
		return nil, errtrace.Wrap(p.fail(src, ParseStateStart, ErrEmptyInput))
	}

	req, rstate, rerr := p.scanRequest(src)
	if rerr == nil {
		return req, nil
	}
	if grammar.IsFatal(rerr) {
		return nil, errtrace.Wrap(p.fail(src, rstate, rerr))
	}

	res, sstate, serr := p.scanResponse(src)
	if serr == nil {
		return res, nil
	}
	state := rstate
	if grammar.IsFatal(serr) || further(rerr, serr) {
		state = sstate
	}
	return nil, errtrace.Wrap(p.fail(src, state, grammar.Join("SIP-message", rerr, serr)))
}

func (p *Parser) parseRequest(src string) (*Request, error) {
	if src == "" {
		return nil, errtrace.Wrap(p.fail(src, ParseStateStart, ErrEmptyInput))
	}
	req, state, err := p.scanRequest(src)
	if err != nil {
		return nil, errtrace.Wrap(p.fail(src, state, err))
	}
	return req, nil
}

func (p *Parser) parseResponse(src string) (*Response, error) {
	if src == "" {
		return nil, errtrace.Wrap(p.fail(src, ParseStateStart, ErrEmptyInput))
	}
	res, state, err := p.scanResponse(src)
	if err != nil {
		return nil, errtrace.Wrap(p.fail(src, state, err))
	}
	return res, nil
}

// further reports whether failure b consumed more input than failure a.
func further(a, b error) bool {
	ea, ok1 := grammar.AsError(a)
	eb, ok2 := grammar.AsError(b)
	return ok1 && ok2 && grammar.Furthest(ea, eb) == eb
}

func (p *Parser) fail(src string, state ParseState, err error) error {
	grammar.Locate(err, src)
	perr := &ParseError{Err: err, State: state}
	attrs := []slog.Attr{
		slog.String("state", state.String()),
		slog.Any("input", log.ShortStringValue(src, 64)),
	}
	if e, ok := grammar.AsError(err); ok {
		perr.Buf = []byte(lineAt(src, e.Offset))
		attrs = append(attrs, slog.Any("grammar", e))
	}
	p.logger().LogAttrs(context.Background(), slog.LevelDebug, "failed to parse SIP message",
		append(attrs, slog.Any("error", err))...)
	return perr //errtrace:skip
}

// lineAt returns the line of src that contains the offset off.
func lineAt(src string, off int) string {
	if off < 0 || off > len(src) {
		return ""
	}
	start, end := 0, len(src)
	if i := strings.LastIndex(src[:off], "\r\n"); i >= 0 {
		start = i + 2
	}
	if i := strings.Index(src[off:], "\r\n"); i >= 0 {
		end = off + i
	}
	return src[start:end]
}

func (p *Parser) scanRequest(src string) (*Request, ParseState, error) {
	line, r, err := scanRequestLine(src)
	if err != nil {
		return nil, ParseStateStart, errtrace.Wrap(err)
	}
	hdrs, r, err := p.scanHeaders(r)
	if err != nil {
		return nil, ParseStateHeaders, errtrace.Wrap(err)
	}
	req := &Request{Line: line, Headers: hdrs}
	if r != "" {
		req.Body = []byte(r)
	}
	return req, ParseStateBody, nil
}

func (p *Parser) scanResponse(src string) (*Response, ParseState, error) {
	line, r, err := scanStatusLine(src)
	if err != nil {
		return nil, ParseStateStart, errtrace.Wrap(err)
	}
	if _, _, err = p.scanHeaders(r); err != nil {
		return nil, ParseStateHeaders, errtrace.Wrap(err)
	}
	return &Response{Line: line, Content: []byte(src)}, ParseStateBody, nil
}

// scanRequestLine consumes Method SP Request-URI SP SIP-Version CRLF.
func scanRequestLine(s string) (RequestLine, string, error) {
	m, r, err := grammar.Method(s)
	if err != nil {
		return RequestLine{}, s, errtrace.Wrap(grammar.Wrap("Request-Line", err))
	}
	if r, err = grammar.Lit("Request-Line", r, " "); err != nil {
		return RequestLine{}, s, errtrace.Wrap(err)
	}
	_, r2, err := uri.ScanAddrSpec(r)
	if err != nil {
		return RequestLine{}, s, errtrace.Wrap(grammar.Wrap("Request-URI", err))
	}
	line := RequestLine{Method: RequestMethod(m), URI: r[:len(r)-len(r2)]}
	if r, err = grammar.Lit("Request-Line", r2, " "); err != nil {
		return RequestLine{}, s, errtrace.Wrap(err)
	}
	if line.Version.Major, line.Version.Minor, r, err = grammar.Version(r); err != nil {
		return RequestLine{}, s, errtrace.Wrap(grammar.Wrap("Request-Line", err))
	}
	if r, err = grammar.CRLF(r); err != nil {
		return RequestLine{}, s, errtrace.Wrap(grammar.Wrap("Request-Line", err))
	}
	return line, r, nil
}

// scanStatusLine consumes SIP-Version SP Status-Code SP Reason-Phrase CRLF.
func scanStatusLine(s string) (StatusLine, string, error) {
	var (
		line StatusLine
		err  error
		r    string
	)
	if line.Version.Major, line.Version.Minor, r, err = grammar.Version(s); err != nil {
		return StatusLine{}, s, errtrace.Wrap(grammar.Wrap("Status-Line", err))
	}
	if r, err = grammar.Lit("Status-Line", r, " "); err != nil {
		return StatusLine{}, s, errtrace.Wrap(err)
	}
	code, r, err := grammar.StatusCode(r)
	if err != nil {
		return StatusLine{}, s, errtrace.Wrap(grammar.Wrap("Status-Line", err))
	}
	line.Code = StatusCode(code)
	if r, err = grammar.Lit("Status-Line", r, " "); err != nil {
		return StatusLine{}, s, errtrace.Wrap(err)
	}
	if line.Reason, r, err = grammar.ReasonPhrase(r); err != nil {
		return StatusLine{}, s, errtrace.Wrap(grammar.Wrap("Status-Line", err))
	}
	if r, err = grammar.CRLF(r); err != nil {
		return StatusLine{}, s, errtrace.Wrap(grammar.Wrap("Status-Line", err))
	}
	return line, r, nil
}

// scanHeaders consumes *( message-header ) CRLF.
func (p *Parser) scanHeaders(s string) ([]header.Header, string, error) {
	var hdrs []header.Header
	for {
		if r, err := grammar.CRLF(s); err == nil {
			return hdrs, r, nil
		}
		hdr, r, err := header.ScanWith(s, p.HeaderParsers)
		if err != nil {
			return nil, s, errtrace.Wrap(grammar.Wrap("message-header", err))
		}
		hdrs = append(hdrs, hdr)
		s = r
	}
}
