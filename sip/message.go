package sip

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/header"
	"github.com/ghettovoice/sipparser/internal/types"
	"github.com/ghettovoice/sipparser/uri"
)

// RequestMethod represents a SIP request method.
// See [types.RequestMethod].
type RequestMethod = types.RequestMethod

// Request method constants.
// See [types.RequestMethod].
const (
	RequestMethodInvite   = types.RequestMethodInvite
	RequestMethodAck      = types.RequestMethodAck
	RequestMethodOptions  = types.RequestMethodOptions
	RequestMethodBye      = types.RequestMethodBye
	RequestMethodCancel   = types.RequestMethodCancel
	RequestMethodRegister = types.RequestMethodRegister
)

// ProtoVersion represents a SIP protocol version.
// See [types.ProtoVersion].
type ProtoVersion = types.ProtoVersion

// Version20 is SIP/2.0.
var Version20 = types.Version20

// StatusCode represents a response status code.
// See [types.StatusCode].
type StatusCode = types.StatusCode

// Message is a parsed SIP message: [*Request] or [*Response].
type Message interface {
	// StartLine returns the request or status line without CRLF.
	StartLine() string
	// ProtoVersion returns the protocol version of the start line.
	ProtoVersion() ProtoVersion

	sipMessage()
}

// RequestLine is the first line of a request.
//
//	Request-Line = Method SP Request-URI SP SIP-Version CRLF
type RequestLine struct {
	Method RequestMethod
	// URI holds the Request-URI text as matched by the SIP-URI, SIPS-URI or absoluteURI grammar.
	URI     string
	Version ProtoVersion
}

// ParsedURI parses the Request-URI.
func (l RequestLine) ParsedURI() (uri.URI, error) { return errtrace.Wrap2(uri.Parse(l.URI)) }

func (l RequestLine) String() string {
	return string(l.Method) + " " + l.URI + " " + l.Version.String()
}

// Request represents a parsed SIP request.
type Request struct {
	Line RequestLine
	// Headers in the order they appear in the message.
	Headers []header.Header
	// Body is nil when nothing follows the header section.
	Body []byte
}

func (*Request) sipMessage() {}

// StartLine returns the request line.
func (req *Request) StartLine() string { return req.Line.String() }

// ProtoVersion returns the protocol version of the request line.
func (req *Request) ProtoVersion() ProtoVersion { return req.Line.Version }

// Method returns the request method.
func (req *Request) Method() RequestMethod { return req.Line.Method }

// Header returns all headers with the given name in the message order.
// The name is matched in any letter case, compact names are accepted.
func (req *Request) Header(name string) []header.Header {
	want := header.CanonicName(name)
	var hdrs []header.Header
	for _, h := range req.Headers {
		if h.CanonicName() == want {
			hdrs = append(hdrs, h)
		}
	}
	return hdrs
}

// FirstHeader returns the first header of type H.
func FirstHeader[H header.Header](req *Request) (H, bool) {
	var zero H
	if req == nil {
		return zero, false
	}
	for _, h := range req.Headers {
		if v, ok := h.(H); ok {
			return v, true
		}
	}
	return zero, false
}

// StatusLine is the first line of a response.
//
//	Status-Line = SIP-Version SP Status-Code SP Reason-Phrase CRLF
type StatusLine struct {
	Version ProtoVersion
	Code    StatusCode
	Reason  string
}

func (l StatusLine) String() string {
	return l.Version.String() + " " + l.Code.String() + " " + l.Reason
}

// Response represents a parsed SIP response.
//
// Only the status line is decomposed, the headers are validated but kept as text in Content.
type Response struct {
	Line StatusLine
	// Content holds the whole message: status line, headers and body.
	Content []byte
}

func (*Response) sipMessage() {}

// StartLine returns the status line.
func (res *Response) StartLine() string { return res.Line.String() }

// ProtoVersion returns the protocol version of the status line.
func (res *Response) ProtoVersion() ProtoVersion { return res.Line.Version }

// Status returns the response status code.
func (res *Response) Status() StatusCode { return res.Line.Code }
