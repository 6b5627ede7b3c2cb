/*
Package sip parses SIP messages (RFC 3261 section 7).

# Parsing

A whole message held in memory is parsed with [ParseMessage], which tries the request grammar
first and the response grammar second:

	msg, err := sip.ParseMessage(buf)
	if err != nil {
		var perr *sip.ParseError
		if errors.As(err, &perr) {
			// perr.State tells which part of the message failed
		}
		return err
	}
	switch m := msg.(type) {
	case *sip.Request:
		// m.Line.Method, m.Headers, m.Body
	case *sip.Response:
		// m.Line.Code, m.Content
	}

[ParseRequest] and [ParseResponse] accept only one kind of message.

Parsed values never alias the input buffer, the buffer can be reused right after the call returns.

# Requests and responses

A [Request] keeps its headers in wire order, see package [github.com/ghettovoice/sipparser/header]
for the header types.
The body is everything after the empty line that ends the header section.

A [Response] is coarse: its status line is decomposed, the headers are validated with the same
header grammar as request headers, but only the raw message text is kept in [Response.Content].

# Configuration

[Parser] holds the parsing options: a logger and custom header parsers that take precedence over
the built-in ones. The package level functions use a parser with default options.

# Streams

[Parser.ParseStream] frames messages of a byte stream, such as a TCP connection, by the
Content-Length header and parses each of them:

	sp := sip.ParseStream(conn)
	for msg, err := range sp.Messages() {
		if err != nil {
			var perr *sip.ParseError
			if errors.As(err, &perr) && perr.Framing() {
				// the stream is broken, the iterator stops
			}
			continue
		}
		// handle msg
	}

# Errors

Grammar failures carry a kind that can be matched with [errors.Is]:
[ErrSyntax], [ErrInvalidInteger], [ErrInvalidTTL], [ErrInvalidHostname], [ErrInvalidDomainLabel]
and [ErrInvalidEncoding].
*/
package sip

//go:generate go tool errtrace -w .
