// Package header parses SIP message header fields defined by RFC 3261.
//
// # Overview
//
// Every header field with an RFC 3261 grammar has a concrete type: [Accept], [Authorization],
// [CallID], [Contact], [ContentType], [CSeq], [From], [To], [Via] and so on. Header fields
// without a built-in parser are parsed as [Extension], so an unknown name never fails a message.
//
// All header types implement the [Header] interface.
//
// # Parsing
//
// Use [Parse] to parse one header line from string or []byte input:
//
//	hdr, err := header.Parse("From: <sip:alice@example.com>;tag=1234")
//	// hdr is *header.From
//
// [Scan] consumes one CRLF-terminated header field from the front of the input and returns the rest,
// the message parser calls it in a loop.
//
// A known name with a value that does not match its grammar is a fatal error,
// the header is never demoted to [Extension] then.
//
// # Header Names
//
// Names are matched case-insensitively. Compact forms of RFC 3261 are recognized:
//
//	"c" → "Content-Type"
//	"e" → "Content-Encoding"
//	"f" → "From"
//	"i" → "Call-ID"
//	"k" → "Supported"
//	"l" → "Content-Length"
//	"m" → "Contact"
//	"s" → "Subject"
//	"t" → "To"
//	"v" → "Via"
//
// Use [CanonicName] to normalize any header name.
//
// # Parameters
//
// Parameter lists are ordered as on the wire. Parameters with a grammar of their own are parsed
// into dedicated types ([QParam], [ExpiresParam], [TagParam], [BranchParam], ...), the rest are
// kept as [ExtParam] or [GenericParam] with quoted values left quoted.
//
// # Custom Parsers
//
// [ScanWith] takes a per-call set of parsers keyed by header name, they win over built-in parsers:
//
//	parsers := map[string]header.Parser{
//		"x-custom": func(name, value string) (header.Header, error) {
//			return &MyCustomHeader{Name: name, Value: value}, nil
//		},
//	}
//	hdr, rest, err := header.ScanWith("X-Custom: 42\r\n", parsers)
//
// An error returned by a custom parser fails the header.
// The message parser passes its HeaderParsers set the same way.
//
// # Digest Authentication
//
// [Challenge.DigestChallenge] and [Credentials.DigestCredentials] convert Digest values into
// the types of github.com/icholy/digest, which computes responses to challenges.
package header
