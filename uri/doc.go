// Package uri parses the Uniform Resource Identifiers that appear in SIP messages
// according to RFC 3261 section 25.1.
//
// # Overview
//
// Two URI types are provided:
//
//   - [SIP]: SIP and SIPS URIs (sip:, sips:). The user part is either an RFC 3261 user
//     or an RFC 2806 telephone-subscriber, followed by host, optional port, URI parameters
//     and URI headers.
//
//   - [Any]: any other absolute URI (tel:, http:, urn:, ...). It is split into scheme,
//     authority, path, query or the opaque part, as RFC 2396 defines them.
//
// Both implement the [URI] interface.
//
// # Parsing
//
//	u, err := uri.Parse("sip:alice@atlanta.example.com;transport=tcp")
//	// u is *uri.SIP
//
//	u, err = uri.Parse("tel:+1-555-123-4567")
//	// u is *uri.Any
//
// [ParseSIP] and [ParseAny] narrow the accepted forms. [ScanSIP], [ScanAny] and [ScanAddrSpec]
// consume a URI from the front of the input and return the rest of it, they are used
// by header parsers.
//
// # Raw text
//
// Parameter and header names and values are kept as they appear on the wire,
// escaped octets included. Use [Unescape] to decode them.
//
// # Thread Safety
//
// Parsed URIs are plain values and are safe for concurrent reads.
package uri
