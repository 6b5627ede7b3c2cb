package header

import "github.com/ghettovoice/sipparser/internal/util"

// Parser parses a header value into a [Header].
// It receives the header name as it appeared in the message
// and the header value without surrounding whitespace, folded lines are kept as is.
type Parser func(name, value string) (Header, error)

// lookupParser finds the parser of the header name in parsers, names are case-insensitive.
func lookupParser(name string, parsers map[string]Parser) (Parser, bool) {
	if p, ok := parsers[name]; ok && p != nil {
		return p, true
	}
	for k, p := range parsers {
		if p != nil && util.EqFold(k, name) {
			return p, true
		}
	}
	return nil, false
}
