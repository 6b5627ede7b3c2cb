package errorutil

import "errors"

// IsGrammarErr reports whether err or any error in its chain
// comes from the message grammar.
func IsGrammarErr(err error) bool {
	var e interface{ Grammar() bool }
	return errors.As(err, &e) && e.Grammar()
}

// IsTemporaryErr reports whether err is marked as temporary,
// for example a read timeout of the underlying stream.
func IsTemporaryErr(err error) bool {
	var e interface{ Temporary() bool }
	return errors.As(err, &e) && e.Temporary()
}
