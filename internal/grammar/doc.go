// Package grammar implements SIP grammar productions of RFC 3261 and RFC 2806.
//
// Productions are built from [abnf.Operator] combinators. Exported functions take the input
// and return the consumed value with the rest of the input, typed values are built from
// the matched nodes.
// On failure the input is returned untouched along with an [*Error].
// Recoverable failures let callers try the next alternative, fatal ones must be propagated.
package grammar
