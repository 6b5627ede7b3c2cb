package grammar

import (
	"strconv"

	"github.com/ghettovoice/abnf"
)

const (
	errTTLRange      = textError("TTL is out of range 0-255")
	errMalformedEsc  = textError("malformed escaped octet")
	errTrailingDigit = textError("unexpected digit")
)

var (
	// qvalue = ( "0" [ "." 0*3DIGIT ] ) / ( "1" [ "." 0*3("0") ] )
	qvalue = abnf.Alt("qvalue",
		abnf.Concat("\"0\" [ \".\" 0*3DIGIT ]", lit("0"),
			abnf.Optional("[ \".\" 0*3DIGIT ]", abnf.Concat("\".\" 0*3DIGIT", dot, abnf.Repeat("0*3DIGIT", 0, 3, core.DIGIT))),
		),
		abnf.Concat("\"1\" [ \".\" 0*3(\"0\") ]", lit("1"),
			abnf.Optional("[ \".\" 0*3(\"0\") ]", abnf.Concat("\".\" 0*3(\"0\")", dot, abnf.Repeat("0*3(\"0\")", 0, 3, lit("0")))),
		),
	)

	// SIP-Version = "SIP" "/" 1*DIGIT "." 1*DIGIT
	sipVersion = abnf.Concat("SIP-Version", litFold("SIP"), lit("/"), digits, dot, digits)
	// Status-Code = 3DIGIT
	statusCode = abnf.RepeatN("Status-Code", 3, core.DIGIT)
	// Reason-Phrase = *(reserved / unreserved / escaped / UTF8-NONASCII / UTF8-CONT / SP / HTAB)
	reasonPhrase = many("Reason-Phrase", 0,
		abnf.AltFirst("reason-char", reserved, unreserved, escaped, utf8NonASCII, utf8Cont, core.WSP))
)

// GenericParam consumes token [ EQUAL gen-value ], gen-value = token / host / quoted-string.
// The value is returned verbatim, quoted values keep their quotes.
func GenericParam(s string) (name, value, rest string, err error) {
	name, r, err := Token(s)
	if err != nil {
		return "", "", s, Wrap("generic-param", err)
	}
	r2, err := Equal(r)
	if err != nil {
		return name, "", r, nil
	}
	value, r2, err = GenValue(r2)
	if err != nil {
		return "", "", s, Wrap("generic-param", err)
	}
	return name, value, r2, nil
}

// GenValue consumes token / host / quoted-string.
func GenValue(s string) (string, string, error) {
	if v, rest, err := QuotedString(s); err == nil || IsFatal(err) {
		return v, rest, err
	}
	tok, trest, terr := Token(s)
	h, hrest, herr := Host(s)
	switch {
	case terr == nil && herr == nil:
		if len(h) > len(tok) {
			return h, hrest, nil
		}
		return tok, trest, nil
	case terr == nil:
		return tok, trest, nil
	case herr == nil:
		return h, hrest, nil
	}
	return "", s, Join("gen-value", terr, herr)
}

// QValue consumes ( "0" [ "." 0*3DIGIT ] ) / ( "1" [ "." 0*3("0") ] ).
func QValue(s string) (string, string, error) {
	q, rest, err := scan("qvalue", qvalue, s)
	if err != nil {
		return "", s, err
	}
	if _, _, err := scan("qvalue", core.DIGIT, rest); err == nil {
		return "", s, FailKind(KindSyntax, "qvalue", rest, errTrailingDigit)
	}
	return q, rest, nil
}

// TTL consumes a TTL value: 1*3DIGIT in range 0-255.
// A value out of range is a fatal failure.
func TTL(s string) (int32, string, error) {
	n, rest, err := Int32("ttl", s)
	if err != nil {
		return 0, s, err
	}
	if n > 255 {
		return 0, s, Fatal(KindTTL, "ttl", s, errTTLRange)
	}
	return n, rest, nil
}

// Method consumes a request method token.
func Method(s string) (string, string, error) {
	m, rest, err := Token(s)
	if err != nil {
		return "", s, Wrap("Method", err)
	}
	return m, rest, nil
}

// Version consumes "SIP" "/" 1*DIGIT "." 1*DIGIT, the literal is case-insensitive.
func Version(s string) (major, minor int32, rest string, err error) {
	n, err := match("SIP-Version", sipVersion, s)
	if err != nil {
		return 0, 0, s, err
	}
	if major, _, err = Int32("SIP-Version", nodeText(s, n.Children[2])); err != nil {
		return 0, 0, s, Wrap("SIP-Version", err)
	}
	if minor, _, err = Int32("SIP-Version", nodeText(s, n.Children[4])); err != nil {
		return 0, 0, s, Wrap("SIP-Version", err)
	}
	return major, minor, s[n.Len():], nil
}

// StatusCode consumes 3DIGIT.
func StatusCode(s string) (int, string, error) {
	code, rest, err := scan("Status-Code", statusCode, s)
	if err != nil {
		return 0, s, err
	}
	if _, _, err := scan("Status-Code", core.DIGIT, rest); err == nil {
		return 0, s, FailKind(KindSyntax, "Status-Code", rest, errTrailingDigit)
	}
	n, _ := strconv.Atoi(code)
	return n, rest, nil
}

// ReasonPhrase consumes *(reserved / unreserved / escaped / UTF8-NONASCII / UTF8-CONT / SP / HTAB).
func ReasonPhrase(s string) (string, string, error) {
	r, rest, err := scan("Reason-Phrase", reasonPhrase, s)
	if err != nil {
		return "", s, err
	}
	// a percent sign can only start an escaped octet
	if _, err := skip("Reason-Phrase", lit("%"), rest); err == nil {
		return "", s, FailKind(KindSyntax, "Reason-Phrase", rest, errMalformedEsc)
	}
	if err := checkUTF8("Reason-Phrase", r, s); err != nil {
		return "", s, err
	}
	return r, rest, nil
}

// OptionTag consumes an option tag, it is a token.
func OptionTag(s string) (string, string, error) {
	t, rest, err := Token(s)
	if err != nil {
		return "", s, Wrap("option-tag", err)
	}
	return t, rest, nil
}

// List consumes elem *( COMMA elem ) and collects values produced by elem.
func List[T any](rule, s string, elem func(string) (T, string, error)) ([]T, string, error) {
	v, r, err := elem(s)
	if err != nil {
		return nil, s, Wrap(rule, err)
	}
	vals := []T{v}
	for {
		r2, err := Comma(r)
		if err != nil {
			return vals, r, nil
		}
		v, r2, err = elem(r2)
		if err != nil {
			return nil, s, Wrap(rule, err)
		}
		vals = append(vals, v)
		r = r2
	}
}

// OptList is [List] that accepts an empty list.
// The list is empty when s has no element at its start.
func OptList[T any](rule, s string, elem func(string) (T, string, error)) ([]T, string, error) {
	vals, r, err := List(rule, s, elem)
	if err != nil {
		if IsFatal(err) || progressed(err, s) {
			return nil, s, err
		}
		return []T{}, s, nil
	}
	return vals, r, nil
}

// progressed reports whether the failure happened after the first element started.
func progressed(err error, s string) bool {
	e, ok := AsError(err)
	return ok && len(e.Input) < len(s)
}
