package grammar

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/sipparser/internal/util"
)

// MaxCommentDepth limits nesting of comments.
const MaxCommentDepth = 32

const (
	errInvalidUTF8    = textError("invalid UTF-8 sequence")
	errCommentTooDeep = textError("comment nesting is too deep")
)

type textError string

func (e textError) Error() string { return string(e) }

var (
	crlf = lit("\r\n")
	// LWS = [*WSP CRLF] 1*WSP
	lws = abnf.Concat("LWS",
		abnf.Optional("[*WSP CRLF]", abnf.Concat("*WSP CRLF", many("*WSP", 0, core.WSP), crlf)),
		many("1*WSP", 1, core.WSP),
	)
	// SWS = [LWS]
	sws = abnf.Optional("SWS", lws)
	// HCOLON = *( SP / HTAB ) ":" SWS
	hcolon = abnf.Concat("HCOLON", many("*WSP", 0, core.WSP), lit(":"), sws)

	laquot = abnf.Concat("LAQUOT", sws, lit("<"))
	raquot = abnf.Concat("RAQUOT", lit(">"), sws)
	ldquot = abnf.Concat("LDQUOT", sws, core.DQUOTE)
	rdquot = abnf.Concat("RDQUOT", core.DQUOTE, sws)

	token  = many("token", 1, tokenChar)
	word   = many("word", 1, wordChar)
	digits = many("1*DIGIT", 1, core.DIGIT)

	// quoted-pair = "\" (%x00-09 / %x0B-0C / %x0E-7F)
	quotedPair = abnf.Concat("quoted-pair", lit("\\"),
		abnf.AltFirst("%x00-09 / %x0B-0C / %x0E-7F", rng(0x00, 0x09), rng(0x0b, 0x0c), rng(0x0e, 0x7f)))
	// qdtext = LWS / %x21 / %x23-5B / %x5D-7E / UTF8-NONASCII
	qdtext = abnf.Alt("qdtext", lws, lit("!"), rng(0x23, 0x5b), rng(0x5d, 0x7e), utf8NonASCII)
	// quoted-string = SWS DQUOTE *(qdtext / quoted-pair ) DQUOTE
	quotedString = abnf.Concat("quoted-string",
		sws,
		core.DQUOTE,
		many("*(qdtext / quoted-pair)", 0, abnf.AltFirst("qdtext / quoted-pair", qdtext, quotedPair)),
		core.DQUOTE,
	)

	// ctext = %x21-27 / %x2A-5B / %x5D-7E / UTF8-NONASCII / LWS
	ctext   = abnf.Alt("ctext", rng(0x21, 0x27), rng(0x2a, 0x5b), rng(0x5d, 0x7e), utf8NonASCII, lws)
	comment = commentOp()

	// TEXT-UTF8char = %x21-7E / UTF8-NONASCII
	textUTF8Char = abnf.AltFirst("TEXT-UTF8char", rng(0x21, 0x7e), utf8NonASCII)
	// TEXT-UTF8-TRIM = 1*TEXT-UTF8char *(*LWS TEXT-UTF8char)
	textUTF8Trim = abnf.Concat("TEXT-UTF8-TRIM",
		many("1*TEXT-UTF8char", 1, textUTF8Char),
		many("*(*LWS TEXT-UTF8char)", 0, abnf.Concat("*LWS TEXT-UTF8char", many("*LWS", 0, lws), textUTF8Char)),
	)
	// extension-header value = *(TEXT-UTF8char / UTF8-CONT / LWS) without trailing LWS
	extensionText = many("header-value", 0,
		abnf.Concat("*LWS (TEXT-UTF8char / UTF8-CONT)",
			many("*LWS", 0, lws),
			abnf.AltFirst("TEXT-UTF8char / UTF8-CONT", textUTF8Char, utf8Cont),
		),
	)
)

// commentOp builds comment = LPAREN *(ctext / quoted-pair / comment) RPAREN
// nested up to [MaxCommentDepth] levels.
func commentOp() abnf.Operator {
	op := abnf.Operator(tooDeepComment)
	for range MaxCommentDepth {
		op = abnf.Concat("comment",
			sws,
			lit("("),
			many("*(ctext / quoted-pair / comment)", 0, abnf.Alt("ctext / quoted-pair / comment", ctext, quotedPair, op)),
			lit(")"),
			sws,
		)
	}
	return op
}

var lparen = lit("(")

func tooDeepComment(in []byte, pos uint, _ *abnf.Nodes) error {
	ns := abnf.NewNodes()
	defer ns.Free()

	if lparen(in, pos, ns) == nil {
		return errCommentTooDeep
	}
	return abnf.ErrNotMatched //errtrace:skip
}

// Lit consumes the literal want from the start of s.
func Lit(rule, s, want string) (string, error) {
	return skip(rule, abnf.LiteralCS(rule, []byte(want)), s) //errtrace:skip
}

// LitFold consumes the literal want from the start of s ignoring letter case.
func LitFold(rule, s, want string) (string, error) {
	return skip(rule, abnf.Literal(rule, []byte(want)), s) //errtrace:skip
}

// CRLF consumes a line break.
func CRLF(s string) (string, error) { return skip("CRLF", crlf, s) }

// LWS consumes linear whitespace: [*WSP CRLF] 1*WSP.
func LWS(s string) (string, string, error) { return scan("LWS", lws, s) }

// SWS skips optional linear whitespace.
func SWS(s string) string {
	rest, _ := skip("SWS", sws, s)
	return rest
}

func sep(rule, c string) func(string) (string, error) {
	op := abnf.Concat(rule, sws, lit(c), sws)
	return func(s string) (string, error) { return skip(rule, op, s) }
}

// Separators surrounded by optional linear whitespace.
var (
	Star   = sep("STAR", "*")
	Slash  = sep("SLASH", "/")
	Equal  = sep("EQUAL", "=")
	LParen = sep("LPAREN", "(")
	RParen = sep("RPAREN", ")")
	Comma  = sep("COMMA", ",")
	Semi   = sep("SEMI", ";")
	Colon  = sep("COLON", ":")
)

// HColon consumes the header colon: *WSP ":" SWS.
func HColon(s string) (string, error) { return skip("HCOLON", hcolon, s) }

// LAQuot consumes SWS "<".
func LAQuot(s string) (string, error) { return skip("LAQUOT", laquot, s) }

// RAQuot consumes ">" SWS.
func RAQuot(s string) (string, error) { return skip("RAQUOT", raquot, s) }

// LDQuot consumes SWS DQUOTE.
func LDQuot(s string) (string, error) { return skip("LDQUOT", ldquot, s) }

// RDQuot consumes DQUOTE SWS.
func RDQuot(s string) (string, error) { return skip("RDQUOT", rdquot, s) }

// Escaped decodes an escaped octet: "%" HEXDIG HEXDIG.
func Escaped(s string) (byte, string, error) {
	n, err := match("escaped", escaped, s)
	if err != nil {
		return 0, s, err
	}
	b, _ := strconv.ParseUint(string(n.Value[1:3]), 16, 8)
	return byte(b), s[n.Len():], nil
}

// Unescape decodes all escaped octets of s.
// Malformed escapes are left as is.
func Unescape(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i := 0; i < len(s); {
		if b, rest, err := Escaped(s[i:]); err == nil {
			sb.WriteByte(b)
			i = len(s) - len(rest)
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

// Token consumes 1*token-char.
func Token(s string) (string, string, error) { return scan("token", token, s) }

// Word consumes 1*word-char.
func Word(s string) (string, string, error) { return scan("word", word, s) }

// Digits consumes 1*DIGIT.
func Digits(s string) (string, string, error) { return scan("DIGIT", digits, s) }

// Int32 consumes 1*DIGIT that must fit a signed 32-bit integer.
// Overflow is a fatal failure.
func Int32(rule, s string) (int32, string, error) {
	ds, rest, err := scan(rule, digits, s)
	if err != nil {
		return 0, s, err
	}
	n, err := strconv.ParseInt(ds, 10, 32)
	if err != nil {
		return 0, s, Fatal(KindInteger, rule, s, err)
	}
	return int32(n), rest, nil
}

// checkUTF8 verifies that the matched text of rule is valid UTF-8.
// Malformed text is a fatal encoding failure.
func checkUTF8(rule, text, s string) error {
	if utf8.ValidString(text) {
		return nil
	}
	return Fatal(KindEncoding, rule, s, errInvalidUTF8)
}

// QuotedString consumes SWS DQUOTE *(qdtext / quoted-pair) DQUOTE
// and returns the text including quotes.
func QuotedString(s string) (string, string, error) {
	n, err := match("quoted-string", quotedString, s)
	if err != nil {
		return "", s, err
	}
	qs := s[n.Children[1].Pos:n.Len()]
	if err := checkUTF8("quoted-string", qs, s); err != nil {
		return "", s, err
	}
	return qs, s[n.Len():], nil
}

// Unquote strips the quotes of a quoted-string and resolves quoted pairs.
// Text without surrounding quotes is returned as is.
func Unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// Quote wraps s into quotes escaping quotes and backslashes.
func Quote(s string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

// IsQuoted reports whether s is a complete quoted-string.
func IsQuoted[T ~string | ~[]byte](s T) bool {
	qs, rest, err := QuotedString(string(s))
	return err == nil && rest == "" && qs != ""
}

// Comment consumes a nested comment: SWS "(" *(ctext / quoted-pair / comment) ")" SWS
// and returns the text including the outer parentheses.
// Nesting deeper than [MaxCommentDepth] is a fatal failure.
func Comment(s string) (string, string, error) {
	n, err := match("comment", comment, s)
	if err != nil {
		if errors.Is(err, errCommentTooDeep) {
			return "", s, Fatal(KindSyntax, "comment", s, errCommentTooDeep)
		}
		return "", s, err
	}
	cmt := s[n.Children[1].Pos : n.Children[3].Pos+1]
	if err := checkUTF8("comment", cmt, s); err != nil {
		return "", s, err
	}
	return cmt, s[n.Len():], nil
}

// TrimmedText consumes TEXT-UTF8-TRIM: 1*TEXT-UTF8char *(*LWS TEXT-UTF8char).
func TrimmedText(s string) (string, string, error) {
	text, rest, err := scan("TEXT-UTF8-TRIM", textUTF8Trim, s)
	if err != nil {
		return "", s, err
	}
	if err := checkUTF8("TEXT-UTF8-TRIM", text, s); err != nil {
		return "", s, err
	}
	return text, rest, nil
}

// ExtensionText consumes an extension header value: *(TEXT-UTF8char / UTF8-CONT / LWS).
// Trailing whitespace is not part of the returned text.
func ExtensionText(s string) (string, string, error) {
	text, rest, err := scan("extension-header", extensionText, s)
	if err != nil {
		return "", s, err
	}
	if err := checkUTF8("extension-header", text, s); err != nil {
		return "", s, err
	}
	return text, rest, nil
}
