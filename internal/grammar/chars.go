package grammar

import "github.com/ghettovoice/abnf"

// Character rules of RFC 3261 section 25.1.
var (
	// alphanum = ALPHA / DIGIT
	alphanum = abnf.Alt("alphanum", core.ALPHA, core.DIGIT)
	// reserved = ";" / "/" / "?" / ":" / "@" / "&" / "=" / "+" / "$" / ","
	reserved = oneOf("reserved", ";/?:@&=+$,")
	// mark = "-" / "_" / "." / "!" / "~" / "*" / "'" / "(" / ")"
	mark = oneOf("mark", "-_.!~*'()")
	// unreserved = alphanum / mark
	unreserved = abnf.Alt("unreserved", alphanum, mark)
	// escaped = "%" HEXDIG HEXDIG
	escaped = abnf.Concat("escaped", lit("%"), core.HEXDIG, core.HEXDIG)
	// lhex = DIGIT / %x61-66
	lhex = abnf.Alt("LHEX", core.DIGIT, rng(0x61, 0x66))

	// token = 1*(alphanum / "-" / "." / "!" / "%" / "*" / "_" / "+" / "`" / "'" / "~" )
	tokenChar = abnf.Alt("token-char", alphanum, oneOf("token-mark", "-.!%*_+`'~"))
	// word = 1*(alphanum / "-" / "." / "!" / "%" / "*" / "_" / "+" / "`" / "'" / "~" /
	//        "(" / ")" / "<" / ">" / ":" / "\" / DQUOTE / "/" / "[" / "]" / "?" / "{" / "}" )
	wordChar = abnf.Alt("word-char", tokenChar, oneOf("word-mark", "()<>:\\\"/[]?{}"))

	// user-unreserved = "&" / "=" / "+" / "$" / "," / ";" / "?" / "/"
	userChar = abnf.Alt("user-char", unreserved, escaped, oneOf("user-unreserved", "&=+$,;?/"))
	// password = *( unreserved / escaped / "&" / "=" / "+" / "$" / "," )
	passwordChar = abnf.Alt("password-char", unreserved, escaped, oneOf("password-mark", "&=+$,"))
	// paramchar = param-unreserved / unreserved / escaped
	// param-unreserved = "[" / "]" / "/" / ":" / "&" / "+" / "$"
	paramChar = abnf.Alt("paramchar", unreserved, escaped, oneOf("param-unreserved", "[]/:&+$"))
	// hname = 1*( hnv-unreserved / unreserved / escaped )
	// hnv-unreserved = "[" / "]" / "/" / "?" / ":" / "+" / "$"
	headerChar = abnf.Alt("hnv-char", unreserved, escaped, oneOf("hnv-unreserved", "[]/?:+$"))
	// uric = reserved / unreserved / escaped
	uric = abnf.Alt("uric", reserved, unreserved, escaped)

	// UTF8-CONT = %x80-BF
	utf8Cont = abnf.Range("UTF8-CONT", []byte{0x80}, []byte{0xbf})
	// UTF8-NONASCII = %xC0-DF 1UTF8-CONT / %xE0-EF 2UTF8-CONT / %xF0-F7 3UTF8-CONT
	//               / %xF8-Fb 4UTF8-CONT / %xFC-FD 5UTF8-CONT
	utf8NonASCII = abnf.AltFirst("UTF8-NONASCII",
		abnf.Concat("%xC0-DF 1UTF8-CONT", rng(0xc0, 0xdf), utf8Cont),
		abnf.Concat("%xE0-EF 2UTF8-CONT", rng(0xe0, 0xef), abnf.RepeatN("2UTF8-CONT", 2, utf8Cont)),
		abnf.Concat("%xF0-F7 3UTF8-CONT", rng(0xf0, 0xf7), abnf.RepeatN("3UTF8-CONT", 3, utf8Cont)),
		abnf.Concat("%xF8-Fb 4UTF8-CONT", rng(0xf8, 0xfb), abnf.RepeatN("4UTF8-CONT", 4, utf8Cont)),
		abnf.Concat("%xFC-FD 5UTF8-CONT", rng(0xfc, 0xfd), abnf.RepeatN("5UTF8-CONT", 5, utf8Cont)),
	)
)

var (
	alphaClass = classOf(core.ALPHA)
	digitClass = classOf(core.DIGIT)
	lhexClass  = classOf(lhex)
	wspClass   = classOf(core.WSP)
	tokenClass = classOf(tokenChar)
)

func IsCharAlpha(c byte) bool { return alphaClass[c] }

func IsCharDigit(c byte) bool { return digitClass[c] }

// IsCharLowerHex reports lowercase hex digits used by digest responses.
func IsCharLowerHex(c byte) bool { return lhexClass[c] }

func IsCharWSP(c byte) bool { return wspClass[c] }

func IsCharToken(c byte) bool { return tokenClass[c] }
