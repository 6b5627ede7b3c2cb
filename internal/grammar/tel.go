package grammar

import "github.com/ghettovoice/abnf"

// Telephone subscriber productions of RFC 2806.
var (
	visualSep  = oneOf("visual-separator", "-.()")
	phoneDigit = abnf.AltFirst("phonedigit", core.DIGIT, visualSep)
	dialDigit  = abnf.AltFirst("phonedigit / dtmf-digit / pause-character",
		phoneDigit,
		oneOf("dtmf-digit", "*#ABCD"),
		oneOf("pause-character", "pw"),
	)
	phoneDigits = many("1*phonedigit", 1, phoneDigit)
	dialDigits  = many("1*(phonedigit / dtmf-digit / pause-character)", 1, dialDigit)

	// isdn-subaddress = ";isub=" 1*phonedigit
	isdnSubaddress = abnf.Optional("[isdn-subaddress]", abnf.Concat("isdn-subaddress", lit(";isub="), phoneDigits))
	// post-dial = ";postd=" 1*(phonedigit / dtmf-digit / pause-character)
	postDial = abnf.Optional("[post-dial]", abnf.Concat("post-dial", lit(";postd="), dialDigits))

	// private-prefix = (%x21-22 / %x24-27 / %x2C / %x2F / %x3A / %x3C-40 / %x45-4F
	//                  / %x51-56 / %x58-60 / %x65-6F / %x71-76 / %x78-7E) *(%x21-3A / %x3C-7E)
	privatePrefix = abnf.Concat("private-prefix",
		abnf.AltFirst("private-prefix-first",
			rng(0x21, 0x22), rng(0x24, 0x27), rng(0x2c, 0x2c), rng(0x2f, 0x2f), rng(0x3a, 0x3a), rng(0x3c, 0x40),
			rng(0x45, 0x4f), rng(0x51, 0x56), rng(0x58, 0x60), rng(0x65, 0x6f), rng(0x71, 0x76), rng(0x78, 0x7e),
		),
		many("*(%x21-3A / %x3C-7E)", 0, abnf.AltFirst("%x21-3A / %x3C-7E", rng(0x21, 0x3a), rng(0x3c, 0x7e))),
	)
	// phone-context-ident = network-prefix / private-prefix
	// network-prefix = global-network-prefix / local-network-prefix
	phoneContextIdent = abnf.AltFirst("phone-context-ident",
		abnf.Concat("global-network-prefix", lit("+"), phoneDigits),
		many("local-network-prefix", 1, dialDigit),
		privatePrefix,
	)
	// area-specifier = ";phone-context=" phone-context-ident
	areaSpecifier = abnf.Concat("area-specifier", lit(";phone-context="), phoneContextIdent)
	// service-provider = ";tsp=" provider-hostname
	serviceProvider = abnf.Concat("service-provider", lit(";tsp="), hostname)

	futureToken = many("future-token", 1, abnf.AltFirst("token-char", alphanum, oneOf("token-mark", "!#$%&'*+-.^_`|~")))
	// quoted-string = DQUOTE *( "\" CHAR / %x20-21 / %x23-7E / %x80-FF ) DQUOTE
	telQuotedString = abnf.Concat("quoted-string",
		core.DQUOTE,
		many("*qchar", 0, abnf.AltFirst("qchar",
			abnf.Concat("\"\\\" CHAR", lit("\\"), rng(0x01, 0x7f)),
			rng(0x20, 0x21), rng(0x23, 0x5b), rng(0x5d, 0x7e), rng(0x80, 0xff),
		)),
		core.DQUOTE,
	)
	// future-extension = ";" 1*(token-char) [ "=" ( ( 1*(token-char) [ "?" 1*(token-char) ] ) / quoted-string ) ]
	futureExtension = abnf.Concat("future-extension",
		lit(";"),
		futureToken,
		abnf.Optional("[ \"=\" value ]", abnf.Concat("\"=\" value",
			lit("="),
			abnf.AltFirst("value",
				abnf.Concat("token [ \"?\" token ]", futureToken, abnf.Optional("[ \"?\" token ]", abnf.Concat("\"?\" token", lit("?"), futureToken))),
				telQuotedString,
			),
		)),
	)
	telParams = many("*(area-specifier / service-provider / future-extension)", 0,
		abnf.AltFirst("tel-param", areaSpecifier, serviceProvider, futureExtension))

	// global-phone-number = "+" base-phone-number [isdn-subaddress] [post-dial] *(area-specifier / service-provider / future-extension)
	globalPhoneNumber = abnf.Concat("global-phone-number", lit("+"), phoneDigits, isdnSubaddress, postDial, telParams)
	// local-phone-number = 1*(phonedigit / dtmf-digit / pause-character) [isdn-subaddress] [post-dial]
	//                      area-specifier *(area-specifier / service-provider / future-extension)
	localPhoneNumber = abnf.Concat("local-phone-number", dialDigits, isdnSubaddress, postDial, areaSpecifier, telParams)

	telephoneSubscriber = abnf.AltFirst("telephone-subscriber", globalPhoneNumber, localPhoneNumber)
)

// TelephoneSubscriber consumes global-phone-number / local-phone-number.
func TelephoneSubscriber(s string) (string, string, error) {
	return scan("telephone-subscriber", telephoneSubscriber, s)
}

// IsTelephoneSubscriber reports whether s is a complete telephone-subscriber.
func IsTelephoneSubscriber[T ~string | ~[]byte](s T) bool {
	_, rest, err := TelephoneSubscriber(string(s))
	return err == nil && rest == ""
}
