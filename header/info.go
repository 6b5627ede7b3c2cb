package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
	"github.com/ghettovoice/sipparser/uri"
)

// InfoAddr is an element of Alert-Info and Error-Info headers: LAQUOT absoluteURI RAQUOT *( SEMI generic-param ).
type InfoAddr struct {
	URI    uri.URI
	Params GenericParams
}

func (ia InfoAddr) String() string {
	var u string
	if ia.URI != nil {
		u = ia.URI.String()
	}
	return "<" + u + ">" + ia.Params.String()
}

// scanAngleURI consumes LAQUOT addr-spec RAQUOT.
func scanAngleURI(s string) (uri.URI, string, error) {
	r, err := grammar.LAQuot(s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	u, r, err := uri.ScanAddrSpec(r)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	if r, err = grammar.RAQuot(r); err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return u, r, nil
}

func scanInfoAddrs(rule, s string) ([]InfoAddr, string, error) {
	return errtrace.Wrap3(grammar.List(rule, s, func(s string) (InfoAddr, string, error) {
		u, r, err := scanAngleURI(s)
		if err != nil {
			return InfoAddr{}, s, errtrace.Wrap(err)
		}
		ps, r, err := scanGenericParams(r)
		if err != nil {
			return InfoAddr{}, s, errtrace.Wrap(err)
		}
		return InfoAddr{URI: u, Params: ps}, r, nil
	}))
}

// AlertInfo represents the Alert-Info header field.
type AlertInfo []InfoAddr

func (AlertInfo) CanonicName() Name { return "Alert-Info" }

func (AlertInfo) CompactName() Name { return "Alert-Info" }

func (hdr AlertInfo) RenderValue() string { return joinStrings(hdr, ", ") }

func (hdr AlertInfo) String() string { return render(hdr) }

func parseAlertInfo(s string) (Header, string, error) {
	ias, r, err := scanInfoAddrs("Alert-Info", s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return AlertInfo(ias), r, nil
}

// ErrorInfo represents the Error-Info header field.
type ErrorInfo []InfoAddr

func (ErrorInfo) CanonicName() Name { return "Error-Info" }

func (ErrorInfo) CompactName() Name { return "Error-Info" }

func (hdr ErrorInfo) RenderValue() string { return joinStrings(hdr, ", ") }

func (hdr ErrorInfo) String() string { return render(hdr) }

func parseErrorInfo(s string) (Header, string, error) {
	ias, r, err := scanInfoAddrs("Error-Info", s)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return ErrorInfo(ias), r, nil
}

// InfoPurpose is the value of the Call-Info "purpose" parameter.
type InfoPurpose string

// Purposes of RFC 3261.
const (
	InfoPurposeIcon InfoPurpose = "icon"
	InfoPurposeInfo InfoPurpose = "info"
	InfoPurposeCard InfoPurpose = "card"
)

// IsExtension reports whether the purpose is not one of RFC 3261 purposes.
func (p InfoPurpose) IsExtension() bool {
	switch util.LCase(p) {
	case InfoPurposeIcon, InfoPurposeInfo, InfoPurposeCard:
		return false
	default:
		return true
	}
}

// InfoParam is a Call-Info parameter: [PurposeParam] or [ExtParam].
type InfoParam interface {
	String() string
	infoParam()
}

// PurposeParam is the "purpose" parameter of Call-Info.
type PurposeParam struct{ Purpose InfoPurpose }

func (p PurposeParam) String() string { return "purpose=" + string(p.Purpose) }

func (PurposeParam) infoParam() {}
func (ExtParam) infoParam()     {}

func infoPurposeParam(name, s string) (InfoParam, string, bool, error) {
	if !util.EqFold(name, "purpose") {
		return nil, s, false, nil
	}
	t, r, ok := paramToken(s)
	if !ok {
		return nil, s, false, nil
	}
	return PurposeParam{Purpose: InfoPurpose(t)}, r, true, nil
}

// CallInfoEntry is an element of the Call-Info header.
type CallInfoEntry struct {
	URI    uri.URI
	Params []InfoParam
}

// Purpose returns the purpose parameter value.
func (e CallInfoEntry) Purpose() (InfoPurpose, bool) {
	for _, p := range e.Params {
		if pp, ok := p.(PurposeParam); ok {
			return pp.Purpose, true
		}
	}
	return "", false
}

func (e CallInfoEntry) String() string {
	var u string
	if e.URI != nil {
		u = e.URI.String()
	}
	return "<" + u + ">" + renderParams(e.Params)
}

// CallInfo represents the Call-Info header field.
type CallInfo []CallInfoEntry

func (CallInfo) CanonicName() Name { return "Call-Info" }

func (CallInfo) CompactName() Name { return "Call-Info" }

func (hdr CallInfo) RenderValue() string { return joinStrings(hdr, ", ") }

func (hdr CallInfo) String() string { return render(hdr) }

func parseCallInfo(s string) (Header, string, error) {
	es, r, err := grammar.List("Call-Info", s, func(s string) (CallInfoEntry, string, error) {
		u, r, err := scanAngleURI(s)
		if err != nil {
			return CallInfoEntry{}, s, errtrace.Wrap(err)
		}
		ps, r, err := scanParams(r, infoPurposeParam, func(p ExtParam) InfoParam { return p })
		if err != nil {
			return CallInfoEntry{}, s, errtrace.Wrap(err)
		}
		return CallInfoEntry{URI: u, Params: ps}, r, nil
	})
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return CallInfo(es), r, nil
}
