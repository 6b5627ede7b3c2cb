package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// ContentType represents the Content-Type header field.
type ContentType MIMEType

func (ContentType) CanonicName() Name { return "Content-Type" }

func (ContentType) CompactName() Name { return "c" }

func (hdr ContentType) RenderValue() string { return MIMEType(hdr).String() }

func (hdr ContentType) String() string { return render(hdr) }

// Equal compares media types, type, subtype and parameter names are case-insensitive.
func (hdr ContentType) Equal(val any) bool {
	switch v := val.(type) {
	case ContentType:
		return mimeTypeEqual(MIMEType(hdr), MIMEType(v))
	case *ContentType:
		return v != nil && mimeTypeEqual(MIMEType(hdr), MIMEType(*v))
	default:
		return false
	}
}

func parseContentType(s string) (Header, string, error) {
	mt, r, err := scanMIMEType(s, false)
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return ContentType(mt), r, nil
}

// DispositionType is the disp-type of Content-Disposition.
type DispositionType string

// Disposition types of RFC 3261.
const (
	DispositionRender  DispositionType = "render"
	DispositionSession DispositionType = "session"
	DispositionIcon    DispositionType = "icon"
	DispositionAlert   DispositionType = "alert"
)

// IsExtension reports whether the type is not one of RFC 3261 types.
func (t DispositionType) IsExtension() bool {
	switch util.LCase(t) {
	case DispositionRender, DispositionSession, DispositionIcon, DispositionAlert:
		return false
	default:
		return true
	}
}

// Handling is the value of the Content-Disposition "handling" parameter.
type Handling string

// Handling values of RFC 3261.
const (
	HandlingOptional Handling = "optional"
	HandlingRequired Handling = "required"
)

// IsExtension reports whether the handling is not one of RFC 3261 values.
func (h Handling) IsExtension() bool {
	switch util.LCase(h) {
	case HandlingOptional, HandlingRequired:
		return false
	default:
		return true
	}
}

// DispositionParam is a Content-Disposition parameter: [HandlingParam] or [ExtParam].
type DispositionParam interface {
	String() string
	dispositionParam()
}

// HandlingParam is the "handling" parameter of Content-Disposition.
type HandlingParam struct{ Handling Handling }

func (p HandlingParam) String() string { return "handling=" + string(p.Handling) }

func (HandlingParam) dispositionParam() {}
func (ExtParam) dispositionParam()      {}

func dispHandlingParam(name, s string) (DispositionParam, string, bool, error) {
	if !util.EqFold(name, "handling") {
		return nil, s, false, nil
	}
	t, r, ok := paramToken(s)
	if !ok {
		return nil, s, false, nil
	}
	return HandlingParam{Handling: Handling(t)}, r, true, nil
}

// ContentDisposition represents the Content-Disposition header field.
type ContentDisposition struct {
	Type   DispositionType
	Params []DispositionParam
}

func (*ContentDisposition) CanonicName() Name { return "Content-Disposition" }

func (*ContentDisposition) CompactName() Name { return "Content-Disposition" }

func (hdr *ContentDisposition) RenderValue() string { return string(hdr.Type) + renderParams(hdr.Params) }

func (hdr *ContentDisposition) String() string { return render(hdr) }

// Handling returns the "handling" parameter value.
func (hdr *ContentDisposition) Handling() (Handling, bool) {
	for _, p := range hdr.Params {
		if h, ok := p.(HandlingParam); ok {
			return h.Handling, true
		}
	}
	return "", false
}

func parseContentDisposition(s string) (Header, string, error) {
	t, r, err := grammar.Token(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("disp-type", err))
	}
	ps, r, err := scanParams(r, dispHandlingParam, func(p ExtParam) DispositionParam { return p })
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return &ContentDisposition{Type: DispositionType(t), Params: ps}, r, nil
}
