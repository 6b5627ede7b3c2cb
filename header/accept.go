package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// MediaType is a media type or subtype token, "*" is the wildcard.
type MediaType string

// Media types of RFC 3261 media-range.
const (
	MediaTypeAny         MediaType = "*"
	MediaTypeText        MediaType = "text"
	MediaTypeImage       MediaType = "image"
	MediaTypeAudio       MediaType = "audio"
	MediaTypeVideo       MediaType = "video"
	MediaTypeApplication MediaType = "application"
	MediaTypeMessage     MediaType = "message"
	MediaTypeMultipart   MediaType = "multipart"
)

// IsExtension reports whether the type is not one of RFC 3261 discrete or composite types.
func (t MediaType) IsExtension() bool {
	switch util.LCase(t) {
	case MediaTypeAny, MediaTypeText, MediaTypeImage, MediaTypeAudio, MediaTypeVideo,
		MediaTypeApplication, MediaTypeMessage, MediaTypeMultipart:
		return false
	default:
		return true
	}
}

// MIMEType is a media type with parameters, for example "application/sdp;charset=utf-8".
type MIMEType struct {
	Type    MediaType
	Subtype MediaType
	Params  GenericParams
}

func (mt MIMEType) String() string {
	return string(mt.Type) + "/" + string(mt.Subtype) + mt.Params.String()
}

// mimeTypeEqual compares media types, type, subtype and parameter names are case-insensitive.
func mimeTypeEqual(a, b MIMEType) bool {
	if !util.EqFold(a.Type, b.Type) || !util.EqFold(a.Subtype, b.Subtype) || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !util.EqFold(a.Params[i].Name, b.Params[i].Name) || a.Params[i].Value != b.Params[i].Value {
			return false
		}
	}
	return true
}

// scanMIMEType consumes m-type SLASH m-subtype *( SEMI m-parameter ).
// With stopAtQ the parameter list ends before a "q" parameter, it starts accept-params.
func scanMIMEType(s string, stopAtQ bool) (MIMEType, string, error) {
	typ, r, err := grammar.Token(s)
	if err != nil {
		return MIMEType{}, s, errtrace.Wrap(grammar.Wrap("m-type", err))
	}
	if r, err = grammar.Slash(r); err != nil {
		return MIMEType{}, s, errtrace.Wrap(grammar.Wrap("media-type", err))
	}
	sub, r, err := grammar.Token(r)
	if err != nil {
		return MIMEType{}, s, errtrace.Wrap(grammar.Wrap("m-subtype", err))
	}

	mt := MIMEType{Type: MediaType(typ), Subtype: MediaType(sub)}
	for {
		r2, err := grammar.Semi(r)
		if err != nil {
			break
		}
		name, r3, err := grammar.Token(r2)
		if err != nil || stopAtQ && util.EqFold(name, "q") {
			break
		}
		if r3, err = grammar.Equal(r3); err != nil {
			break
		}
		var val string
		if val, r3, err = grammar.QuotedString(r3); err != nil {
			if grammar.IsFatal(err) {
				return MIMEType{}, s, errtrace.Wrap(err)
			}
			if val, r3, err = grammar.Token(r3); err != nil {
				break
			}
		}
		mt.Params = append(mt.Params, GenericParam{Name: name, Value: val})
		r = r3
	}
	return mt, r, nil
}

// AcceptParam is a parameter of Accept, Accept-Encoding and Accept-Language ranges: [QParam] or [ExtParam].
type AcceptParam interface {
	String() string
	acceptParam()
}

func (QParam) acceptParam()   {}
func (ExtParam) acceptParam() {}

func acceptQParam(name, s string) (AcceptParam, string, bool, error) {
	if !util.EqFold(name, "q") {
		return nil, s, false, nil
	}
	q, r, err := grammar.QValue(s)
	if err != nil {
		return nil, s, false, nil
	}
	return QParam{Value: q}, r, true, nil
}

func scanAcceptParams(s string) ([]AcceptParam, string, error) {
	return errtrace.Wrap3(scanParams(s, acceptQParam, func(p ExtParam) AcceptParam { return p }))
}

// acceptQ returns the qvalue of accept params, 1 when absent.
func acceptQ(ps []AcceptParam) float64 {
	for _, p := range ps {
		if q, ok := p.(QParam); ok {
			return q.Float()
		}
	}
	return 1
}

// MIMERange is an element of the Accept header.
type MIMERange struct {
	MIMEType
	Params []AcceptParam
}

// Q returns the qvalue of the range, 1 when the range has no "q" parameter.
func (mr MIMERange) Q() float64 { return acceptQ(mr.Params) }

func (mr MIMERange) String() string { return mr.MIMEType.String() + renderParams(mr.Params) }

// Accept represents the Accept header field.
// An empty value parses to an empty list.
type Accept []MIMERange

func (Accept) CanonicName() Name { return "Accept" }

func (Accept) CompactName() Name { return "Accept" }

func (hdr Accept) RenderValue() string { return joinStrings(hdr, ", ") }

func (hdr Accept) String() string { return render(hdr) }

func parseAccept(s string) (Header, string, error) {
	rngs, r, err := grammar.OptList("Accept", s, func(s string) (MIMERange, string, error) {
		mt, r, err := scanMIMEType(s, true)
		if err != nil {
			return MIMERange{}, s, errtrace.Wrap(err)
		}
		ps, r, err := scanAcceptParams(r)
		if err != nil {
			return MIMERange{}, s, errtrace.Wrap(err)
		}
		return MIMERange{MIMEType: mt, Params: ps}, r, nil
	})
	if err != nil {
		return nil, s, errtrace.Wrap(err)
	}
	return Accept(rngs), r, nil
}
