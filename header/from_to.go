package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// FromParam is a From or To parameter: [TagParam] or [ExtParam].
type FromParam interface {
	String() string
	fromParam()
}

// ToParam is a To parameter, it shares the grammar of From parameters.
type ToParam = FromParam

func (TagParam) fromParam() {}
func (ExtParam) fromParam() {}

func fromTagParam(name, s string) (FromParam, string, bool, error) {
	if !util.EqFold(name, "tag") {
		return nil, s, false, nil
	}
	t, r, ok := paramToken(s)
	if !ok {
		return nil, s, false, nil
	}
	return TagParam{Value: t}, r, true, nil
}

func scanFromTo(s string) (NameAddr, []FromParam, string, error) {
	addr, r, err := scanAddress(s)
	if err != nil {
		return NameAddr{}, nil, s, errtrace.Wrap(err)
	}
	ps, r, err := scanParams(r, fromTagParam, func(p ExtParam) FromParam { return p })
	if err != nil {
		return NameAddr{}, nil, s, errtrace.Wrap(err)
	}
	return addr, ps, r, nil
}

func findTag(ps []FromParam) (string, bool) {
	for _, p := range ps {
		if t, ok := p.(TagParam); ok {
			return t.Value, true
		}
	}
	return "", false
}

// From represents the From header field.
type From struct {
	NameAddr
	Params []FromParam
}

func (*From) CanonicName() Name { return "From" }

func (*From) CompactName() Name { return "f" }

func (hdr *From) RenderValue() string { return renderAddress(hdr.NameAddr) + renderParams(hdr.Params) }

func (hdr *From) String() string { return render(hdr) }

// Tag returns the "tag" parameter value.
func (hdr *From) Tag() (string, bool) { return findTag(hdr.Params) }

func parseFrom(s string) (Header, string, error) {
	addr, ps, r, err := scanFromTo(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("From", err))
	}
	return &From{NameAddr: addr, Params: ps}, r, nil
}

// To represents the To header field.
type To struct {
	NameAddr
	Params []ToParam
}

func (*To) CanonicName() Name { return "To" }

func (*To) CompactName() Name { return "t" }

func (hdr *To) RenderValue() string { return renderAddress(hdr.NameAddr) + renderParams(hdr.Params) }

func (hdr *To) String() string { return render(hdr) }

// Tag returns the "tag" parameter value.
func (hdr *To) Tag() (string, bool) { return findTag(hdr.Params) }

func parseTo(s string) (Header, string, error) {
	addr, ps, r, err := scanFromTo(s)
	if err != nil {
		return nil, s, errtrace.Wrap(grammar.Wrap("To", err))
	}
	return &To{NameAddr: addr, Params: ps}, r, nil
}
