package types

import (
	"strings"

	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

// GenericParam is a "name[=value]" parameter.
// Empty Value means the parameter has no value, quoted values keep their quotes.
type GenericParam struct {
	Name  string
	Value string
}

// Unquoted returns the value without quotes.
func (p GenericParam) Unquoted() string { return grammar.Unquote(p.Value) }

func (p GenericParam) String() string {
	if p.Value == "" {
		return p.Name
	}
	return p.Name + "=" + p.Value
}

func (p GenericParam) IsValid() bool {
	return grammar.IsToken(p.Name) &&
		(p.Value == "" || grammar.IsToken(p.Value) || grammar.IsHost(p.Value) || grammar.IsQuoted(p.Value))
}

// GenericParams is an ordered list of generic parameters.
type GenericParams []GenericParam

// Get returns the value of the first parameter with the name, names are case-insensitive.
func (ps GenericParams) Get(name string) (string, bool) {
	for _, p := range ps {
		if util.EqFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Has reports whether the parameter is present.
func (ps GenericParams) Has(name string) bool {
	_, ok := ps.Get(name)
	return ok
}

func (ps GenericParams) String() string {
	if len(ps) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range ps {
		sb.WriteByte(';')
		sb.WriteString(p.String())
	}
	return sb.String()
}
