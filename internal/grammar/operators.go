package grammar

import (
	"errors"
	"strconv"
	"unsafe"

	"github.com/ghettovoice/abnf"
	"github.com/ghettovoice/abnf/pkg/abnf_core"
)

var core = abnf_core.Operators()

// lit matches the case-sensitive literal s.
func lit(s string) abnf.Operator { return abnf.LiteralCS(strconv.Quote(s), []byte(s)) }

// litFold matches the literal s ignoring letter case.
func litFold(s string) abnf.Operator { return abnf.Literal(strconv.Quote(s), []byte(s)) }

// rng matches a single octet in range lo-hi.
func rng(lo, hi byte) abnf.Operator {
	return abnf.Range("%x"+strconv.FormatUint(uint64(lo), 16)+"-"+strconv.FormatUint(uint64(hi), 16),
		[]byte{lo}, []byte{hi})
}

// oneOf matches a single character of chars.
func oneOf(key, chars string) abnf.Operator {
	ops := make([]abnf.Operator, len(chars))
	for i := range len(chars) {
		ops[i] = abnf.LiteralCS(strconv.Quote(chars[i:i+1]), []byte{chars[i]})
	}
	return abnf.AltFirst(key, ops[0], ops[1:]...)
}

// many matches op at least atLeast times and keeps only the longest repetition.
//
// Unlike [abnf.Repeat] it does not keep shorter repetitions for backtracking,
// so the cost of a run is linear in its length.
// Failures other than [abnf.ErrNotMatched] stop the repetition and are returned.
func many(key string, atLeast uint, op abnf.Operator) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		sub := abnf.NewNodes()
		defer sub.Free()

		var children abnf.Nodes
		end := pos
		for int(end) < len(in) {
			sub.Clear()
			if err := op(in, end, sub); err != nil {
				if !errors.Is(err, abnf.ErrNotMatched) {
					return err //errtrace:skip
				}
				break
			}
			n := sub.Best()
			if n.IsEmpty() {
				break
			}
			children = append(children, n)
			end += uint(n.Len())
		}
		if uint(len(children)) < atLeast {
			return abnf.ErrNotMatched //errtrace:skip
		}
		ns.Append(&abnf.Node{Key: key, Pos: pos, Value: in[pos:end], Children: children})
		return nil
	}
}

// check matches op and keeps only the matches accepted by valid.
func check(key string, op abnf.Operator, valid func(*abnf.Node) bool) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		sub := abnf.NewNodes()
		defer sub.Free()

		if err := op(in, pos, sub); err != nil {
			return err //errtrace:skip
		}
		var ok bool
		for _, n := range sub.All() {
			if valid(n) {
				ns.Append(&abnf.Node{Key: key, Pos: n.Pos, Value: n.Value, Children: abnf.Nodes{n}})
				ok = true
			}
		}
		if !ok {
			return abnf.ErrNotMatched //errtrace:skip
		}
		return nil
	}
}

// bytesOf returns the bytes of s without copying.
// Operators never modify their input.
func bytesOf(s string) []byte { return unsafe.Slice(unsafe.StringData(s), len(s)) }

// match runs op at the start of s and returns the longest match.
func match(rule string, op abnf.Operator, s string) (*abnf.Node, error) {
	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op(bytesOf(s), 0, ns); err != nil {
		if errors.Is(err, abnf.ErrNotMatched) {
			return nil, Fail(rule, s) //errtrace:skip
		}
		return nil, FailKind(KindSyntax, rule, s, err) //errtrace:skip
	}
	return ns.Best(), nil
}

// scan runs op at the start of s and splits s after the match.
func scan(rule string, op abnf.Operator, s string) (string, string, error) {
	n, err := match(rule, op, s)
	if err != nil {
		return "", s, err //errtrace:skip
	}
	return s[:n.Len()], s[n.Len():], nil
}

// skip is [scan] that drops the matched text.
func skip(rule string, op abnf.Operator, s string) (string, error) {
	_, rest, err := scan(rule, op, s)
	return rest, err //errtrace:skip
}

// nodeText returns the text of n as a substring of s.
func nodeText(s string, n *abnf.Node) string { return s[n.Pos : int(n.Pos)+n.Len()] }

// charClass is a lookup table of the octets matched by a single character operator.
type charClass [256]bool

func classOf(op abnf.Operator) *charClass {
	var cc charClass
	ns := abnf.NewNodes()
	defer ns.Free()

	for c := range len(cc) {
		ns.Clear()
		if op([]byte{byte(c)}, 0, ns) == nil && ns.Best().Len() == 1 {
			cc[c] = true
		}
	}
	return &cc
}
