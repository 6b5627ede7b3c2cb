package util

import (
	"strings"
	"sync"

	"github.com/intuitivelabs/bytescase"
)

func UCase[T ~string](s T) T { return T(strings.ToUpper(string(s))) }

func LCase[T ~string](s T) T { return T(strings.ToLower(string(s))) }

func TrimSP[T ~string](s T) T { return T(strings.TrimSpace(string(s))) }

// EqFold compares ASCII strings ignoring letter case.
func EqFold[T1, T2 ~string](s1 T1, s2 T2) bool {
	if len(s1) != len(s2) {
		return false
	}
	return bytescase.CmpEq([]byte(s1), []byte(s2))
}

// HasPrefixFold reports whether s starts with prefix ignoring ASCII letter case.
func HasPrefixFold[T1, T2 ~string](s T1, prefix T2) bool {
	if len(s) < len(prefix) {
		return false
	}
	_, ok := bytescase.Prefix([]byte(prefix), []byte(s[:len(prefix)]))
	return ok
}

func Ellipsis(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[0:maxLen]) + "..."
}

var strBldrPool = &sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(256)
		return sb
	},
}

func GetStringBuilder() *strings.Builder {
	return strBldrPool.Get().(*strings.Builder) //nolint:forcetypeassert
}

func FreeStringBuilder(sb *strings.Builder) {
	sb.Reset()
	strBldrPool.Put(sb)
}
