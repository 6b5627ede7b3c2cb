// Package types contains value types shared by the uri, header and sip packages.
package types

//go:generate go tool errtrace -w .

// Equalable is implemented by values that compare themselves with other values.
type Equalable interface {
	Equal(val any) bool
}

// ValidFlag is implemented by values that can report their syntactic validity.
type ValidFlag interface {
	IsValid() bool
}

// IsValid returns true if the value has method `IsValid() bool` and it returns true.
func IsValid(v any) bool {
	vv, ok := v.(ValidFlag)
	return ok && vv.IsValid()
}
