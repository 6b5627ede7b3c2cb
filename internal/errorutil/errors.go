// Package errorutil provides error helpers shared by the packages of the module.
package errorutil

//go:generate go tool errtrace -w .

import (
	"errors"
	"fmt"
)

// Error is a string type that implements the error interface.
// It is used to declare sentinel errors as constants.
type Error string

func (s Error) Error() string { return string(s) }

// ErrInvalidArgument is returned when a value passed by the caller cannot be used.
const ErrInvalidArgument Error = "invalid argument"

// NewInvalidArgumentError returns [ErrInvalidArgument] annotated with args.
//
// A single error argument is wrapped, unless it already matches [ErrInvalidArgument].
// A format string with optional arguments becomes the error message.
func NewInvalidArgumentError(args ...any) error {
	return withSentinel(ErrInvalidArgument, args...) //errtrace:skip
}

func withSentinel(sentinel error, args ...any) error {
	if len(args) == 0 {
		return sentinel //errtrace:skip
	}
	switch v := args[0].(type) {
	case error:
		if errors.Is(v, sentinel) {
			return v //errtrace:skip
		}
		return fmt.Errorf("%w: %w", sentinel, v) //errtrace:skip
	case string:
		return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(v, args[1:]...)) //errtrace:skip
	default:
		return fmt.Errorf("%w: %v", sentinel, v) //errtrace:skip
	}
}
