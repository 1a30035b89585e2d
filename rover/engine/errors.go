package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStartFormat       = errors.New("invalid start format")
	ErrInvalidInstructionFormat = errors.New("invalid instruction format")
	ErrInvalidStateFormat       = errors.New("invalid state format")
)

// ParseError describes why a text input was rejected. Kind is one of the
// ErrInvalid* sentinels, so callers can match with errors.Is.
type ParseError struct {
	Kind   error
	Input  string
	Offset int // byte offset of the failure, -1 when unknown
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%v: %q", e.Kind, e.Input)
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the error's Kind
func (e *ParseError) Is(target error) bool {
	return target == e.Kind
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
