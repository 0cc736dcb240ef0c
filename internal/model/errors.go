package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks malformed or out-of-range input.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrEmptyInput marks a degenerate empty trial set.
	ErrEmptyInput = errors.New("empty input")
)

// ParamError names the offending field. It matches ErrInvalidParameter with errors.Is.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func InvalidParam(field, reason string) error {
	return &ParamError{Field: field, Reason: reason}
}

// FieldOf returns the field named by a ParamError anywhere in err's chain.
func FieldOf(err error) (string, bool) {
	var pe *ParamError
	if errors.As(err, &pe) {
		return pe.Field, true
	}
	return "", false
}
