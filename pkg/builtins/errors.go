package builtins

import (
	"errors"
	"fmt"
)

var (
	// ErrRequiredValue is returned by required_value when the template
	// demands a value that is null or empty.
	ErrRequiredValue = errors.New("required value is missing")
	// ErrDivisionByZero is returned by divide_number for a zero or null divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrConversion is returned when a value cannot be converted to an integer.
	ErrConversion = errors.New("invalid conversion")
	// ErrDomain is returned for math arguments outside the function domain.
	ErrDomain = errors.New("math domain error")
	// ErrFieldDescriptor is returned when a custom field descriptor is malformed.
	ErrFieldDescriptor = errors.New("invalid field descriptor")
)

const defaultReason = "invalid arguments to builtin: %s"

// ArgumentError reports a builtin call whose arguments do not satisfy
// its validation policy.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf(defaultReason, e.Name)
	}
	return e.Reason
}

func badArguments(name string) error {
	return &ArgumentError{Name: name, Reason: fmt.Sprintf(defaultReason, name)}
}

func tooFewArguments(name string) error {
	return &ArgumentError{Name: name, Reason: fmt.Sprintf("too few arguments to %s", name)}
}

func wrongArity(name string, want string, got int) error {
	return &ArgumentError{
		Name:   name,
		Reason: fmt.Sprintf("%s expects %s argument(s), got %d", name, want, got),
	}
}

// IsArgumentError reports whether err is, or wraps, an *ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
