package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindInternal
)

type Fault struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", f.kindString(), f.Message, f.Err)
	}
	return fmt.Sprintf("[%s] %s", f.kindString(), f.Message)
}

// Unwrap allows errors.Is and errors.As to work.
func (f *Fault) Unwrap() error {
	return f.Err
}

func (f *Fault) kindString() string {
	switch f.Kind {
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	case KindInternal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// NewValidation creates a validation error rejected at write time.
func NewValidation(msg string) error {
	return &Fault{Kind: KindValidation, Message: msg}
}

// NewValidationf creates a validation error with a formatted message.
func NewValidationf(format string, args ...any) error {
	return &Fault{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound creates an error for a missing survey, question or rule.
func NewNotFound(msg string) error {
	return &Fault{Kind: KindNotFound, Message: msg}
}

// NewInternal wraps an unexpected failure from a collaborator.
func NewInternal(msg string, err error) error {
	return &Fault{Kind: KindInternal, Message: msg, Err: err}
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return kindOf(err) == KindValidation
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return kindOf(err) == KindNotFound
}

func kindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindInternal
}
