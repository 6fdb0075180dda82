// Package validate checks the booking app's form submissions.
//
// Every form has one entry point that evaluates its rules top to bottom in
// the order the fields appear on screen and reports only the first failure.
package validate

import (
	"errors"
	"unicode/utf8"
)

// Kind classifies a validation failure.
type Kind int

const (
	MissingField Kind = iota + 1
	InvalidLength
	Mismatch
)

// String returns the name of the failure kind.
func (k Kind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case InvalidLength:
		return "InvalidLength"
	case Mismatch:
		return "Mismatch"
	default:
		return "Unknown"
	}
}

// PhoneLength is the exact number of characters a phone number must have.
const PhoneLength = 11

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Error is a failed rule. Message is shown to the user as-is.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// As extracts a *Error from err.
func As(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// rule returns nil when satisfied.
type rule func() *Error

// first runs rules in order and returns the first failure.
func first(rules ...rule) error {
	for _, r := range rules {
		if err := r(); err != nil {
			return err
		}
	}
	return nil
}

func required(field, value, msg string) rule {
	return func() *Error {
		if value == "" {
			return &Error{Kind: MissingField, Field: field, Message: msg}
		}
		return nil
	}
}

// allowed fails when a value is present but not one of the offered options.
func allowed(field string, ok bool, msg string) rule {
	return func() *Error {
		if !ok {
			return &Error{Kind: MissingField, Field: field, Message: msg}
		}
		return nil
	}
}

func exactLength(field, value string, n int, msg string) rule {
	return func() *Error {
		if utf8.RuneCountInString(value) != n {
			return &Error{Kind: InvalidLength, Field: field, Message: msg}
		}
		return nil
	}
}

func minLength(field, value string, n int, msg string) rule {
	return func() *Error {
		if utf8.RuneCountInString(value) < n {
			return &Error{Kind: InvalidLength, Field: field, Message: msg}
		}
		return nil
	}
}

func equal(field, value, want, msg string) rule {
	return func() *Error {
		if value != want {
			return &Error{Kind: Mismatch, Field: field, Message: msg}
		}
		return nil
	}
}
