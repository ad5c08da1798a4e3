package apperror

import (
	"errors"
	"fmt"
)

// Kind is the machine-checkable class of an error returned by the services.
type Kind string

const (
	KindValidation      Kind = "VALIDATION"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindMultipleMatches Kind = "MULTIPLE_MATCHES"
	KindRateLimited     Kind = "RATE_LIMITED"
	KindInternal        Kind = "INTERNAL"
)

// FieldViolation names a single rule an input field failed.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldViolation
	Matches any
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation builds a VALIDATION error whose message cites the first violation.
func Validation(fields []FieldViolation) *Error {
	msg := "validation failed"
	if len(fields) > 0 {
		msg = fmt.Sprintf("validation failed: %s: %s", fields[0].Field, fields[0].Message)
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// InvalidField is shorthand for a single-field validation failure.
func InvalidField(field, rule, message string) *Error {
	return Validation([]FieldViolation{{Field: field, Rule: rule, Message: message}})
}

func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

func Forbidden(message string) *Error { return New(KindForbidden, message) }

func NotFound(resource, id string) *Error {
	return New(KindNotFound, fmt.Sprintf("%s %s not found", resource, id))
}

func Conflict(message string) *Error { return New(KindConflict, message) }

func MultipleMatches(message string, matches any) *Error {
	return &Error{Kind: KindMultipleMatches, Message: message, Matches: matches}
}

func Internal(message string, err error) *Error { return Wrap(KindInternal, message, err) }

// KindOf reports the kind of err; anything that is not an *Error is INTERNAL.
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return KindInternal
}

func As(err error) (*Error, bool) {
	var target *Error
	ok := errors.As(err, &target)
	return target, ok
}

func IsValidation(err error) bool { return is(err, KindValidation) }

func IsNotFound(err error) bool { return is(err, KindNotFound) }

func IsConflict(err error) bool { return is(err, KindConflict) }

func IsInternal(err error) bool { return KindOf(err) == KindInternal }

func is(err error, kind Kind) bool {
	var target *Error
	return errors.As(err, &target) && target.Kind == kind
}
