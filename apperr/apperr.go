package apperr

import (
	"errors"
	"fmt"
)

// Kind sentinels for the three service failure categories. Check with
// errors.Is(err, apperr.KindNotFound) etc.
var (
	KindValidation       = errors.New("validation error")
	KindNotFound         = errors.New("not found")
	KindPermissionDenied = errors.New("permission denied")
)

// Error is a service-layer failure carrying a kind and a human-readable
// message. The kind is the contract with the HTTP boundary; the message is
// presentation only.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool { return errors.Is(e.Kind, target) }

func (e *Error) Unwrap() error { return e.Kind }

// Validation reports malformed or semantically invalid input.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing user or todo.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// PermissionDenied reports a caller that exists but lacks rights for the
// target resource or action.
func PermissionDenied(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool       { return errors.Is(err, KindValidation) }
func IsNotFound(err error) bool         { return errors.Is(err, KindNotFound) }
func IsPermissionDenied(err error) bool { return errors.Is(err, KindPermissionDenied) }
