package apperrors

import (
	"fmt"
	"net/http"
)

// Code is a stable machine-readable error code. Outer layers map codes to
// transport statuses and localized messages; the core never renders text.
type Code string

const (
	// User errors
	CodeUsernameCannotBeEmpty Code = "UsernameCannotBeEmpty"
	CodeExistingTokenFound    Code = "ExistingTokenFound"

	// UserToken errors
	CodeInvalidUserTokenType       Code = "InvalidUserTokenType"
	CodeInvalidUserTokenExpiration Code = "InvalidUserTokenExpiration"

	// Email and contact errors
	CodeNameCannotBeEmpty  Code = "NameCannotBeEmpty"
	CodeEmailCannotBeEmpty Code = "EmailCannotBeEmpty"
	CodeInvalidEmailFormat Code = "InvalidEmailFormat"

	// Password errors
	CodePasswordCannotBeEmpty               Code = "PasswordCannotBeEmpty"
	CodePasswordTooShort                    Code = "PasswordTooShort"
	CodePasswordMustContainUpperCase        Code = "PasswordMustContainUpperCase"
	CodePasswordMustContainLowerCase        Code = "PasswordMustContainLowerCase"
	CodePasswordMustContainDigit            Code = "PasswordMustContainDigit"
	CodePasswordMustContainSpecialCharacter Code = "PasswordMustContainSpecialCharacter"

	// Registration workflow errors
	CodeUserAlreadyExists  Code = "UserAlreadyExists"
	CodeUserNotFound       Code = "UserNotFound"
	CodeRegistrationFailed Code = "RegistrationFailed"
	CodeActivationFailed   Code = "ActivationFailed"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInvalidArgument Kind = iota
	KindConflict
	KindNotFound
	KindInternal
)

// Error is the single error value used across the domain and application
// layers. Errors propagate as values; the Cause of an Internal error is kept
// attached so diagnostic fidelity is never lost at the workflow boundary.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two *Error values by code, so callers can write
// errors.Is(err, apperrors.Invalid(apperrors.CodePasswordTooShort)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Invalid builds a caller-correctable validation error.
func Invalid(code Code) *Error {
	return &Error{Kind: KindInvalidArgument, Code: code}
}

// Conflict builds a state-conflict error (already exists).
func Conflict(code Code) *Error {
	return &Error{Kind: KindConflict, Code: code}
}

// NotFound builds a missing-resource error.
func NotFound(code Code) *Error {
	return &Error{Kind: KindNotFound, Code: code}
}

// Internal wraps an unexpected failure under a stable code, keeping the
// original cause reachable through errors.Unwrap.
func Internal(code Code, cause error) *Error {
	return &Error{Kind: KindInternal, Code: code, Cause: cause}
}

// HTTPStatus maps the error kind to a transport status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
