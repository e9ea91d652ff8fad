package apperrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeNotFound         Code = "NOT_FOUND"
	CodeValidation       Code = "VALIDATION"
	CodeInvalidOperation Code = "INVALID_OPERATION"
	CodeInvalidState     Code = "INVALID_STATE"
	CodeConflict         Code = "CONFLICT"
	CodeInternal         Code = "INTERNAL"
)

type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func Unauthorized(msg string) error { return New(CodeUnauthorized, msg) }

func Forbidden(msg string) error { return New(CodeForbidden, msg) }

func NotFound(msg string) error { return New(CodeNotFound, msg) }

func Validation(msg string) error { return New(CodeValidation, msg) }

func InvalidOperation(msg string) error { return New(CodeInvalidOperation, msg) }

func InvalidState(msg string) error { return New(CodeInvalidState, msg) }

func Conflict(msg string) error { return New(CodeConflict, msg) }

func Internal(msg string, cause error) error { return Wrap(CodeInternal, msg, cause) }

// CodeOf returns the code carried by err, or CodeInternal for plain errors.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
