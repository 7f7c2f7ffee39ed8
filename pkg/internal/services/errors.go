package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ErrorCode string

const (
	ErrCodeBadUserInput    ErrorCode = "BAD_USER_INPUT"
	ErrCodeUnauthenticated ErrorCode = "UN_AUTHENTICATED"
	ErrCodeUnauthorized    ErrorCode = "UN_AUTHORIZED"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
)

// Error is a failure the API boundary can show to the caller as is.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (v *Error) Error() string {
	if v.Err != nil {
		return fmt.Sprintf("%s: %s: %v", v.Code, v.Message, v.Err)
	}
	return fmt.Sprintf("%s: %s", v.Code, v.Message)
}

func (v *Error) Unwrap() error {
	return v.Err
}

func ErrBadUserInput(msg string) *Error {
	return &Error{Code: ErrCodeBadUserInput, Message: msg}
}

func ErrUnauthenticated(cause error) *Error {
	return &Error{Code: ErrCodeUnauthenticated, Message: "unauthenticated", Err: cause}
}

func ErrUnauthorized(cause error) *Error {
	return &Error{Code: ErrCodeUnauthorized, Message: "unauthorized", Err: cause}
}

func ErrNotFound(what string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: what + " not found"}
}

func ErrBadRequest(msg string) *Error {
	return &Error{Code: ErrCodeBadRequest, Message: msg}
}

// CodeOf returns the taxonomy code of err, or an empty string for internal failures.
func CodeOf(err error) ErrorCode {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ""
}

// notFoundOr maps a missing row to NOT_FOUND and passes other failures through.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound(what)
	}
	return fmt.Errorf("unable to get %s: %v", what, err)
}
