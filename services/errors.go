package services

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures for the API layer.
type ErrorCode string

const (
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeDatabase     ErrorCode = "DATABASE_ERROR"
	CodeUnavailable  ErrorCode = "SERVICE_UNAVAILABLE"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// Error is a sentinel carrying a code. Wrap it with fmt.Errorf("...: %w").
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(code ErrorCode, msg string) *Error { return &Error{Code: code, Message: msg} }

var (
	ErrPlanNotFound        = newError(CodeNotFound, "daily plan not found")
	ErrMealNotFound        = newError(CodeNotFound, "meal slot not found")
	ErrMemberNotFound      = newError(CodeNotFound, "family member not found")
	ErrGroceryPlanNotFound = newError(CodeNotFound, "grocery plan not found")
	ErrGroceryItemNotFound = newError(CodeNotFound, "grocery item not found")
	ErrItemNotFound        = newError(CodeNotFound, "planned item not found")
	ErrEntryNotFound       = newError(CodeNotFound, "consumption entry not found")
	ErrPortionNotFound     = newError(CodeNotFound, "member has no portion in this meal")
	ErrInvalidInput        = newError(CodeInvalidInput, "invalid input")
	ErrDuplicateEntry      = newError(CodeConflict, "consumption entry already exists")
	ErrStoreUnavailable    = newError(CodeDatabase, "store unavailable")
	ErrNotConfigured       = newError(CodeUnavailable, "integration not configured")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
