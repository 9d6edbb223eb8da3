package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a LedgerError for the transport layer
type ErrorCode string

const (
	CodeValidation       ErrorCode = "validation"
	CodeNotFound         ErrorCode = "not_found"
	CodeConflict         ErrorCode = "conflict"
	CodeMethodNotAllowed ErrorCode = "method_not_allowed"
	CodeStorage          ErrorCode = "storage"
)

// LedgerError is the error every LedgerService operation returns.
// Message is safe to show to callers; Err keeps the cause for logging.
type LedgerError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *LedgerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to a response status
func (e *LedgerError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func ValidationError(format string, args ...interface{}) *LedgerError {
	return &LedgerError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(message string, err error) *LedgerError {
	return &LedgerError{Code: CodeNotFound, Message: message, Err: err}
}

func ConflictError(message string, err error) *LedgerError {
	return &LedgerError{Code: CodeConflict, Message: message, Err: err}
}

func MethodNotAllowedError(message string) *LedgerError {
	return &LedgerError{Code: CodeMethodNotAllowed, Message: message}
}

func StorageError(message string, err error) *LedgerError {
	return &LedgerError{Code: CodeStorage, Message: message, Err: err}
}

// AsLedgerError unwraps err into a LedgerError, treating anything else as a storage failure
func AsLedgerError(err error) *LedgerError {
	var ledgerErr *LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr
	}
	return StorageError("Internal server error", err)
}
