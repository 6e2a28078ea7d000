package model

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Error codes, one per failure class. Validation and malformed-response
// errors are resolved at the lowest layer that owns a fallback; transport,
// auth, empty-result and timeout errors propagate to the lifecycle phase.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeTransportError    = "transport_error"
	CodeAuthRejected      = "auth_rejected"
	CodeEmptyResult       = "empty_result"
	CodeMalformedResponse = "malformed_response"
	CodeGenerationTimeout = "generation_timeout"
	CodeBusy              = "busy"
	CodeNotFound          = "not_found"
	CodeInternalError     = "internal_error"
)

// StudioError is the error envelope every layer above the relay speaks.
type StudioError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	cause      error
}

func (e *StudioError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StudioError) Unwrap() error {
	return e.cause
}

// ErrorWrapper wraps err into a StudioError with the given code and HTTP
// status.
func ErrorWrapper(err error, code string, statusCode int) *StudioError {
	return &StudioError{
		Code:       code,
		Message:    err.Error(),
		StatusCode: statusCode,
		cause:      err,
	}
}

func ValidationError(format string, a ...any) *StudioError {
	return &StudioError{
		Code:       CodeInvalidRequest,
		Message:    fmt.Sprintf(format, a...),
		StatusCode: http.StatusBadRequest,
	}
}

func TransportError(err error) *StudioError {
	return ErrorWrapper(err, CodeTransportError, http.StatusBadGateway)
}

func AuthError(err error) *StudioError {
	return ErrorWrapper(err, CodeAuthRejected, http.StatusUnauthorized)
}

func EmptyResultError(message string) *StudioError {
	return &StudioError{
		Code:       CodeEmptyResult,
		Message:    message,
		StatusCode: http.StatusBadGateway,
	}
}

func TimeoutError(message string) *StudioError {
	return &StudioError{
		Code:       CodeGenerationTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
	}
}

func BusyError(message string) *StudioError {
	return &StudioError{
		Code:       CodeBusy,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// AsStudioError coerces any error into a StudioError, defaulting to an
// internal error so handlers never leak a bare error shape.
func AsStudioError(err error) *StudioError {
	var se *StudioError
	if errors.As(err, &se) {
		return se
	}
	return ErrorWrapper(err, CodeInternalError, http.StatusInternalServerError)
}

// IsCode reports whether err carries the given studio error code.
func IsCode(err error, code string) bool {
	var se *StudioError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
