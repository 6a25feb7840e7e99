// Package errors provides the structured error type shared by the ledger,
// the valuation layer and the HTTP boundary. Every failure a client can see
// is an *AppError carrying a stable code, a message, an HTTP status and
// optional details; internal causes stay server-side.
package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional details and an
// optional internal error.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	StatusCode int            `json:"-"`
	Internal   error          `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Details:    sentinel.Details,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Details:    sentinel.Details,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithDetails creates a new AppError with a custom message and structured details.
func WithDetails(sentinel *AppError, message string, details map[string]any) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Details:    details,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Ledger errors.
var (
	ErrValidation           = &AppError{Code: "VALIDATION_ERROR", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound             = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrForeignKey           = &AppError{Code: "FK_VIOLATION", Message: "Referenced record does not exist", StatusCode: http.StatusBadRequest}
	ErrInsufficientQuantity = &AppError{Code: "INSUFFICIENT_QUANTITY", Message: "Insufficient quantity for this sale", StatusCode: http.StatusBadRequest}
	ErrConflict             = &AppError{Code: "CONFLICT", Message: "A record with this id already exists", StatusCode: http.StatusConflict}
	ErrInternalServer       = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Request errors raised by the HTTP boundary.
var (
	ErrInvalidQuery  = &AppError{Code: "INVALID_QUERY", Message: "Invalid query parameter", StatusCode: http.StatusBadRequest}
	ErrInvalidSymbol = &AppError{Code: "INVALID_SYMBOL", Message: `Query parameter "symbol" must be a valid ticker symbol`, StatusCode: http.StatusBadRequest}
	ErrInvalidRange  = &AppError{Code: "INVALID_RANGE", Message: `Query parameter "range" is unsupported`, StatusCode: http.StatusBadRequest}
	ErrUnknownFields = &AppError{Code: "UNKNOWN_FIELDS", Message: "Request body contains unsupported fields", StatusCode: http.StatusBadRequest}
)

// Quote errors.
var (
	ErrQuoteUnavailable = &AppError{Code: "QUOTE_UNAVAILABLE", Message: "Quote provider is unavailable", StatusCode: http.StatusBadGateway}
)

// Envelope is the JSON body of every error response: {"error": {...}}.
type Envelope struct {
	Error *AppError `json:"error"`
}

// EnvelopeFor wraps err for a response. Errors that are not an *AppError
// become INTERNAL_ERROR so their text never reaches the client.
func EnvelopeFor(err error) (int, Envelope) {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		appErr = ErrInternalServer
	}
	return appErr.StatusCode, Envelope{Error: appErr}
}
