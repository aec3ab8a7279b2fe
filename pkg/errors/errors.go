package errors

import (
	"errors"
	"net/http"
)

// Error kinds recognized across the API. Handlers map these to HTTP statuses;
// everything else is treated as an internal failure.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("resource conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInternal          = errors.New("internal server error")
)

// AppError carries an error kind together with the message and detail list
// that should reach the client.
type AppError struct {
	Err        error
	StatusCode int
	Message    string
	Details    []string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(err error, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NewNotFoundError(message string) *AppError {
	return New(ErrNotFound, message, http.StatusNotFound)
}

func NewValidationError(message string) *AppError {
	return New(ErrValidation, message, http.StatusBadRequest)
}

// NewInsufficientStockError reports the complete stock validation outcome;
// details holds one line per failed item.
func NewInsufficientStockError(message string, details []string) *AppError {
	e := New(ErrInsufficientStock, message, http.StatusBadRequest)
	e.Details = details
	return e
}

// NewConflictError maps to 400 rather than 409: the storefront treats duplicate
// usernames as a plain bad request.
func NewConflictError(message string) *AppError {
	return New(ErrConflict, message, http.StatusBadRequest)
}

func NewUnauthorizedError(message string) *AppError {
	return New(ErrUnauthorized, message, http.StatusUnauthorized)
}

func NewInternalError(message string) *AppError {
	return New(ErrInternal, message, http.StatusInternalServerError)
}

// StatusCode returns the HTTP status for err, defaulting to 500 for anything
// that is not an AppError.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Details extracts the detail list from err, if any.
func Details(err error) []string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}
