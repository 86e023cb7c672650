package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidPrice   = errors.New("invalid price format")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInternal       = errors.New("internal error")
	ErrConflict       = errors.New("conflict")
	ErrServiceUnavail = errors.New("service unavailable")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// ItemNotFound creates a 404 error for a cart line item addressed by an
// unknown id.
func ItemNotFound(itemID string) *AppError {
	return &AppError{
		Code:    "ITEM_NOT_FOUND",
		Message: fmt.Sprintf("cart item %s not found", itemID),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// InvalidQuantity creates a 400 error for a non-positive quantity request.
func InvalidQuantity(quantity int) *AppError {
	return &AppError{
		Code:    "INVALID_QUANTITY",
		Message: fmt.Sprintf("quantity must be a positive integer, got %d", quantity),
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// InvalidPriceFormat creates a 422 error for a price representation that
// yields no digits when normalized.
func InvalidPriceFormat(raw string) *AppError {
	return &AppError{
		Code:    "INVALID_PRICE_FORMAT",
		Message: fmt.Sprintf("price %q contains no parsable amount", raw),
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrInvalidPrice,
	}
}

// EmptyCart creates a 409 error for checkout derivation over zero line items.
func EmptyCart() *AppError {
	return &AppError{
		Code:    "EMPTY_CART",
		Message: "cart has no items",
		Status:  http.StatusConflict,
		Err:     ErrEmptyCart,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// ServiceUnavailable creates a 503 error for an unreachable collaborator
// or storage backend.
func ServiceUnavailable(message string) *AppError {
	return &AppError{
		Code:    "SERVICE_UNAVAILABLE",
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     ErrServiceUnavail,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidPrice):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
