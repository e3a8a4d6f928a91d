package model

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// Validation Errors
	ErrIDMismatch       = errors.New("request path id and body id must match")
	ErrNoFieldsToUpdate = errors.New("at least one of title, content or author is required")

	// Lookup Errors
	ErrPostNotFound = errors.New("blog post not found")

	// Storage Errors
	ErrStorage = errors.New("storage error")
)

// ErrorResponse is the only error body the API renders.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ToHTTPStatus converts a domain error to an HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrIDMismatch), errors.Is(err, ErrNoFieldsToUpdate), isValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	var verr validation.Error
	return errors.As(err, &verr)
}
