package api

import (
	"errors"
	"net/http"
)

// APIError is returned for every failure the content API client can report.
// Status is the HTTP status when one is known: 400 for rejected parameters,
// 408 for an attempt that timed out, or the status of a non-2xx response.
type APIError struct {
	Message string
	Status  int
	Data    []byte // Response body of a non-2xx reply, if any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

func validationError(message string) *APIError {
	return &APIError{Message: message, Status: http.StatusBadRequest}
}

// IsValidation reports whether err was produced by parameter validation,
// in which case no request was sent.
func IsValidation(err error) bool {
	return StatusOf(err) == http.StatusBadRequest
}

// StatusOf returns the HTTP status carried by err, or 0 if there is none.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
