package extraction

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors for extraction operations.
var (
	ErrMissingFile  = errors.New("file is required")
	ErrInvalidFile  = errors.New("invalid file")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
)

// InferenceError reports a non-success response from the inference
// endpoint, carrying the upstream status and body for diagnostics.
type InferenceError struct {
	Status int
	Body   string
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference request failed: status %d: %s", e.Status, e.Body)
}

// MapHTTPStatus maps extraction domain errors to HTTP status codes.
// Storage and inference failures are fatal to the request and map to 500.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrMissingFile) || errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
