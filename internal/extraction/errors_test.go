package extraction

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing file", ErrMissingFile, http.StatusBadRequest},
		{"invalid file", ErrInvalidFile, http.StatusBadRequest},
		{"wrapped invalid file", fmt.Errorf("%w: bad header", ErrInvalidFile), http.StatusBadRequest},
		{"too large", ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"inference failure", &InferenceError{Status: 429, Body: "rate limited"}, http.StatusInternalServerError},
		{"storage failure", errors.New("container not found"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
