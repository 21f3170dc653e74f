package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mobil-koeln/abfahrt/internal/testutil"
)

func TestAPIError_Error(t *testing.T) {
	err := NewAPIError(500, "500 Internal Server Error", "/api/fib/v2/departure")
	testutil.AssertEqual(t, err.Error(), "MVG API error 500: 500 Internal Server Error (endpoint: /api/fib/v2/departure)")
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		target    error
		wantMatch bool
	}{
		{"404 matches ErrNotFound", 404, ErrNotFound, true},
		{"500 matches ErrServerError", 500, ErrServerError, true},
		{"503 matches ErrServerError", 503, ErrServerError, true},
		{"400 matches ErrInvalidRequest", 400, ErrInvalidRequest, true},
		{"429 matches ErrRateLimited", 429, ErrRateLimited, true},
		{"404 does not match ErrServerError", 404, ErrServerError, false},
		{"500 does not match ErrNotFound", 500, ErrNotFound, false},
		{"403 matches nothing", 403, ErrTimeout, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(tt.status, "", "/x")
			testutil.AssertEqual(t, errors.Is(err, tt.target), tt.wantMatch)
		})
	}
}

func TestAPIError_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading board: %w", NewAPIError(404, "404 Not Found", "/x"))

	var apiErr *APIError
	testutil.AssertTrue(t, errors.As(err, &apiErr))
	testutil.AssertEqual(t, apiErr.StatusCode, 404)
	testutil.AssertTrue(t, errors.Is(err, ErrNotFound))
}

func TestValidationError(t *testing.T) {
	err := ErrMissingField("globalId")
	testutil.AssertEqual(t, err.Error(), "validation error: globalId - field is required")
	testutil.AssertTrue(t, errors.Is(err, ErrInvalidRequest))
	testutil.AssertFalse(t, errors.Is(err, ErrNotFound))
}
