package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(http.StatusBadRequest, "test message", nil)

	if err.Code != http.StatusBadRequest {
		t.Errorf("expected code %d, got %d", http.StatusBadRequest, err.Code)
	}

	if err.Message != "test message" {
		t.Errorf("expected message 'test message', got '%s'", err.Message)
	}

	if err.Error() != "test message" {
		t.Errorf("expected error string 'test message', got '%s'", err.Error())
	}
}

func TestErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("cause error")
	err := New(http.StatusBadRequest, "test message", cause)

	expected := "test message: cause error"
	if err.Error() != expected {
		t.Errorf("expected '%s', got '%s'", expected, err.Error())
	}

	if err.Unwrap() != cause {
		t.Error("expected Unwrap to return the cause")
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "not found error",
			err:      NotFound("test", nil, "not found"),
			expected: true,
		},
		{
			name:     "other app error",
			err:      InvalidInput("test", nil, "bad request"),
			expected: false,
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("plain"),
			expected: false,
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("outer: %w", NotFound("test", nil, "gone")),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.expected {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsForbidden(t *testing.T) {
	if !IsForbidden(Forbidden("test", nil, "nope")) {
		t.Error("expected forbidden error to be detected")
	}
	if IsForbidden(NotFound("test", nil, "gone")) {
		t.Error("not found should not be forbidden")
	}
}
