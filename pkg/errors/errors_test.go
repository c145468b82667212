package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("timeout")
	ctx := map[string]any{
		"source": "cm://release/calver",
		"key":    "format",
	}

	err := WrapWithContext(ErrCodeTimeout, "config lookup failed", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["source"] != "cm://release/calver" {
		t.Errorf("expected source to be cm://release/calver")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
		{
			name:     "engine error",
			err:      New(ErrCodeFormatMismatch, "version has 2 components, format has 3"),
			expected: "[FORMAT_MISMATCH] version has 2 components, format has 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeFormatMismatch,
		ErrCodeUnknownRole,
		ErrCodeLabelMismatch,
		ErrCodeDirectiveExhausted,
		ErrCodeNotFound,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeUnavailable,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty code, got %s", got)
	}

	wrapped := fmt.Errorf("outer: %w", New(ErrCodeUnknownRole, "no such role"))
	if got := CodeOf(wrapped); got != ErrCodeUnknownRole {
		t.Errorf("expected %s, got %s", ErrCodeUnknownRole, got)
	}
}

func TestIsCode(t *testing.T) {
	label := New(ErrCodeLabelMismatch, "label mismatch")
	role := New(ErrCodeUnknownRole, "unknown role")
	exhausted := Wrap(ErrCodeDirectiveExhausted, "nothing applied", errors.Join(label, role))

	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"nil error", nil, ErrCodeInternal, false},
		{"direct match", label, ErrCodeLabelMismatch, true},
		{"direct miss", label, ErrCodeUnknownRole, false},
		{"outer of joined", exhausted, ErrCodeDirectiveExhausted, true},
		{"first joined", exhausted, ErrCodeLabelMismatch, true},
		{"second joined", exhausted, ErrCodeUnknownRole, true},
		{"absent code", exhausted, ErrCodeFormatMismatch, false},
		{"fmt wrapped", fmt.Errorf("ctx: %w", exhausted), ErrCodeUnknownRole, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode() = %v, want %v", got, tt.want)
			}
		})
	}
}
