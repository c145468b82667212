// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	cverrors "github.com/NVIDIA/calver/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code cverrors.ErrorCode
		want int
	}{
		{"invalid request", cverrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{"format mismatch", cverrors.ErrCodeFormatMismatch, http.StatusBadRequest},
		{"unknown role", cverrors.ErrCodeUnknownRole, http.StatusBadRequest},
		{"label mismatch", cverrors.ErrCodeLabelMismatch, http.StatusBadRequest},
		{"directive exhausted", cverrors.ErrCodeDirectiveExhausted, http.StatusUnprocessableEntity},
		{"not found", cverrors.ErrCodeNotFound, http.StatusNotFound},
		{"method not allowed", cverrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rate limit", cverrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"unavailable", cverrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"timeout", cverrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{"internal", cverrors.ErrCodeInternal, http.StatusInternalServerError},
		{"unknown defaults to internal", cverrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Fatalf("HTTPStatusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	tests := []struct {
		name string
		code cverrors.ErrorCode
		want bool
	}{
		{"invalid request", cverrors.ErrCodeInvalidRequest, false},
		{"format mismatch", cverrors.ErrCodeFormatMismatch, false},
		{"not found", cverrors.ErrCodeNotFound, false},
		{"timeout", cverrors.ErrCodeTimeout, true},
		{"unavailable", cverrors.ErrCodeUnavailable, true},
		{"rate limit", cverrors.ErrCodeRateLimitExceeded, true},
		{"internal", cverrors.ErrCodeInternal, true},
		{"unknown defaults false", cverrors.ErrorCode("SOMETHING_ELSE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryableFromCode(tt.code); got != tt.want {
				t.Fatalf("retryableFromCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestMergeDetails(t *testing.T) {
	t.Run("both empty returns nil", func(t *testing.T) {
		if got := mergeDetails(nil, nil); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
		if got := mergeDetails(map[string]any{}, map[string]any{}); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
	})

	t.Run("merges and second overwrites", func(t *testing.T) {
		got := mergeDetails(map[string]any{"a": 1, "shared": "old"}, map[string]any{"b": 2, "shared": "new"})
		if got["a"].(int) != 1 || got["b"].(int) != 2 {
			t.Fatalf("unexpected merge %#v", got)
		}
		if got["shared"].(string) != "new" {
			t.Fatalf("expected shared to be overwritten to 'new', got %#v", got["shared"])
		}
	})
}

func TestWriteError_WritesErrorResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, cverrors.ErrCodeInvalidRequest, "bad request", false, map[string]any{"k": "v"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Code != string(cverrors.ErrCodeInvalidRequest) {
		t.Fatalf("expected code %q, got %q", cverrors.ErrCodeInvalidRequest, resp.Code)
	}
	if resp.RequestID != "req-123" {
		t.Fatalf("expected requestId %q, got %q", "req-123", resp.RequestID)
	}
	if resp.Retryable {
		t.Fatalf("expected retryable=false, got true")
	}
	if resp.Details["k"].(string) != "v" {
		t.Fatalf("expected details to include k=v, got %#v", resp.Details)
	}
}

func TestWriteErrorFromErr_StructuredErrorMapsStatusAndDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	cause := errors.New("kube api is down")
	err := cverrors.WrapWithContext(cverrors.ErrCodeUnavailable, "options unavailable", cause, map[string]any{"source": "cm://release/calver"})

	WriteErrorFromErr(w, req, err, "fallback", map[string]any{"extra": "yes"})

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	var resp ErrorResponse
	if uerr := json.Unmarshal(w.Body.Bytes(), &resp); uerr != nil {
		t.Fatalf("failed to unmarshal response: %v", uerr)
	}
	if resp.Message != "options unavailable" {
		t.Fatalf("expected message %q, got %q", "options unavailable", resp.Message)
	}
	if !resp.Retryable {
		t.Fatalf("expected retryable=true")
	}
	if resp.Details["source"].(string) != "cm://release/calver" {
		t.Fatalf("expected source detail, got %#v", resp.Details)
	}
	if resp.Details["extra"].(string) != "yes" {
		t.Fatalf("expected extra=yes, got %#v", resp.Details["extra"])
	}
	if resp.Details["error"].(string) != "kube api is down" {
		t.Fatalf("expected error cause propagated, got %#v", resp.Details["error"])
	}
}

func TestWriteErrorFromErr_NonStructuredFallsBackToInternal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteErrorFromErr(w, req, errors.New("boom"), "fallback", map[string]any{"x": "y"})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Code != string(cverrors.ErrCodeInternal) {
		t.Fatalf("expected code %q, got %q", cverrors.ErrCodeInternal, resp.Code)
	}
	if resp.Message != "fallback" {
		t.Fatalf("expected fallback message, got %q", resp.Message)
	}
	if resp.Details["x"].(string) != "y" || resp.Details["error"].(string) != "boom" {
		t.Fatalf("unexpected details %#v", resp.Details)
	}
}
