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
	"net/http"
	"time"

	"github.com/google/uuid"

	cverrors "github.com/NVIDIA/calver/pkg/errors"
	"github.com/NVIDIA/calver/pkg/serializer"
)

type contextKey string

const (
	contextKeyRequestID  contextKey = "requestID"
	contextKeyAPIVersion contextKey = "apiVersion"
)

// RequestIDFrom returns the request ID assigned by the middleware chain.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// APIVersionFrom returns the negotiated API version.
func APIVersionFrom(ctx context.Context) string {
	v, _ := ctx.Value(contextKeyAPIVersion).(string)
	if v == "" {
		return DefaultAPIVersion
	}
	return v
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes an ErrorResponse with the request ID from r.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code cverrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFrom(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps err to a status code and writes it. StructuredError
// codes, messages and context are preserved; anything else is INTERNAL with
// fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	code := cverrors.CodeOf(err)
	message := fallbackMessage
	var details map[string]any

	if se, ok := err.(*cverrors.StructuredError); ok {
		message = se.Message
		details = mergeDetails(se.Context, nil)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
	} else if err != nil {
		details = map[string]any{"error": err.Error()}
	}
	if code == "" {
		code = cverrors.ErrCodeInternal
	}

	WriteError(w, r, HTTPStatusFromCode(code), code, message, retryableFromCode(code), mergeDetails(details, extraDetails))
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code cverrors.ErrorCode) int {
	switch code {
	case cverrors.ErrCodeInvalidRequest,
		cverrors.ErrCodeFormatMismatch,
		cverrors.ErrCodeUnknownRole,
		cverrors.ErrCodeLabelMismatch:
		return http.StatusBadRequest
	case cverrors.ErrCodeDirectiveExhausted:
		return http.StatusUnprocessableEntity
	case cverrors.ErrCodeNotFound:
		return http.StatusNotFound
	case cverrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case cverrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case cverrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case cverrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code cverrors.ErrorCode) bool {
	switch code {
	case cverrors.ErrCodeTimeout,
		cverrors.ErrCodeUnavailable,
		cverrors.ErrCodeRateLimitExceeded,
		cverrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with b applied over a, or nil if both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
