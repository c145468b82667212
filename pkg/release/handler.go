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

package release

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/NVIDIA/calver/pkg/calver"
	"github.com/NVIDIA/calver/pkg/defaults"
	cverrors "github.com/NVIDIA/calver/pkg/errors"
	"github.com/NVIDIA/calver/pkg/serializer"
	"github.com/NVIDIA/calver/pkg/server"
)

const maxBodyBytes = 64 << 10

// IncrementRequest is the POST body of /v1/increment.
type IncrementRequest struct {
	calver.Options `json:",inline" yaml:",inline"`
	calver.Args    `json:",inline" yaml:",inline"`
}

// NormalizeResult pairs an input with its normalized form.
type NormalizeResult struct {
	Version    string `json:"version" yaml:"version"`
	Normalized string `json:"normalized" yaml:"normalized"`
}

// Option configures a Handler.
type Option func(*Handler)

// WithDefaults sets the options requests are merged over.
func WithDefaults(o calver.Options) Option {
	return func(h *Handler) {
		h.defaults = h.defaults.Merge(o)
	}
}

// WithClock replaces the current-time provider passed to each Incrementer.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// Handler serves the release endpoints. Each request gets its own
// Incrementer so concurrent overrides never leak between requests.
type Handler struct {
	defaults calver.Options
	now      func() time.Time
}

// NewHandler returns a Handler using the engine defaults and the wall clock.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the handler map for server.WithHandler.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/increment": h.HandleIncrement,
		"/v1/normalize": h.HandleNormalize,
	}
}

// HandleIncrement computes the next version for GET query parameters or a
// JSON/YAML POST body.
func (h *Handler) HandleIncrement(w http.ResponseWriter, r *http.Request) {
	var (
		req *IncrementRequest
		err error
	)

	switch r.Method {
	case http.MethodGet:
		req = requestFromQuery(r)
	case http.MethodPost:
		// Bound slow bodies; recorders and some transports do not support deadlines.
		deadline := time.Now().Add(defaults.IncrementHandlerTimeout)
		if dlErr := http.NewResponseController(w).SetReadDeadline(deadline); dlErr != nil {
			slog.Debug("read deadline not supported", "error", dlErr)
		}
		req, err = requestFromBody(r.Body, r.Header.Get("Content-Type"))
		defer r.Body.Close()
	default:
		w.Header().Set("Allow", "GET, POST")
		server.WriteError(w, r, http.StatusMethodNotAllowed, cverrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{"GET", "POST"},
			})
		return
	}

	if err != nil {
		server.WriteErrorFromErr(w, r,
			cverrors.Wrap(cverrors.ErrCodeInvalidRequest, "Invalid increment request", err),
			"Invalid increment request", map[string]any{
				"contentType": r.Header.Get("Content-Type"),
			})
		return
	}

	if strings.TrimSpace(req.LatestVersion) == "" {
		server.WriteError(w, r, http.StatusBadRequest, cverrors.ErrCodeInvalidRequest,
			"latestVersion is required", false, map[string]any{
				"parameter": "latestVersion",
			})
		return
	}

	inc := calver.New(
		calver.WithOptions(h.defaults.Merge(req.Options)),
		calver.WithClock(h.now),
	)
	result := inc.Resolve(req.LatestVersion)
	incrementsTotal.WithLabelValues(string(result.Outcome)).Inc()

	slog.Debug("increment",
		"requestID", server.RequestIDFrom(r.Context()),
		"previous", result.Previous,
		"next", result.Next,
		"format", result.Format,
		"outcome", result.Outcome)

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, result)
}

// HandleNormalize normalizes every "version" query parameter.
func (h *Handler) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		server.WriteError(w, r, http.StatusMethodNotAllowed, cverrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{"GET"},
			})
		return
	}

	versions := r.URL.Query()["version"]
	if len(versions) == 0 {
		server.WriteError(w, r, http.StatusBadRequest, cverrors.ErrCodeInvalidRequest,
			"version is required", false, map[string]any{
				"parameter": "version",
			})
		return
	}

	results := make([]NormalizeResult, 0, len(versions))
	for _, v := range versions {
		results = append(results, NormalizeResult{
			Version:    v,
			Normalized: calver.NormalizeVersion(v),
		})
	}
	serializer.RespondJSON(w, http.StatusOK, results)
}

func requestFromQuery(r *http.Request) *IncrementRequest {
	q := r.URL.Query()
	return &IncrementRequest{
		Options: calver.Options{
			Format:            q.Get("format"),
			Increment:         q.Get("increment"),
			FallbackIncrement: q.Get("fallbackIncrement"),
		},
		Args: calver.Args{
			LatestVersion: q.Get("latestVersion"),
		},
	}
}

func requestFromBody(body io.Reader, contentType string) (*IncrementRequest, error) {
	if body == nil {
		return nil, fmt.Errorf("request body is empty")
	}

	format := serializer.FormatJSON
	if strings.Contains(contentType, "yaml") {
		format = serializer.FormatYAML
	}

	reader, err := serializer.NewReader(format, io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	var req IncrementRequest
	if err := reader.Deserialize(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
