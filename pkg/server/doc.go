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

// Package server provides the HTTP runtime shared by the calver services.
//
// It owns the listener lifecycle, health probes and the middleware chain;
// API handlers are supplied by callers:
//
//	s := server.New(
//	    server.WithName("calverd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/increment": h.HandleIncrement,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Endpoints
//
// Built-in routes are not rate limited:
//
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until the listener is up and during shutdown
//	GET /metrics  Prometheus exposition
//	GET /         service name, version and registered routes
//
// # Middleware
//
// Caller handlers run behind, outermost first: metrics, API version
// negotiation (X-API-Version), request ID (X-Request-Id, UUID), panic
// recovery, token bucket rate limiting (golang.org/x/time/rate) and debug
// request logging.
//
// # Errors
//
// Error bodies share one shape:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "latestVersion is required",
//	  "details": {"parameter": "latestVersion"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-10-19T12:00:00Z",
//	  "retryable": false
//	}
//
// # Configuration
//
// NewConfig reads PORT and SHUTDOWN_TIMEOUT_SECONDS from the environment.
package server
