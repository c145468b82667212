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

// Package release exposes the calver engine over HTTP.
//
// GET /v1/increment computes the next version:
//
//	curl "http://localhost:8080/v1/increment?latestVersion=26.9.3&format=yy.mm.minor"
//
// Query parameters (or the same fields in a JSON/YAML POST body):
//   - latestVersion: required, the previous version
//   - format, increment, fallbackIncrement: optional, override the server defaults
//
// The response is a calver.Result. The engine never fails on a well formed
// request: when neither directive applies, next equals the input and outcome
// is "unchanged".
//
// GET /v1/normalize?version=A&version=B strips leading zeros from numeric
// version parts.
//
// Each increment is counted in calver_increments_total by outcome.
package release
