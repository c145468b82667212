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

// Package calver computes the next release version of a project that uses
// calendar versioning.
//
// # Overview
//
// A version such as "26.10.3" is read against a format such as "yy.mm.minor"
// that names the role of every dot separated slot. Calendar roles follow the
// date, semantic roles are plain counters, and an optional "-label.counter"
// tail tracks a prerelease:
//
//	yyyy   four digit year          2026
//	yy     year minus 2000          26
//	mm     month, unpadded          1..12
//	dd     day of month, unpadded   1..31
//	major  counter
//	minor  counter
//	patch  counter
//
// # Increments
//
// An increment is a dot separated chain such as "calendar.minor" whose
// parts are tried in order until one applies:
//
//	calendar  move calendar roles to today and zero the counters after them;
//	          does nothing if the calendar already matches today
//	minor     add one to minor and zero the counters after it
//	alpha     add one to the prerelease counter if the label is "alpha"
//
// # Usage
//
//	inc := calver.New()
//	inc.SetContext(calver.Options{Format: "yyyy.mm.minor"})
//	next, ok := inc.IncrementedVersion(calver.Args{LatestVersion: "2026.09.4"})
//	// next == "2026.10.0" during October 2026, ok == true
//
// When the configured increment cannot be applied the fallback increment is
// tried; when that fails too the latest version is returned unchanged. No
// error ever reaches the caller. Resolve exposes the details, including the
// FORMAT_MISMATCH, UNKNOWN_ROLE, LABEL_MISMATCH and DIRECTIVE_EXHAUSTED
// failures that were recovered.
//
// # Defaults
//
//	format             yy.mm.minor
//	increment          calendar
//	fallbackIncrement  minor
package calver
