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

package calver

import "strings"

const (
	mainSeparator       = "."
	prereleaseSeparator = "-"
)

// NormalizeVersion strips redundant leading zeros from every numeric part of
// a version string, e.g. "2025.07.05.01.001" becomes "2025.7.5.1.1".
// Numeric parts of the prerelease tail are normalized the same way; labels
// and any other non-numeric part pass through unchanged. An empty version is
// returned as is. NormalizeVersion is idempotent and never fails: a version
// that cannot be interpreted is rejected later by Interpret.
func NormalizeVersion(version string) string {
	if version == "" {
		return version
	}

	main, prerelease, hasPrerelease := strings.Cut(version, prereleaseSeparator)

	normalized := normalizeParts(main)
	if hasPrerelease {
		normalized += prereleaseSeparator + normalizeParts(prerelease)
	}
	return normalized
}

func normalizeParts(s string) string {
	parts := strings.Split(s, mainSeparator)
	for i, part := range parts {
		if isNumeric(part) {
			parts[i] = trimLeadingZeros(part)
		}
	}
	return strings.Join(parts, mainSeparator)
}

// isNumeric reports whether s is a non-empty run of ASCII digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func trimLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
