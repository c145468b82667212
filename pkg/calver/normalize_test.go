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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"empty", "", ""},
		{"already normal", "26.10.0", "26.10.0"},
		{"leading zeros", "2025.07.05.01.001", "2025.7.5.1.1"},
		{"all zeros", "00.00", "0.0"},
		{"zero padded month", "26.09.3", "26.9.3"},
		{"prerelease kept", "2021.01.1.0-alpha.0", "2021.1.1.0-alpha.0"},
		{"prerelease counter", "2021.1.1.0-beta.007", "2021.1.1.0-beta.7"},
		{"label untouched", "1.0-rc01.2", "1.0-rc01.2"},
		{"non numeric passes", "invalid.version", "invalid.version"},
		{"mixed", "v1.02", "v1.2"},
		{"empty part kept", "1..02", "1..2"},
		{"large number", "000123456789012345678901234567890", "123456789012345678901234567890"},
		{"second dash stays in tail", "1.02-alpha-01.03", "1.2-alpha-01.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeVersion(tt.version))
		})
	}
}

func TestNormalizeVersion_Idempotent(t *testing.T) {
	versions := []string{
		"2025.07.05.01.001",
		"26.10.0",
		"0.0.0",
		"007.08-alpha.09",
		"invalid.version",
		"1..02",
		"2021.1.1.0-alpha",
	}

	for _, v := range versions {
		once := NormalizeVersion(v)
		assert.Equal(t, once, NormalizeVersion(once), "version %q", v)
	}
}
