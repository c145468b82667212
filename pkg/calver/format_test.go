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
	"github.com/stretchr/testify/require"

	cverrors "github.com/NVIDIA/calver/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		want    []Role
		wantErr bool
	}{
		{"default", "yy.mm.minor", []Role{RoleShortYear, RoleMonth, RoleMinor}, false},
		{"full", "yyyy.mm.dd.major.minor.patch",
			[]Role{RoleFullYear, RoleMonth, RoleDay, RoleMajor, RoleMinor, RolePatch}, false},
		{"semantic only", "major.minor.patch", []Role{RoleMajor, RoleMinor, RolePatch}, false},
		{"empty", "", nil, true},
		{"blank", "  ", nil, true},
		{"unknown token", "yy.ww.minor", nil, true},
		{"padded token", "yyyy.0m.minor", nil, true},
		{"repeated token", "yy.mm.minor.minor", nil, true},
		{"empty token", "yy..minor", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, cverrors.IsCode(err, cverrors.ErrCodeFormatMismatch))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpret(t *testing.T) {
	c, err := Interpret("yyyy.mm.minor.patch", "2021.1.1.0-alpha.3")
	require.NoError(t, err)

	assert.Equal(t, []Component{
		{Role: RoleFullYear, Value: 2021},
		{Role: RoleMonth, Value: 1},
		{Role: RoleMinor, Value: 1},
		{Role: RolePatch, Value: 0},
	}, c.Parts)
	require.NotNil(t, c.Prerelease)
	assert.Equal(t, Prerelease{Label: "alpha", Counter: 3}, *c.Prerelease)
	assert.Equal(t, 2, c.Index(RoleMinor))
	assert.Equal(t, -1, c.Index(RoleMajor))
	assert.Equal(t, "2021.1.1.0-alpha.3", c.String())
}

func TestInterpret_NoPrerelease(t *testing.T) {
	c, err := Interpret("yy.mm.minor", "26.10.4")
	require.NoError(t, err)
	assert.Nil(t, c.Prerelease)
	assert.Equal(t, "26.10.4", c.String())
}

func TestInterpret_LabelWithoutCounter(t *testing.T) {
	c, err := Interpret("yy.mm.minor", "26.10.4-rc")
	require.NoError(t, err)
	require.NotNil(t, c.Prerelease)
	assert.Equal(t, "rc", c.Prerelease.Label)
	assert.Equal(t, 0, c.Prerelease.Counter)
	assert.Equal(t, "26.10.4-rc.0", c.String())
}

func TestInterpret_Mismatch(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		version string
	}{
		{"too few components", "yyyy.mm.minor", "invalid.version"},
		{"too many components", "yy.mm.minor", "26.10.1.2"},
		{"non numeric", "yy.mm.minor", "26.10.x"},
		{"negative", "yy.mm.minor", "26.10.-1"},
		{"signed", "yy.mm.minor", "26.+10.1"},
		{"empty component", "yy.mm.minor", "26..1"},
		{"month zero", "yy.mm.minor", "26.0.1"},
		{"month thirteen", "yy.mm.minor", "26.13.1"},
		{"day out of range", "yyyy.mm.dd", "2026.10.32"},
		{"empty version", "yy.mm.minor", ""},
		{"numeric label", "yy.mm.minor", "26.10.1-5"},
		{"empty label", "yy.mm.minor", "26.10.1-"},
		{"bad counter", "yy.mm.minor", "26.10.1-alpha.x"},
		{"extra prerelease part", "yy.mm.minor", "26.10.1-alpha.1.2"},
		{"bad format", "yy.mm.build", "26.10.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Interpret(tt.format, tt.version)
			require.Error(t, err)
			assert.Equal(t, cverrors.ErrCodeFormatMismatch, cverrors.CodeOf(err))
		})
	}
}
