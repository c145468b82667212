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

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/calver/pkg/calver"
	"github.com/NVIDIA/calver/pkg/config"
	"github.com/NVIDIA/calver/pkg/server"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, "calverd", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestRoutes(t *testing.T) {
	t.Setenv(config.EnvFormat, "")
	t.Setenv(config.EnvIncrement, "")
	t.Setenv(config.EnvFallbackIncrement, "")

	path := filepath.Join(t.TempDir(), "calver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yyyy.patch\nincrement: patch\n"), 0o600))

	routes, err := Routes(context.Background(), config.Loader{Source: path})
	require.NoError(t, err)
	require.Contains(t, routes, "/v1/increment")
	require.Contains(t, routes, "/v1/normalize")

	ts := httptest.NewServer(server.New(server.WithHandler(routes)).Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/v1/increment?latestVersion=2026.4")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res calver.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "2026.5", res.Next)
	assert.Equal(t, "yyyy.patch", res.Format)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestRoutes_InvalidSource(t *testing.T) {
	_, err := Routes(context.Background(), config.Loader{Source: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}
