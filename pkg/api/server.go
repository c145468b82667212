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
	"fmt"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/calver/pkg/config"
	"github.com/NVIDIA/calver/pkg/logging"
	"github.com/NVIDIA/calver/pkg/release"
	"github.com/NVIDIA/calver/pkg/server"
)

const (
	name           = "calverd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/calver/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Options configures Serve.
type Options struct {
	// Loader resolves the default increment options for every request.
	Loader config.Loader
	// Port overrides the server port when non-zero.
	Port int
	// SkipLogging leaves the default slog logger untouched.
	SkipLogging bool
}

// Routes builds the API handler map from resolved options.
func Routes(ctx context.Context, loader config.Loader) (map[string]http.HandlerFunc, error) {
	opts, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	return release.NewHandler(release.WithDefaults(opts)).Routes(), nil
}

// Serve starts the API server and blocks until ctx is canceled or the
// server fails.
func Serve(ctx context.Context, opts Options) error {
	if !opts.SkipLogging {
		logging.SetDefaultStructuredLogger(name, version)
	}
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	routes, err := Routes(ctx, opts.Loader)
	if err != nil {
		return err
	}

	cfg := server.NewConfig()
	cfg.Name = name
	cfg.Version = version
	cfg.Handlers = routes
	if opts.Port > 0 {
		cfg.Port = opts.Port
	}

	if err := server.New(server.WithConfig(cfg)).Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}
