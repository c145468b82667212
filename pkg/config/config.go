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

// Package config resolves calver.Options from layered sources.
//
// Precedence, lowest first:
//  1. built-in defaults (calver.DefaultFormat and friends)
//  2. a source document: file path, HTTP(S) URL or cm://namespace/name
//  3. environment variables CALVER_FORMAT, CALVER_INCREMENT,
//     CALVER_FALLBACK_INCREMENT
//  4. explicit overrides, typically command line flags
//
// Empty values never override a lower layer.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/NVIDIA/calver/pkg/calver"
	cverrors "github.com/NVIDIA/calver/pkg/errors"
	"github.com/NVIDIA/calver/pkg/k8s/client"
	"github.com/NVIDIA/calver/pkg/serializer"
)

const (
	EnvFormat            = "CALVER_FORMAT"
	EnvIncrement         = "CALVER_INCREMENT"
	EnvFallbackIncrement = "CALVER_FALLBACK_INCREMENT"
)

// Defaults returns the built-in options.
func Defaults() calver.Options {
	return calver.Options{
		Format:            calver.DefaultFormat,
		Increment:         calver.DefaultIncrement,
		FallbackIncrement: calver.DefaultFallbackIncrement,
	}
}

// FromEnv reads options from the CALVER_* environment variables.
func FromEnv() calver.Options {
	return calver.Options{
		Format:            strings.TrimSpace(os.Getenv(EnvFormat)),
		Increment:         strings.TrimSpace(os.Getenv(EnvIncrement)),
		FallbackIncrement: strings.TrimSpace(os.Getenv(EnvFallbackIncrement)),
	}
}

// Loader resolves options. The zero value is usable.
type Loader struct {
	// Source is an optional file path, URL or ConfigMap URI.
	Source string
	// Overrides are applied last.
	Overrides calver.Options
	// Kube is used for ConfigMap sources; nil selects the shared client.
	Kube client.Interface
	// HTTP is used for URL sources; nil selects a default reader.
	HTTP *serializer.HttpReader
}

// Load merges every layer and returns the effective options. The format
// must be interpretable.
func (l Loader) Load(ctx context.Context) (calver.Options, error) {
	opts, err := l.Resolve(ctx)
	if err != nil {
		return calver.Options{}, err
	}
	if err := Validate(opts); err != nil {
		return calver.Options{}, err
	}
	return opts, nil
}

// Resolve merges every layer without validating the result. Only a source
// that cannot be read or decoded is an error.
func (l Loader) Resolve(ctx context.Context) (calver.Options, error) {
	opts := Defaults()

	if src := strings.TrimSpace(l.Source); src != "" {
		fromSource, err := serializer.FromSource[calver.Options](ctx, src, serializer.SourceOptions{
			Kube: l.Kube,
			HTTP: l.HTTP,
		})
		if err != nil {
			return calver.Options{}, cverrors.WrapWithContext(cverrors.ErrCodeInvalidRequest,
				"failed to load options", err, map[string]any{"source": src})
		}
		opts = opts.Merge(*fromSource)
	}

	opts = opts.Merge(FromEnv()).Merge(l.Overrides)

	slog.Debug("options resolved",
		"format", opts.Format,
		"increment", opts.Increment,
		"fallbackIncrement", opts.FallbackIncrement,
		"source", l.Source)

	return opts, nil
}

// Validate rejects formats that cannot be interpreted. Directives are not
// checked here: an unknown directive is a valid configuration that simply
// falls through to the fallback at increment time.
func Validate(opts calver.Options) error {
	if opts.Format == "" {
		return nil
	}
	if _, err := calver.ParseFormat(opts.Format); err != nil {
		return cverrors.Wrap(cverrors.ErrCodeInvalidRequest, fmt.Sprintf("invalid format %q", opts.Format), err)
	}
	return nil
}
