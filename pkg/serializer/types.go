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

// Package serializer reads and writes the data exchanged by the calver tools.
//
// Four output formats are supported:
//   - text: the String() form of the value, one line
//   - json: indented JSON
//   - yaml: YAML with two space indentation
//   - table: flattened FIELD/VALUE rows
//
// Destinations are stdout, a file path, or a ConfigMap URI
// (cm://namespace/name). Sources for FromSource are a file path, an
// HTTP(S) URL, or a ConfigMap URI; JSON and YAML are accepted.
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "", nil)
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//		return err
//	}
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
package serializer

import (
	"context"
	"fmt"
	"strings"
)

// ConfigMapURIScheme prefixes ConfigMap sources and destinations.
const ConfigMapURIScheme = "cm://"

// Serializer writes a value to a destination.
// The context bounds destinations that perform network I/O.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is an optional interface that Serializers implement when they hold
// resources such as open files.
type Closer interface {
	Close() error
}

// IsConfigMapURI reports whether s uses the ConfigMap scheme.
func IsConfigMapURI(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), ConfigMapURIScheme)
}

// ParseConfigMapURI splits cm://namespace/name into its parts.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
