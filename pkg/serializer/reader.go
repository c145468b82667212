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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/NVIDIA/calver/pkg/defaults"
	"github.com/NVIDIA/calver/pkg/k8s/client"
)

// FormatFromPath determines the serialization format based on file extension.
// .json maps to JSON, .yaml and .yml to YAML, .txt to text. Unknown
// extensions default to YAML, which also parses JSON documents.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".txt"):
		return FormatText
	default:
		return FormatYAML
	}
}

// Reader decodes JSON or YAML from an io.Reader.
// Close is a no-op unless the input implements io.Closer.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader for format. Text and table output are write-only.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	switch format {
	case FormatJSON, FormatYAML:
	case FormatText, FormatTable:
		return nil, fmt.Errorf("%s format does not support deserialization", format)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// Deserialize decodes the input into v.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the underlying input. Safe to call multiple times.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// SourceOptions controls how FromSource reaches remote sources.
// Zero values select the shared kube client and a default HttpReader.
type SourceOptions struct {
	Kube client.Interface
	HTTP *HttpReader
}

// FromSource reads and decodes a document from a file path, an HTTP(S) URL,
// or a ConfigMap URI (cm://namespace/name) into a new T.
//
// Example:
//
//	opts, err := FromSource[calver.Options](ctx, "cm://release/calver", SourceOptions{})
func FromSource[T any](ctx context.Context, source string, opts SourceOptions) (*T, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("source is empty")
	}

	var (
		content []byte
		format  Format
		err     error
	)

	switch {
	case IsConfigMapURI(source):
		content, format, err = readConfigMap(ctx, source, opts.Kube)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		content, format, err = readURL(ctx, source, opts.HTTP)
	default:
		content, err = os.ReadFile(source)
		format = FormatFromPath(source)
		if err != nil {
			err = fmt.Errorf("failed to read file %q: %w", source, err)
		}
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("decoding source", "source", source, "format", format, "bytes", len(content))

	if format != FormatJSON {
		format = FormatYAML
	}
	reader, err := NewReader(format, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var out T
	if err := reader.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", source, err)
	}
	return &out, nil
}

// SourceUserAgent identifies configuration fetches made by FromSource.
const SourceUserAgent = "calver-config/1.0"

func readURL(ctx context.Context, rawURL string, reader *HttpReader) ([]byte, Format, error) {
	if reader == nil {
		reader = NewHttpReader(WithUserAgent(SourceUserAgent))
	}

	format := FormatYAML
	if u, err := url.Parse(rawURL); err == nil {
		format = FormatFromPath(path.Base(u.Path))
	}

	data, err := reader.ReadWithContext(ctx, rawURL)
	if err != nil {
		return nil, "", err
	}
	return data, format, nil
}

func readConfigMap(ctx context.Context, uri string, kube client.Interface) ([]byte, Format, error) {
	namespace, name, err := ParseConfigMapURI(uri)
	if err != nil {
		return nil, "", err
	}

	if kube == nil {
		if kube, err = client.Get(); err != nil {
			return nil, "", fmt.Errorf("failed to get kubernetes client: %w", err)
		}
	}

	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := kube.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format := FormatYAML
	if f, ok := cm.Data[configMapFormatKey]; ok && !Format(f).IsUnknown() {
		format = Format(f)
	}

	if data, ok := cm.Data[dataKey(format)]; ok {
		return []byte(data), format, nil
	}
	for _, f := range []Format{FormatYAML, FormatJSON} {
		if data, ok := cm.Data[dataKey(f)]; ok {
			return []byte(data), f, nil
		}
	}
	// Plain key/value ConfigMaps map directly onto the document fields.
	if len(cm.Data) > 0 {
		plain := make(map[string]string, len(cm.Data))
		for k, v := range cm.Data {
			if k == configMapTimestampKey || (k == configMapFormatKey && !Format(v).IsUnknown()) {
				continue
			}
			plain[k] = v
		}
		content, err := json.Marshal(plain)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode ConfigMap %s/%s data: %w", namespace, name, err)
		}
		return content, FormatJSON, nil
	}
	return nil, "", fmt.Errorf("ConfigMap %s/%s has no data", namespace, name)
}
