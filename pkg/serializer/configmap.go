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
	"context"
	"fmt"
	"log/slog"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/calver/pkg/defaults"
	"github.com/NVIDIA/calver/pkg/k8s/client"
)

const (
	configMapFormatKey    = "format"
	configMapTimestampKey = "timestamp"
	configMapVersionKey   = "version"
	configMapDataPrefix   = "result"
	fieldManager          = "calver"
)

func dataKey(format Format) string {
	return fmt.Sprintf("%s.%s", configMapDataPrefix, format.Extension())
}

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap using
// Server-Side Apply, creating it if needed.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	kube      client.Interface
	now       func() time.Time
}

// NewConfigMapWriter creates a writer for namespace/name. A nil kube selects
// the shared client on first Serialize.
func NewConfigMapWriter(namespace, name string, format Format, kube client.Interface) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    knownOrJSON(format),
		kube:      kube,
		now:       time.Now,
	}
}

// Serialize applies a ConfigMap holding:
//   - result.<ext>: the serialized data
//   - version: the String() form when data implements fmt.Stringer
//   - format and timestamp
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	kube := w.kube
	if kube == nil {
		var err error
		if kube, err = client.Get(); err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
	}

	content, err := Marshal(w.format, data)
	if err != nil {
		return fmt.Errorf("failed to serialize data: %w", err)
	}

	cmData := map[string]string{
		dataKey(w.format):     string(content),
		configMapFormatKey:    string(w.format),
		configMapTimestampKey: w.now().UTC().Format(time.RFC3339),
	}
	labels := map[string]string{
		"app.kubernetes.io/name":       "calver",
		"app.kubernetes.io/managed-by": fieldManager,
	}
	if s, ok := data.(fmt.Stringer); ok {
		cmData[configMapVersionKey] = s.String()
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(labels).
		WithData(cmData)

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format)

	_, err = kube.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		configMap,
		metav1.ApplyOptions{
			FieldManager: fieldManager,
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op; it satisfies Closer.
func (w *ConfigMapWriter) Close() error {
	return nil
}
