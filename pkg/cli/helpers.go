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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/calver/pkg/config"
	"github.com/NVIDIA/calver/pkg/k8s/client"
	"github.com/NVIDIA/calver/pkg/serializer"
)

func outputFormats() []string {
	return serializer.SupportedFormats()
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("output-format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %v)", f, outputFormats())
	}
	return f, nil
}

// kubeClient returns a client for --kubeconfig, or nil to let callers fall
// back to the shared client.
func kubeClient(cmd *cli.Command) (client.Interface, error) {
	path := cmd.String("kubeconfig")
	if path == "" {
		return nil, nil
	}
	kube, err := client.Build(path)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubernetes client: %w", err)
	}
	return kube, nil
}

// loaderFromCmd builds a config.Loader from --config and --kubeconfig.
func loaderFromCmd(cmd *cli.Command) (config.Loader, error) {
	loader := config.Loader{Source: cmd.String("config")}
	if serializer.IsConfigMapURI(loader.Source) {
		kube, err := kubeClient(cmd)
		if err != nil {
			return config.Loader{}, err
		}
		loader.Kube = kube
	}
	return loader, nil
}

// writeOutput serializes data to --output in format.
func writeOutput(ctx context.Context, cmd *cli.Command, format serializer.Format, data any) error {
	dest := cmd.String("output")

	var kube client.Interface
	if serializer.IsConfigMapURI(dest) {
		var err error
		if kube, err = kubeClient(cmd); err != nil {
			return err
		}
	}

	var ser serializer.Serializer
	if dest == "" {
		ser = serializer.NewWriter(format, cmd.Root().Writer)
	} else {
		ser = serializer.NewFileWriterOrStdout(format, dest, kube)
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, data)
}
