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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/calver/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the increment API over HTTP",
		Description: `Start the HTTP API exposing /v1/increment and /v1/normalize,
plus /health, /ready and /metrics.

Options from --config and CALVER_* become the defaults for every request;
requests may override format, increment and fallbackIncrement.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "listen port (default: $PORT or 8080)",
			},
			configFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			loader, err := loaderFromCmd(cmd)
			if err != nil {
				return err
			}
			return api.Serve(ctx, api.Options{
				Loader:      loader,
				Port:        int(cmd.Int("port")),
				SkipLogging: true,
			})
		},
	}
}
