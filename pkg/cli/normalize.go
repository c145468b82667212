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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/calver/pkg/calver"
)

// normalized prints as its normalized form in text output.
type normalized struct {
	Version    string `json:"version" yaml:"version"`
	Normalized string `json:"normalized" yaml:"normalized"`
}

func (n normalized) String() string { return n.Normalized }

type normalizedList []normalized

func (l normalizedList) String() string {
	var s string
	for i, n := range l {
		if i > 0 {
			s += "\n"
		}
		s += n.Normalized
	}
	return s
}

func normalizeCmd() *cli.Command {
	return &cli.Command{
		Name:      "normalize",
		Usage:     "Strip leading zeros from numeric version parts",
		ArgsUsage: "VERSION...",
		Flags: []cli.Flag{
			outputFlag(),
			outputFormatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			args := cmd.Args().Slice()
			if len(args) == 0 {
				return fmt.Errorf("at least one version is required")
			}

			out := make(normalizedList, 0, len(args))
			for _, v := range args {
				out = append(out, normalized{Version: v, Normalized: calver.NormalizeVersion(v)})
			}
			return writeOutput(ctx, cmd, outFormat, out)
		},
	}
}
