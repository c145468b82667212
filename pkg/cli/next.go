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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/calver/pkg/calver"
	"github.com/NVIDIA/calver/pkg/config"
)

func nextCmd() *cli.Command {
	return &cli.Command{
		Name:                  "next",
		EnableShellCompletion: true,
		Usage:                 "Compute the next version from the latest one",
		Description: `Compute the next calendar version.

The format declares the role of each dot separated part of the version
(supported: ` + strings.Join(calver.SupportedRoles(), ", ") + `).
The increment is a dot separated chain of directives tried left to right:
"calendar" moves calendar parts to today, "major", "minor" and "patch" bump
that part, and any other name bumps a matching prerelease counter.
When the increment fails the fallback increment is tried; when both fail the
latest version is printed unchanged.

# Examples

  calver next --latest 26.9.3
  calver next --latest 2026.10.19.1 --format yyyy.mm.dd.patch --increment calendar.patch
  calver next --latest 26.10.0-rc.1 --increment rc --output-format json
  calver next --latest 26.9.3 --config cm://release/calver --output cm://release/calver-next`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "latest",
				Aliases: []string{"l"},
				Usage:   "latest released version; nothing is printed when empty",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: fmt.Sprintf("version format (default: %s)", calver.DefaultFormat),
			},
			&cli.StringFlag{
				Name:  "increment",
				Usage: fmt.Sprintf("increment directive (default: %s)", calver.DefaultIncrement),
			},
			&cli.StringFlag{
				Name:  "fallback-increment",
				Usage: fmt.Sprintf("directive used when the increment fails (default: %s)", calver.DefaultFallbackIncrement),
			},
			configFlag(),
			outputFlag(),
			outputFormatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			latest := cmd.String("latest")
			if latest == "" {
				slog.Debug("no latest version supplied, nothing to increment")
				return nil
			}

			loader, err := loaderFromCmd(cmd)
			if err != nil {
				return err
			}
			loader.Overrides = calver.Options{
				Format:            cmd.String("format"),
				Increment:         cmd.String("increment"),
				FallbackIncrement: cmd.String("fallback-increment"),
			}

			// An unusable format leaves the latest version unchanged.
			opts, err := loader.Resolve(ctx)
			if err != nil {
				return err
			}
			if err := config.Validate(opts); err != nil {
				slog.Warn("latest version will be kept", "error", err)
			}

			result := calver.New(calver.WithOptions(opts)).Resolve(latest)
			return writeOutput(ctx, cmd, outFormat, result)
		},
	}
}
