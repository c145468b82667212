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

// Package cli implements the calver command line.
//
// Commands:
//
//	calver next --latest 26.9.3 [--format yy.mm.minor] [--increment calendar]
//	            [--fallback-increment minor] [--config SRC]
//	            [--output PATH|cm://ns/name] [--output-format text|json|yaml|table]
//	calver normalize VERSION...
//	calver serve [--port 8080] [--config SRC]
//
// Options resolve through pkg/config: built-in defaults, then --config
// (file, URL or cm://namespace/name), then CALVER_* environment variables,
// then explicit flags.
//
// next prints only the next version by default, so it composes in scripts:
//
//	NEXT=$(calver next --latest "$(git describe --tags --abbrev=0)")
//
// The CLI uses the urfave/cli/v3 framework.
package cli
