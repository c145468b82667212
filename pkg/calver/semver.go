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

package calver

import "github.com/blang/semver/v4"

// IsSemVer reports whether v is a strict Semantic Versioning 2.0.0 string.
// Release tooling that only accepts semver needs three main components with
// no leading zeros, so formats with four components or padded values fail.
func IsSemVer(v string) bool {
	_, err := semver.Parse(v)
	return err == nil
}
