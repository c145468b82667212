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

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	cverrors "github.com/NVIDIA/calver/pkg/errors"
)

// Role is the semantic meaning of one positional slot of a version string.
type Role string

const (
	// RoleFullYear is the four digit calendar year.
	RoleFullYear Role = "yyyy"
	// RoleShortYear is the calendar year minus 2000.
	RoleShortYear Role = "yy"
	// RoleMonth is the calendar month, 1 through 12, without padding.
	RoleMonth Role = "mm"
	// RoleDay is the day of the month, 1 through 31, without padding.
	RoleDay Role = "dd"
	// RoleMajor is a semantic counter.
	RoleMajor Role = "major"
	// RoleMinor is a semantic counter.
	RoleMinor Role = "minor"
	// RolePatch is a semantic counter.
	RolePatch Role = "patch"
)

// CalendarDirective advances every calendar role to the current date.
const CalendarDirective = "calendar"

// SupportedRoles returns the format tokens accepted by Interpret.
func SupportedRoles() []string {
	return []string{
		string(RoleFullYear),
		string(RoleShortYear),
		string(RoleMonth),
		string(RoleDay),
		string(RoleMajor),
		string(RoleMinor),
		string(RolePatch),
	}
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r.IsCalendar() || r.IsSemantic()
}

// IsCalendar reports whether r is derived from the current date.
func (r Role) IsCalendar() bool {
	switch r {
	case RoleFullYear, RoleShortYear, RoleMonth, RoleDay:
		return true
	default:
		return false
	}
}

// IsSemantic reports whether r is a plain counter.
func (r Role) IsSemantic() bool {
	switch r {
	case RoleMajor, RoleMinor, RolePatch:
		return true
	default:
		return false
	}
}

// valueAt returns the value a calendar role takes on the given date.
func (r Role) valueAt(t time.Time) int {
	switch r {
	case RoleFullYear:
		return t.Year()
	case RoleShortYear:
		return t.Year() - 2000
	case RoleMonth:
		return int(t.Month())
	case RoleDay:
		return t.Day()
	default:
		return 0
	}
}

// inRange reports whether v is an acceptable stored value for r.
func (r Role) inRange(v int) bool {
	switch r {
	case RoleMonth:
		return v >= 1 && v <= 12
	case RoleDay:
		return v >= 1 && v <= 31
	default:
		return v >= 0
	}
}

// Component is one main slot of a version along with its role.
type Component struct {
	Role  Role `json:"role" yaml:"role"`
	Value int  `json:"value" yaml:"value"`
}

// Prerelease is the labeled counter following the first "-" of a version,
// e.g. "alpha.3".
type Prerelease struct {
	Label   string `json:"label" yaml:"label"`
	Counter int    `json:"counter" yaml:"counter"`
}

// Components is a version interpreted against a format. Parts keep the
// left-to-right order of the format.
type Components struct {
	Parts      []Component `json:"parts" yaml:"parts"`
	Prerelease *Prerelease `json:"prerelease,omitempty" yaml:"prerelease,omitempty"`
}

// String renders the components back into a version string.
// A prerelease is always rendered with its counter.
func (c Components) String() string {
	parts := make([]string, len(c.Parts))
	for i, p := range c.Parts {
		parts[i] = strconv.Itoa(p.Value)
	}
	s := strings.Join(parts, mainSeparator)
	if c.Prerelease != nil {
		s += fmt.Sprintf("%s%s%s%d", prereleaseSeparator, c.Prerelease.Label, mainSeparator, c.Prerelease.Counter)
	}
	return s
}

// Index returns the position of role in c, or -1 if the format lacks it.
func (c Components) Index(role Role) int {
	return slices.IndexFunc(c.Parts, func(p Component) bool { return p.Role == role })
}

func (c Components) clone() Components {
	out := Components{Parts: slices.Clone(c.Parts)}
	if c.Prerelease != nil {
		pre := *c.Prerelease
		out.Prerelease = &pre
	}
	return out
}

// ParseFormat splits a format template into its roles.
func ParseFormat(format string) ([]Role, error) {
	if strings.TrimSpace(format) == "" {
		return nil, cverrors.New(cverrors.ErrCodeFormatMismatch, "format is empty")
	}

	tokens := strings.Split(format, mainSeparator)
	roles := make([]Role, 0, len(tokens))
	for _, tok := range tokens {
		role := Role(tok)
		if !role.IsValid() {
			return nil, cverrors.NewWithContext(cverrors.ErrCodeFormatMismatch,
				fmt.Sprintf("unsupported format token %q", tok),
				map[string]any{"format": format, "supported": SupportedRoles()})
		}
		if slices.Contains(roles, role) {
			return nil, cverrors.NewWithContext(cverrors.ErrCodeFormatMismatch,
				fmt.Sprintf("format token %q is repeated", tok),
				map[string]any{"format": format})
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// Interpret zips the main parts of version with the roles declared by format.
// Any version may carry a trailing "-label" or "-label.counter" prerelease.
// A count or type disagreement is reported as FORMAT_MISMATCH.
func Interpret(format, version string) (Components, error) {
	roles, err := ParseFormat(format)
	if err != nil {
		return Components{}, err
	}

	main, prerelease, hasPrerelease := strings.Cut(version, prereleaseSeparator)
	values := strings.Split(main, mainSeparator)
	if len(values) != len(roles) {
		return Components{}, cverrors.NewWithContext(cverrors.ErrCodeFormatMismatch,
			fmt.Sprintf("version %q has %d components, format %q declares %d",
				version, len(values), format, len(roles)),
			map[string]any{"format": format, "version": version})
	}

	c := Components{Parts: make([]Component, len(roles))}
	for i, role := range roles {
		v, ok := parseValue(values[i])
		if !ok || !role.inRange(v) {
			return Components{}, cverrors.NewWithContext(cverrors.ErrCodeFormatMismatch,
				fmt.Sprintf("invalid value %q for %s", values[i], role),
				map[string]any{"format": format, "version": version, "position": i})
		}
		c.Parts[i] = Component{Role: role, Value: v}
	}

	if hasPrerelease {
		pre, err := parsePrerelease(prerelease)
		if err != nil {
			return Components{}, err
		}
		c.Prerelease = pre
	}

	return c, nil
}

func parseValue(s string) (int, bool) {
	if !isNumeric(s) {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parsePrerelease(s string) (*Prerelease, error) {
	label, counter, hasCounter := strings.Cut(s, mainSeparator)
	if label == "" || isNumeric(label) {
		return nil, cverrors.NewWithContext(cverrors.ErrCodeFormatMismatch,
			fmt.Sprintf("prerelease %q has no label", s),
			map[string]any{"prerelease": s})
	}

	pre := &Prerelease{Label: label}
	if hasCounter {
		v, ok := parseValue(counter)
		if !ok {
			return nil, cverrors.NewWithContext(cverrors.ErrCodeFormatMismatch,
				fmt.Sprintf("prerelease counter %q is not a number", counter),
				map[string]any{"prerelease": s})
		}
		pre.Counter = v
	}
	return pre, nil
}
