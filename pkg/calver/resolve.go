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
	"errors"
	"fmt"
	"strings"
	"time"

	cverrors "github.com/NVIDIA/calver/pkg/errors"
)

// Resolve applies an increment directive to c and renders the next version.
//
// The directive is a dot separated chain evaluated left to right; the first
// part that applies wins:
//   - "calendar" moves every calendar role to today and zeroes the counters
//     after the last calendar role. When the calendar already matches today
//     it does nothing and evaluation moves on to the next part.
//   - "major", "minor" and "patch" add one to that role and zero the
//     counters after it.
//   - any other name is a prerelease track which adds one to the prerelease
//     counter when the current label equals the name.
//
// If no part applies the error carries DIRECTIVE_EXHAUSTED and joins the
// failures of the individual parts.
func Resolve(c Components, directive string, today time.Time) (string, error) {
	var errs []error
	for _, name := range strings.Split(directive, mainSeparator) {
		next, applied, err := apply(c, name, today)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if applied {
			return next.String(), nil
		}
	}

	return "", cverrors.WrapWithContext(cverrors.ErrCodeDirectiveExhausted,
		fmt.Sprintf("no part of increment %q could be applied", directive),
		errors.Join(errs...),
		map[string]any{"increment": directive, "version": c.String()})
}

func apply(c Components, name string, today time.Time) (Components, bool, error) {
	role := Role(name)
	switch {
	case name == "":
		return c, false, cverrors.New(cverrors.ErrCodeUnknownRole, "increment has an empty part")
	case name == CalendarDirective:
		next, applied := advanceCalendar(c, today)
		return next, applied, nil
	case role.IsSemantic():
		next, err := bump(c, role)
		return next, err == nil, err
	case role.IsCalendar():
		return c, false, cverrors.New(cverrors.ErrCodeUnknownRole,
			fmt.Sprintf("calendar role %q is only advanced by %q", name, CalendarDirective))
	default:
		next, err := bumpPrerelease(c, name)
		return next, err == nil, err
	}
}

// advanceCalendar reports false when c has no calendar role or already
// matches today.
func advanceCalendar(c Components, today time.Time) (Components, bool) {
	last := -1
	changed := false
	for i, p := range c.Parts {
		if !p.Role.IsCalendar() {
			continue
		}
		last = i
		if p.Value != p.Role.valueAt(today) {
			changed = true
		}
	}
	if !changed {
		return c, false
	}

	next := c.clone()
	for i := range next.Parts {
		if next.Parts[i].Role.IsCalendar() {
			next.Parts[i].Value = next.Parts[i].Role.valueAt(today)
		}
	}
	next.resetAfter(last)
	return next, true
}

func bump(c Components, role Role) (Components, error) {
	idx := c.Index(role)
	if idx < 0 {
		return c, cverrors.New(cverrors.ErrCodeUnknownRole,
			fmt.Sprintf("format does not declare %q", role))
	}

	next := c.clone()
	next.Parts[idx].Value++
	next.resetAfter(idx)
	return next, nil
}

func bumpPrerelease(c Components, label string) (Components, error) {
	if c.Prerelease == nil {
		return c, cverrors.New(cverrors.ErrCodeLabelMismatch,
			fmt.Sprintf("version has no prerelease to advance on track %q", label))
	}
	if c.Prerelease.Label != label {
		return c, cverrors.New(cverrors.ErrCodeLabelMismatch,
			fmt.Sprintf("prerelease label %q does not match track %q", c.Prerelease.Label, label))
	}

	next := c.clone()
	next.Prerelease.Counter++
	return next, nil
}

// resetAfter zeroes every counter positioned after idx, including the
// prerelease counter. Calendar roles keep their value.
func (c *Components) resetAfter(idx int) {
	for i := idx + 1; i < len(c.Parts); i++ {
		if !c.Parts[i].Role.IsCalendar() {
			c.Parts[i].Value = 0
		}
	}
	if c.Prerelease != nil {
		c.Prerelease.Counter = 0
	}
}
