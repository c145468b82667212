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
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultFormat is used when no format is configured.
	DefaultFormat = "yy.mm.minor"
	// DefaultIncrement is used when no increment is configured.
	DefaultIncrement = CalendarDirective
	// DefaultFallbackIncrement is used when no fallback increment is configured.
	DefaultFallbackIncrement = string(RoleMinor)
)

// Outcome describes which directive produced a Result.
type Outcome string

const (
	// OutcomePrimary means the configured increment applied.
	OutcomePrimary Outcome = "primary"
	// OutcomeFallback means the increment failed and the fallback applied.
	OutcomeFallback Outcome = "fallback"
	// OutcomeUnchanged means both directives failed and the input is returned.
	OutcomeUnchanged Outcome = "unchanged"
)

// Options configures an Incrementer. Empty fields keep their prior value.
type Options struct {
	Format            string `json:"format,omitempty" yaml:"format,omitempty"`
	Increment         string `json:"increment,omitempty" yaml:"increment,omitempty"`
	FallbackIncrement string `json:"fallbackIncrement,omitempty" yaml:"fallbackIncrement,omitempty"`
}

// Merge returns o with every non-empty field of other applied on top.
func (o Options) Merge(other Options) Options {
	if other.Format != "" {
		o.Format = other.Format
	}
	if other.Increment != "" {
		o.Increment = other.Increment
	}
	if other.FallbackIncrement != "" {
		o.FallbackIncrement = other.FallbackIncrement
	}
	return o
}

// Args carries the inputs of an increment call.
type Args struct {
	LatestVersion string `json:"latestVersion,omitempty" yaml:"latestVersion,omitempty"`
}

// Result is the detailed outcome of an increment.
type Result struct {
	Previous   string   `json:"previous" yaml:"previous"`
	Normalized string   `json:"normalized" yaml:"normalized"`
	Next       string   `json:"next" yaml:"next"`
	Format     string   `json:"format" yaml:"format"`
	Increment  string   `json:"increment,omitempty" yaml:"increment,omitempty"`
	Outcome    Outcome  `json:"outcome" yaml:"outcome"`
	Changed    bool     `json:"changed" yaml:"changed"`
	SemVer     bool     `json:"semver" yaml:"semver"`
	Errors     []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// String returns the next version.
func (r Result) String() string {
	return r.Next
}

// Option is a functional option for configuring an Incrementer.
type Option func(*Incrementer)

// WithOptions applies initial options.
func WithOptions(o Options) Option {
	return func(p *Incrementer) {
		p.opts = p.opts.Merge(o)
	}
}

// WithClock replaces the current-time provider.
func WithClock(now func() time.Time) Option {
	return func(p *Incrementer) {
		if now != nil {
			p.now = now
		}
	}
}

// Incrementer computes next versions from a previous version and its
// configured format, increment and fallback increment. It never fails:
// when neither directive applies the previous version is returned verbatim.
type Incrementer struct {
	mu   sync.RWMutex
	opts Options
	now  func() time.Time
}

// New returns an Incrementer using the defaults and the wall clock.
func New(opts ...Option) *Incrementer {
	p := &Incrementer{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetContext applies the non-empty fields of o.
func (p *Incrementer) SetContext(o Options) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts = p.opts.Merge(o)
}

// Format returns the configured format or DefaultFormat.
func (p *Incrementer) Format() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return valueOr(p.opts.Format, DefaultFormat)
}

// Inc returns the configured increment or DefaultIncrement.
func (p *Incrementer) Inc() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return valueOr(p.opts.Increment, DefaultIncrement)
}

// FallbackInc returns the configured fallback increment or DefaultFallbackIncrement.
func (p *Incrementer) FallbackInc() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return valueOr(p.opts.FallbackIncrement, DefaultFallbackIncrement)
}

// NormalizeVersion calls the package level NormalizeVersion.
func (p *Incrementer) NormalizeVersion(version string) string {
	return NormalizeVersion(version)
}

// IncrementedVersion returns the next version for args.LatestVersion.
// The boolean is false only when no latest version was supplied.
func (p *Incrementer) IncrementedVersion(args Args) (string, bool) {
	if args.LatestVersion == "" {
		return "", false
	}
	return p.Resolve(args.LatestVersion).Next, true
}

// Increment is an alias of IncrementedVersion.
func (p *Incrementer) Increment(args Args) (string, bool) {
	return p.IncrementedVersion(args)
}

// IncrementedVersionCI is an alias of IncrementedVersion.
func (p *Incrementer) IncrementedVersionCI(args Args) (string, bool) {
	return p.IncrementedVersion(args)
}

// Resolve computes the next version and reports how it was obtained.
// The configured increment is tried first, then the fallback increment;
// when both fail Next is latest, unnormalized.
func (p *Incrementer) Resolve(latest string) Result {
	format, inc, fallback := p.Format(), p.Inc(), p.FallbackInc()
	normalized := NormalizeVersion(latest)

	res := Result{
		Previous:   latest,
		Normalized: normalized,
		Format:     format,
	}

	today := p.now()
	for _, attempt := range []struct {
		increment string
		outcome   Outcome
	}{
		{inc, OutcomePrimary},
		{fallback, OutcomeFallback},
	} {
		next, err := incrementOnce(format, normalized, attempt.increment, today)
		if err != nil {
			slog.Debug("increment failed",
				"version", latest,
				"format", format,
				"increment", attempt.increment,
				"outcome", attempt.outcome,
				"error", err)
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.Next = next
		res.Increment = attempt.increment
		res.Outcome = attempt.outcome
		res.Changed = next != latest
		res.SemVer = IsSemVer(next)
		return res
	}

	res.Next = latest
	res.Outcome = OutcomeUnchanged
	res.SemVer = IsSemVer(latest)
	return res
}

func incrementOnce(format, version, increment string, today time.Time) (string, error) {
	c, err := Interpret(format, version)
	if err != nil {
		return "", err
	}
	return Resolve(c, increment, today)
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
