// Copyright 2025 The Rivaas Authors
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

package schema

import (
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// config holds per-call validation settings.
type config struct {
	runAll          bool
	partial         bool
	maxErrors       int
	presence        PresenceMap
	fieldNameMapper func(string) string
	logger          *slog.Logger
	tracerProvider  trace.TracerProvider
	meterProvider   metric.MeterProvider
}

// Option configures a call to [Schema.Validate].
type Option func(*config)

// newConfig returns the defaults: stop at the first failing validator per
// path, unlimited errors, discard logging, global OpenTelemetry providers.
func newConfig() *config {
	return &config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// validate checks option values.
func (c *config) validate() error {
	if c.maxErrors < 0 {
		return errors.New("maxErrors must be non-negative")
	}
	if c.logger == nil {
		return errors.New("logger cannot be nil")
	}

	return nil
}

// WithRunAll reports every failing validator of a path instead of stopping
// at the first one.
func WithRunAll(runAll bool) Option {
	return func(c *config) {
		c.runAll = runAll
	}
}

// WithMaxErrors caps the number of field errors returned. 0 means unlimited.
//
// Example:
//
//	err := s.Validate(ctx, doc, schema.WithMaxErrors(10))
func WithMaxErrors(maxErrors int) Option {
	return func(c *config) {
		c.maxErrors = maxErrors
	}
}

// WithPartial enables partial validation: only paths present in the
// [PresenceMap] given by [WithPresence] are checked.
func WithPartial(partial bool) Option {
	return func(c *config) {
		c.partial = partial
	}
}

// WithPresence sets the presence map used by partial validation.
// Use [ComputePresence] to build one from raw JSON.
func WithPresence(pm PresenceMap) Option {
	return func(c *config) {
		c.presence = pm
	}
}

// WithFieldNameMapper rewrites paths in reported errors.
// Messages are rendered with the mapped path as well.
//
// Example:
//
//	schema.WithFieldNameMapper(strings.ToUpper)
func WithFieldNameMapper(mapper func(string) string) Option {
	return func(c *config) {
		c.fieldNameMapper = mapper
	}
}

// WithLogger sets the logger used for debug records about failed validators.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracerProvider sets the provider for validation spans.
// Defaults to the global provider from go.opentelemetry.io/otel.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets the provider for validation counters.
// Defaults to the global provider from go.opentelemetry.io/otel.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// applyOptions builds a config from the defaults and opts.
func applyOptions(opts ...Option) (*config, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
