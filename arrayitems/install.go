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

package arrayitems

import (
	"io"
	"log/slog"

	"rivaas.dev/schema"
)

// config holds installer settings.
type config struct {
	logger *slog.Logger
	equal  EqualFunc
}

// Option configures [Install].
type Option func(*config)

// WithLogger receives one debug record per installed validator.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEqual replaces the element equality used by uniqueItems.
//
// Example:
//
//	arrayitems.Install(s, arrayitems.WithEqual(func(a, b any) bool {
//	    return strings.EqualFold(fmt.Sprint(a), fmt.Sprint(b))
//	}))
func WithEqual(eq EqualFunc) Option {
	return func(c *config) {
		if eq != nil {
			c.equal = eq
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		equal:  schema.Equal,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Install attaches maxItems, minItems and uniqueItems validators to every
// Array field of s whose options configure them.
//
// Install mutates the fields in place and only appends; existing validators
// are kept. Per field the order is maxItems, minItems, uniqueItems. Fields of
// any other kind are left untouched whatever their options say. Install does
// not type-check option values: a malformed bound produces a validator that
// rejects every value (see [Bound]).
//
// Call Install once per schema, before validation starts.
func Install(s *schema.Schema, opts ...Option) {
	if s == nil {
		return
	}
	cfg := newConfig(opts...)

	for _, path := range s.SortedPaths() {
		field := s.Paths[path]
		if !field.IsArray() {
			continue
		}
		installField(field, cfg)
	}
}

// Plugin returns Install as a [schema.Plugin] for [schema.Schema.Use].
func Plugin(opts ...Option) schema.Plugin {
	return func(s *schema.Schema) {
		Install(s, opts...)
	}
}

// installField appends the configured validators of one array field.
func installField(field *schema.Field, cfg *config) {
	if spec, _ := field.Options.Get(MaxItems); Present(MaxItems, spec) {
		add(field, MaxValidator(spec), cfg)
	}
	if spec, _ := field.Options.Get(MinItems); Present(MinItems, spec) {
		add(field, MinValidator(spec), cfg)
	}
	if spec, _ := field.Options.Get(UniqueItems); Present(UniqueItems, spec) {
		add(field, UniqueValidatorFunc(spec, cfg.equal), cfg)
	}
}

func add(field *schema.Field, v schema.Validator, cfg *config) {
	field.AddValidator(v)
	cfg.logger.Debug("installed array validator",
		slog.String("path", field.Path),
		slog.String("validator", v.Name),
	)
}
