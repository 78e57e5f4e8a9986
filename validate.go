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
	"context"
	"fmt"
	"log/slog"
)

// Validate checks doc against s. It is shorthand for s.Validate.
func Validate(ctx context.Context, s *Schema, doc map[string]any, opts ...Option) error {
	return s.Validate(ctx, doc, opts...)
}

// Validate runs the validators attached to every array field against doc.
//
// Validate returns nil when all validators pass, an [*Error] when at least
// one fails, and a plain error for invalid input or options. Fields are
// visited in path order; within a field, validators run in the order they
// were attached and the first failure ends that field unless [WithRunAll]
// is set.
//
// An absent or null value at an Array path is checked as an empty list.
//
// Example:
//
//	s := schema.New()
//	s.Add("tags", schema.KindArray, schema.Options{"maxItems": 3})
//	arrayitems.Install(s)
//
//	err := s.Validate(ctx, map[string]any{"tags": []any{"a", "b", "c", "d"}})
//	// err: Array length of `tags` (4) is more than maximum allowed length (3).
func (s *Schema) Validate(ctx context.Context, doc map[string]any, opts ...Option) error {
	if s == nil {
		return ErrNilSchema
	}
	if doc == nil {
		return ErrNilDocument
	}

	cfg, err := applyOptions(opts...)
	if err != nil {
		return fmt.Errorf("invalid validation options: %w", err)
	}

	tel := newTelemetry(cfg)
	ctx, span := tel.start(ctx, len(s.Paths))

	result, err := s.validateFields(ctx, doc, cfg, tel)
	tel.finish(ctx, span, result)
	if err != nil {
		return err
	}

	if result.HasErrors() {
		return result
	}

	return nil
}

// ValidatePartial checks only the array paths present in pm.
// It is useful for PATCH bodies where omitted lists must not fail minItems.
func (s *Schema) ValidatePartial(ctx context.Context, doc map[string]any, pm PresenceMap, opts ...Option) error {
	opts = append([]Option{WithPresence(pm), WithPartial(true)}, opts...)
	return s.Validate(ctx, doc, opts...)
}

// validateFields walks the array fields and collects failures.
// It stops early when ctx is done.
func (s *Schema) validateFields(ctx context.Context, doc map[string]any, cfg *config, tel *telemetry) (*Error, error) {
	result := &Error{}

	for _, path := range s.SortedPaths() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		field := s.Paths[path]
		if !field.IsArray() || len(field.Validators) == 0 {
			continue
		}
		if cfg.partial && !cfg.presence.Has(path) {
			continue
		}

		if s.validateField(ctx, field, doc, cfg, tel, result) {
			break
		}
	}

	result.Sort()

	return result, nil
}

// validateField checks one field. It returns true once maxErrors is reached.
func (s *Schema) validateField(ctx context.Context, field *Field, doc map[string]any, cfg *config, tel *telemetry, result *Error) bool {
	reported := field.Path
	if cfg.fieldNameMapper != nil {
		reported = cfg.fieldNameMapper(reported)
	}

	raw, _ := Lookup(doc, field.Path)
	value := []any{}
	if raw != nil {
		arr, ok := AsArray(raw)
		if !ok {
			return s.report(ctx, typeError(reported, raw), cfg, tel, result)
		}
		value = arr
	}

	for _, v := range field.Validators {
		if v.Check(value) {
			continue
		}

		fe := newFieldError(reported, v, value)
		cfg.logger.DebugContext(ctx, "array validator failed",
			slog.String("path", field.Path),
			slog.String("validator", v.Name),
			slog.Int("length", len(value)),
		)
		if s.report(ctx, fe, cfg, tel, result) {
			return true
		}
		if !cfg.runAll {
			break
		}
	}

	return false
}

// report records fe and returns true when the error budget is spent.
func (s *Schema) report(ctx context.Context, fe FieldError, cfg *config, tel *telemetry, result *Error) bool {
	result.Fields = append(result.Fields, fe)
	tel.recordFailure(ctx, fe)

	if cfg.maxErrors > 0 && len(result.Fields) >= cfg.maxErrors {
		result.Truncated = true
		return true
	}

	return false
}
