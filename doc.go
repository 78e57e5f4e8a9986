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

// Package schema describes documents as a set of typed field paths and
// validates documents against the validators attached to those fields.
//
// # Getting Started
//
// Declare fields, let plugins attach validators, then validate:
//
//	s := schema.New()
//	s.Add("tags", schema.KindArray, schema.Options{"maxItems": 3})
//	s.Add("ids", schema.KindArray, schema.Options{"minItems": 2, "uniqueItems": true})
//	s.Use(arrayitems.Plugin())
//
//	doc := map[string]any{"tags": []any{"a", "b"}, "ids": []any{1, 1}}
//	if err := s.Validate(ctx, doc); err != nil {
//		var verr *schema.Error
//		if errors.As(err, &verr) {
//			for _, fe := range verr.Fields {
//				fmt.Printf("%s: %s\n", fe.Path, fe.Message)
//			}
//		}
//	}
//
// # Validators
//
// A [Validator] pairs a [Predicate] over the field's array value with a
// [MessageFunc]. Validators are attached once, at setup time, by plugins such
// as rivaas.dev/schema/arrayitems, and are invoked for every document
// afterwards. They hold no mutable state, so a configured [Schema] can be
// used from many goroutines at once.
//
// # Partial Validation
//
// For PATCH bodies use [Schema.ValidatePartial] with a [PresenceMap]:
//
//	pm, _ := schema.ComputePresence(rawJSON)
//	err := s.ValidatePartial(ctx, doc, pm)
//
// # Observability
//
// Each call opens an OpenTelemetry span and increments counters; pass
// [WithTracerProvider] and [WithMeterProvider] to route them, or rely on the
// global providers.
package schema
