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
	"fmt"
	"math"
	"strconv"

	"rivaas.dev/schema"
)

// Default message formats.
const (
	msgMaxItems    = "Array length of `%s` (%d) is more than maximum allowed length (%s)."
	msgMinItems    = "Array length of `%s` (%d) is less than minimum allowed length (%s)."
	msgUniqueItems = "Values of `%s` must be unique."
)

// EqualFunc decides whether two array elements are duplicates.
type EqualFunc func(a, b any) bool

// MaxValidator builds the maxItems validator for spec, which is either a
// bare bound or a record (see [Constraint]).
// The predicate passes when len(value) <= bound.
func MaxValidator(spec any) schema.Validator {
	raw, custom, _ := record(spec)
	bound := Bound(spec)
	text := formatBound(raw, bound)

	msg := custom
	if msg == nil {
		msg = func(p schema.Props) string {
			return fmt.Sprintf(msgMaxItems, p.Path, len(p.Value), text)
		}
	}

	return schema.Validator{
		Name: MaxItems,
		Validate: func(v []any) bool {
			return float64(len(v)) <= bound
		},
		Message: msg,
	}
}

// MinValidator builds the minItems validator for spec.
// The predicate passes when len(value) >= bound.
func MinValidator(spec any) schema.Validator {
	raw, custom, _ := record(spec)
	bound := Bound(spec)
	text := formatBound(raw, bound)

	msg := custom
	if msg == nil {
		msg = func(p schema.Props) string {
			return fmt.Sprintf(msgMinItems, p.Path, len(p.Value), text)
		}
	}

	return schema.Validator{
		Name: MinItems,
		Validate: func(v []any) bool {
			return float64(len(v)) >= bound
		},
		Message: msg,
	}
}

// UniqueValidator builds the uniqueItems validator for spec using
// [schema.Equal]. The spec's value only decides presence; the predicate is
// the same for every spec.
func UniqueValidator(spec any) schema.Validator {
	return UniqueValidatorFunc(spec, schema.Equal)
}

// UniqueValidatorFunc is [UniqueValidator] with a custom element equality.
func UniqueValidatorFunc(spec any, eq EqualFunc) schema.Validator {
	if eq == nil {
		eq = schema.Equal
	}
	_, custom, _ := record(spec)

	msg := custom
	if msg == nil {
		msg = func(p schema.Props) string {
			return fmt.Sprintf(msgUniqueItems, p.Path)
		}
	}

	return schema.Validator{
		Name: UniqueItems,
		Validate: func(v []any) bool {
			return Unique(v, eq)
		},
		Message: msg,
	}
}

// Unique reports whether no element of v equals an earlier element.
// The scan is quadratic; array fields are expected to be short.
func Unique(v []any, eq EqualFunc) bool {
	for i := 1; i < len(v); i++ {
		for j := range i {
			if eq(v[j], v[i]) {
				return false
			}
		}
	}

	return true
}

// formatBound renders the resolved bound, or the raw value when it does not
// resolve to a number.
func formatBound(raw any, bound float64) string {
	if math.IsNaN(bound) {
		return fmt.Sprint(raw)
	}

	return strconv.FormatFloat(bound, 'f', -1, 64)
}
