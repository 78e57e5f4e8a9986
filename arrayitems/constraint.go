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
	"math"
	"reflect"

	"github.com/spf13/cast"

	"rivaas.dev/schema"
)

// Option names read from a field's [schema.Options].
const (
	MaxItems    = "maxItems"
	MinItems    = "minItems"
	UniqueItems = "uniqueItems"
)

// Constraint is the record form of a constraint option: a value plus an
// optional message that replaces the default one.
//
// The scalar form is the bare value (3, true, "3"). A map[string]any with
// "value" and "message" keys, as produced by decoding JSON or YAML, is
// treated as a record too; its message may be a [schema.MessageFunc] or a
// template string for [schema.MessageTemplate].
//
// Example:
//
//	schema.Options{
//	    "maxItems":    arrayitems.Constraint{Value: 3, Message: tooMany},
//	    "uniqueItems": true,
//	}
type Constraint struct {
	Value   any
	Message schema.MessageFunc
}

// record unpacks the record form. ok is false for scalars.
func record(spec any) (value any, msg schema.MessageFunc, ok bool) {
	switch c := spec.(type) {
	case Constraint:
		return c.Value, c.Message, true
	case *Constraint:
		if c == nil {
			return nil, nil, false
		}
		return c.Value, c.Message, true
	case map[string]any:
		value, has := c["value"]
		if has && value == nil {
			// An explicit null bound compares as 0.
			value = 0
		}
		return value, messageOf(c["message"]), true
	default:
		return spec, nil, false
	}
}

// messageOf converts a decoded message entry into a MessageFunc.
// Empty or unsupported entries yield nil so the default message is used.
func messageOf(v any) schema.MessageFunc {
	switch m := v.(type) {
	case schema.MessageFunc:
		return m
	case func(schema.Props) string:
		return m
	case string:
		if m == "" {
			return nil
		}
		return schema.MessageTemplate(m)
	default:
		return nil
	}
}

// truthy mirrors the loose truthiness used for option presence:
// nil, false, zero, NaN and "" are false; every record is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case Constraint, map[string]any:
		return true
	case *Constraint:
		return t != nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	default:
		return true
	}
}

// Present reports whether the option spec for the named constraint would
// install a validator.
//
// maxItems and minItems are present when the option itself is truthy, so
// a record is present even when its value is 0. uniqueItems is present when
// truthy unless it is a record whose value is exactly false; a record with
// no value counts as present.
func Present(name string, spec any) bool {
	switch name {
	case MaxItems, MinItems:
		return truthy(spec)
	case UniqueItems:
		if !truthy(spec) {
			return false
		}
		if value, _, ok := record(spec); ok {
			if b, isBool := value.(bool); isBool && !b {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Bound resolves the numeric limit of a maxItems or minItems spec.
//
// Numeric strings and booleans coerce the way github.com/spf13/cast does.
// An explicit null value in a map record counts as 0.
// A missing or uncastable value yields NaN, which fails every comparison,
// so the validator rejects all values instead of silently passing them.
func Bound(spec any) float64 {
	value, _, _ := record(spec)
	if value == nil {
		return math.NaN()
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return math.NaN()
	}

	return f
}
