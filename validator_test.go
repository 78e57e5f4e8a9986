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

//go:build !integration

package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_CheckAndRender(t *testing.T) {
	t.Parallel()

	empty := Validator{Name: "noop"}
	assert.True(t, empty.Check([]any{1}))
	assert.Equal(t, "Validator \"noop\" failed for path `tags`.", empty.Render(Props{Path: "tags"}))

	v := Validator{
		Name:     "short",
		Validate: func(value []any) bool { return len(value) < 2 },
		Message:  func(p Props) string { return p.Path + " is long" },
	}
	assert.True(t, v.Check([]any{1}))
	assert.False(t, v.Check([]any{1, 2}))
	assert.Equal(t, "tags is long", v.Render(Props{Path: "tags"}))
}

func TestMessageTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"path and length", "{PATH} has {LENGTH} items", "tags has 2 items"},
		{"value", "got {VALUE}", "got [a b]"},
		{"repeated", "{PATH}/{PATH}", "tags/tags"},
		{"no placeholders", "static", "static"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MessageTemplate(tt.tmpl)(Props{Path: "tags", Value: []any{"a", "b"}})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsArray(t *testing.T) {
	t.Parallel()

	strs := []string{"a", "b"}
	var nilPtr *[]int

	tests := []struct {
		name   string
		in     any
		want   []any
		wantOK bool
	}{
		{"nil", nil, nil, false},
		{"any slice", []any{1, "x"}, []any{1, "x"}, true},
		{"string slice", strs, []any{"a", "b"}, true},
		{"pointer to slice", &strs, []any{"a", "b"}, true},
		{"array", [2]int{1, 2}, []any{1, 2}, true},
		{"empty slice", []int{}, []any{}, true},
		{"nil pointer", nilPtr, nil, false},
		{"string", "abc", nil, false},
		{"map", map[string]any{"a": 1}, nil, false},
		{"number", 3, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := AsArray(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same ints", 1, 1, true},
		{"int and float", 1, 1.0, true},
		{"int and uint", int64(7), uint8(7), true},
		{"different numbers", 1, 2, false},
		{"number and string", 1, "1", false},
		{"string and number", "1", 1, false},
		{"strings", "a", "a", true},
		{"nil and nil", nil, nil, true},
		{"nil and zero", nil, 0, false},
		{"NaN", math.NaN(), math.NaN(), false},
		{"maps", map[string]any{"a": 1}, map[string]any{"a": 1}, true},
		{"different maps", map[string]any{"a": 1}, map[string]any{"a": 2}, false},
		{"lists", []any{1, "x"}, []any{1, "x"}, true},
		{"bools", true, true, true},
		{"bool and number", true, 1, false},
		{"large int64 values", int64(1<<53 + 1), int64(1 << 53), false},
		{"large uint64 values", uint64(math.MaxUint64), uint64(math.MaxUint64 - 1), false},
		{"negative int and uint", -1, uint64(math.MaxUint64), false},
		{"int64 and uint64 of same value", int64(math.MaxInt64), uint64(math.MaxInt64), true},
		{"integral float and int", float64(1 << 53), int64(1 << 53), true},
		{"float and int past its precision", float64(1 << 53), int64(1<<53 + 1), false},
		{"float out of int64 range", float64(1 << 63), int64(math.MaxInt64), false},
		{"fractional float and int", 1.5, 1, false},
		{"float32 and float64", float32(0.5), 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}
