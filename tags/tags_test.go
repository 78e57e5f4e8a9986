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

package tags

import (
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/schema"
)

type order struct {
	Tags    []string `json:"tags" validate:"max_items=3"`
	IDs     []int    `json:"ids" validate:"min_items=2,unique_items"`
	Name    string   `json:"name" validate:"required"`
	Profile profile  `json:"profile"`
}

type profile struct {
	Links []any `json:"links,omitempty" validate:"unique_items"`
}

func TestStruct(t *testing.T) {
	t.Parallel()

	v, err := New()
	require.NoError(t, err)

	tests := []struct {
		name      string
		in        order
		wantCodes map[string]string
	}{
		{
			name: "valid",
			in:   order{Tags: []string{"a"}, IDs: []int{1, 2}, Name: "x"},
		},
		{
			name:      "too many tags",
			in:        order{Tags: []string{"a", "b", "c", "d"}, IDs: []int{1, 2}, Name: "x"},
			wantCodes: map[string]string{"tags": "array.maxItems"},
		},
		{
			name:      "nil ids are too short",
			in:        order{Name: "x"},
			wantCodes: map[string]string{"ids": "array.minItems"},
		},
		{
			name:      "duplicate ids",
			in:        order{IDs: []int{4, 4}, Name: "x"},
			wantCodes: map[string]string{"ids": "array.uniqueItems"},
		},
		{
			name: "nested duplicates and other tags",
			in: order{
				IDs:     []int{1, 2},
				Profile: profile{Links: []any{1, 1.0}},
			},
			wantCodes: map[string]string{"name": "tag.required", "profile.links": "array.uniqueItems"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Struct(v, tt.in)
			if tt.wantCodes == nil {
				require.NoError(t, err)
				return
			}

			var verr *schema.Error
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, len(tt.wantCodes))
			for path, code := range tt.wantCodes {
				fe := verr.GetField(path)
				require.NotNil(t, fe, "missing %s in %v", path, verr.Fields)
				assert.Equal(t, code, fe.Code)
			}
		})
	}
}

func TestStruct_Messages(t *testing.T) {
	t.Parallel()

	v, err := New()
	require.NoError(t, err)

	err = Struct(v, order{Tags: []string{"a", "b", "c", "d"}, IDs: []int{1, 2}, Name: "x"})

	var verr *schema.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Array length of `tags` (4) is more than maximum allowed length (3).", verr.Fields[0].Message)
	assert.Equal(t, map[string]any{"validator": "maxItems", "length": 4}, verr.Fields[0].Meta)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	require.Error(t, Register(nil))

	v := validator.New()
	require.NoError(t, Register(v))

	assert.NoError(t, v.Var([]int{1, 2}, "max_items=2,unique_items"))
	assert.Error(t, v.Var([]int{1, 2, 3}, "max_items=2"))
	assert.Error(t, v.Var([]int{1, 1}, "unique_items"))
	assert.Error(t, v.Var([]int{}, "min_items=1"))
	assert.Error(t, v.Var("abc", "max_items=5"), "non-list values never pass")
	assert.Error(t, v.Var([]int{}, "max_items=abc"), "malformed bounds reject everything")
}

func TestJSONName(t *testing.T) {
	t.Parallel()

	type sample struct {
		A string `json:"a,omitempty"`
		B string `json:"-"`
		C string
	}
	typ := reflect.TypeOf(sample{})

	assert.Equal(t, "a", jsonName(typ.Field(0)))
	assert.Empty(t, jsonName(typ.Field(1)))
	assert.Equal(t, "C", jsonName(typ.Field(2)))
}

func TestFieldPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "profile.links", fieldPath("order.profile.links"))
	assert.Equal(t, "tags", fieldPath("tags"))
}
