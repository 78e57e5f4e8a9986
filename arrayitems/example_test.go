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

package arrayitems_test

import (
	"context"
	"fmt"

	"rivaas.dev/schema"
	"rivaas.dev/schema/arrayitems"
)

func ExampleInstall() {
	s := schema.New()
	s.Add("ids", schema.KindArray, schema.Options{
		"minItems": 2,
		"uniqueItems": arrayitems.Constraint{
			Value:   true,
			Message: func(schema.Props) string { return "dupes!" },
		},
	})
	arrayitems.Install(s)

	fmt.Println(s.Validate(context.Background(), map[string]any{"ids": []any{1}}))
	fmt.Println(s.Validate(context.Background(), map[string]any{"ids": []any{1, 1}}))
	fmt.Println(s.Validate(context.Background(), map[string]any{"ids": []any{1, 2}}))
	// Output:
	// Array length of `ids` (1) is less than minimum allowed length (2).
	// dupes!
	// <nil>
}

func ExamplePlugin() {
	s := schema.New()
	s.Add("tags", schema.KindArray, schema.Options{"maxItems": map[string]any{
		"value":   1,
		"message": "{PATH} takes one value, got {LENGTH}",
	}})
	s.Use(arrayitems.Plugin())

	fmt.Println(s.Validate(context.Background(), map[string]any{"tags": []any{"a", "b"}}))
	// Output: tags takes one value, got 2
}
