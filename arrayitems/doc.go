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

// Package arrayitems adds length and uniqueness constraints to the Array
// fields of a [schema.Schema].
//
// Three field options are recognized:
//
//   - maxItems: the array may hold at most N elements
//   - minItems: the array must hold at least N elements
//   - uniqueItems: no element may equal an earlier one
//
// Each option takes a bare value or a record with a custom message:
//
//	s := schema.New()
//	s.Add("tags", schema.KindArray, schema.Options{"maxItems": 3})
//	s.Add("ids", schema.KindArray, schema.Options{
//		"minItems": 2,
//		"uniqueItems": arrayitems.Constraint{
//			Value:   true,
//			Message: func(schema.Props) string { return "dupes!" },
//		},
//	})
//
//	arrayitems.Install(s)
//
// Validators are built once by [Install] and capture their bound; invoking
// them later is free of shared state.
package arrayitems
