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

// Package jsonschema exports a [schema.Schema] as JSON Schema and as a
// MongoDB collection validator.
//
// Array paths carry their maxItems, minItems and uniqueItems constraints
// using the same presence rules as the arrayitems installer, so the
// exported schema accepts the same array lengths and uniqueness as the
// installed validators. Dotted paths become nested objects.
//
// Two differences remain. Custom messages are not exported, and a null
// value at an array path is rejected by the exported schema while the
// validation engine treats it as an empty list.
//
// # JSON Schema
//
//	doc := jsonschema.Export(s)          // map ready for json.Marshal
//	c, err := jsonschema.Compile(s)      // compiled validator
//	err = c.Validate(map[string]any{"tags": []any{1, 2, 3, 4}})
//
// # MongoDB
//
//	err := jsonschema.ApplyMongoValidator(ctx, db, "orders", s)
package jsonschema
