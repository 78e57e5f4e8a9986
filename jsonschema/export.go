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

package jsonschema

import "rivaas.dev/schema"

// Draft is the JSON Schema dialect of exported documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// jsonTypes maps field kinds to JSON Schema types. Mixed has none.
var jsonTypes = map[schema.Kind]string{
	schema.KindArray:   "array",
	schema.KindString:  "string",
	schema.KindNumber:  "number",
	schema.KindBoolean: "boolean",
	schema.KindObject:  "object",
}

// Export returns s as a JSON Schema document.
//
// Example:
//
//	s := schema.New()
//	s.Add("tags", schema.KindArray, schema.Options{"maxItems": 3})
//	doc := jsonschema.Export(s)
//	// {"$schema": "...", "type": "object",
//	//  "properties": {"tags": {"type": "array", "maxItems": 3}}}
func Export(s *schema.Schema) map[string]any {
	if s == nil {
		s = schema.New()
	}
	out := toJSON(buildTree(s))
	out["$schema"] = Draft

	return out
}

// toJSON renders n in the JSON Schema dialect.
func toJSON(n *node) map[string]any {
	out := make(map[string]any)
	if n.never {
		out["not"] = map[string]any{}
		return out
	}
	if t, ok := jsonTypes[n.kind]; ok {
		out["type"] = t
	}
	if n.maxItems != nil {
		out["maxItems"] = *n.maxItems
	}
	if n.minItems != nil {
		out["minItems"] = *n.minItems
	}
	if n.unique {
		out["uniqueItems"] = true
	}
	if len(n.props) > 0 {
		props := make(map[string]any, len(n.props))
		for _, name := range n.propertyNames() {
			props[name] = toJSON(n.props[name])
		}
		out["properties"] = props
	}
	if len(n.required) > 0 {
		out["required"] = append([]string(nil), n.required...)
	}

	return out
}
