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
	"fmt"
	"strings"
)

// Lookup resolves a dot path (e.g. "profile.tags") inside a document.
//
// A key that literally contains the full path wins over the nested walk, so
// flat documents such as {"profile.tags": [...]} resolve as well.
// Lookup returns (nil, false) if any segment is missing or not an object.
func Lookup(doc map[string]any, path string) (any, bool) {
	if doc == nil {
		return nil, false
	}
	if v, ok := doc[path]; ok {
		return v, true
	}

	parts := strings.Split(path, ".")
	if len(parts) > maxRecursionDepth {
		return nil, false
	}

	var current any = doc
	for _, part := range parts {
		m, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// asObject returns v as a string-keyed map. YAML decoders may produce
// map[any]any for nested mappings; their keys are formatted with fmt.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
