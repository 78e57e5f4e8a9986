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
	"encoding/json"
	"fmt"
	"strings"
)

// maxRecursionDepth bounds how deep nested documents are walked.
const maxRecursionDepth = 100

// PresenceMap records which dot paths a request body actually contained.
// Partial validation (PATCH) checks only the array paths found here, so a
// missing list is not reported as "less than minimum allowed length".
type PresenceMap map[string]bool

// Has reports whether the exact path is present.
func (pm PresenceMap) Has(path string) bool {
	return pm != nil && pm[path]
}

// HasPrefix reports whether path or any path below it is present.
func (pm PresenceMap) HasPrefix(prefix string) bool {
	if pm == nil {
		return false
	}
	if pm[prefix] {
		return true
	}
	withDot := prefix + "."
	for p := range pm {
		if strings.HasPrefix(p, withDot) {
			return true
		}
	}

	return false
}

// ComputePresence parses raw JSON and marks every object key it contains.
//
// Example:
//
//	pm, _ := schema.ComputePresence([]byte(`{"meta": {"tags": []}}`))
//	// pm == {"meta": true, "meta.tags": true}
//
// Arrays are leaves: element positions are not recorded.
func ComputePresence(rawJSON []byte) (PresenceMap, error) {
	if len(rawJSON) == 0 {
		return nil, nil
	}

	var data map[string]any
	if err := json.Unmarshal(rawJSON, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON for presence tracking: %w", err)
	}

	return PresenceOf(data), nil
}

// PresenceOf marks every object key of an already decoded document, such
// as one read from YAML or TOML. Nested maps of any key type are walked;
// nesting deeper than maxRecursionDepth is not recorded.
func PresenceOf(doc map[string]any) PresenceMap {
	if doc == nil {
		return nil
	}

	pm := make(PresenceMap, len(doc))
	type frame struct {
		prefix string
		node   map[string]any
		depth  int
	}
	stack := []frame{{node: doc}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for key, value := range f.node {
			path := key
			if f.prefix != "" {
				path = f.prefix + "." + key
			}
			pm[path] = true

			if f.depth >= maxRecursionDepth {
				continue
			}
			if nested, ok := asObject(value); ok {
				stack = append(stack, frame{prefix: path, node: nested, depth: f.depth + 1})
			}
		}
	}

	return pm
}
