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

import (
	"math"
	"sort"
	"strings"

	"rivaas.dev/schema"
	"rivaas.dev/schema/arrayitems"
)

// node is a dialect-neutral schema node.
type node struct {
	kind     schema.Kind
	props    map[string]*node
	required []string
	maxItems *int
	minItems *int
	unique   bool
	never    bool // no value is accepted
}

// child returns the property node for name, creating an object node.
func (n *node) child(name string) *node {
	if n.props == nil {
		n.props = make(map[string]*node)
	}
	c, ok := n.props[name]
	if !ok {
		c = &node{kind: schema.KindObject}
		n.props[name] = c
	}

	return c
}

// propertyNames returns the property names in order.
func (n *node) propertyNames() []string {
	names := make([]string, 0, len(n.props))
	for name := range n.props {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// buildTree converts s into a node tree rooted at an object.
func buildTree(s *schema.Schema) *node {
	root := &node{kind: schema.KindObject}
	for _, path := range s.SortedPaths() {
		f := s.Field(path)

		parent := root
		parts := strings.Split(path, ".")
		for _, part := range parts[:len(parts)-1] {
			parent = parent.child(part)
		}
		leaf := parent.child(parts[len(parts)-1])
		leaf.kind = f.Instance

		if f.IsArray() && applyArrayOptions(leaf, f.Options) {
			parent.required = append(parent.required, parts[len(parts)-1])
		}
	}

	return root
}

// applyArrayOptions sets the array keywords on n. It reports whether the
// path must be present, which is the case when an empty list fails.
func applyArrayOptions(n *node, opts schema.Options) (required bool) {
	if spec, ok := opts.Get(arrayitems.MaxItems); ok && arrayitems.Present(arrayitems.MaxItems, spec) {
		b := arrayitems.Bound(spec)
		if math.IsNaN(b) || b < 0 {
			n.never = true
		} else if b < float64(math.MaxInt) {
			m := int(math.Floor(b))
			n.maxItems = &m
		}
	}

	if spec, ok := opts.Get(arrayitems.MinItems); ok && arrayitems.Present(arrayitems.MinItems, spec) {
		b := arrayitems.Bound(spec)
		switch {
		case math.IsNaN(b) || b >= float64(math.MaxInt):
			n.never = true
		case b > 0:
			m := int(math.Ceil(b))
			n.minItems = &m
			required = true
		}
	}

	if spec, ok := opts.Get(arrayitems.UniqueItems); ok && arrayitems.Present(arrayitems.UniqueItems, spec) {
		n.unique = true
	}

	return required || n.never
}
