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
	"sort"
)

// Kind is the type tag of a schema field.
type Kind string

const (
	// KindArray marks a field holding an ordered list of values.
	KindArray   Kind = "Array"
	KindString  Kind = "String"
	KindNumber  Kind = "Number"
	KindBoolean Kind = "Boolean"
	KindObject  Kind = "Object"
	KindMixed   Kind = "Mixed"
)

// Options is the free-form option record declared for a field.
// Constraint plugins read their settings from it (e.g. "maxItems").
type Options map[string]any

// Get returns the option stored under name and whether it was set.
func (o Options) Get(name string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o[name]

	return v, ok
}

// Field is the metadata the schema keeps for a single path.
//
// Validators is an ordered list; plugins append to it and the engine invokes
// the entries in insertion order.
type Field struct {
	Path       string
	Instance   Kind
	Options    Options
	Validators []Validator
}

// AddValidator appends v to the field's validator list.
func (f *Field) AddValidator(v Validator) {
	f.Validators = append(f.Validators, v)
}

// IsArray reports whether the field is declared as [KindArray].
func (f *Field) IsArray() bool {
	return f != nil && f.Instance == KindArray
}

// Plugin decorates a schema in place. Plugins run once at setup time.
type Plugin func(*Schema)

// Schema maps field paths to their metadata.
//
// A Schema is configured once (fields added, plugins applied) and then used
// read-only by [Schema.Validate]. Configuration is not safe for concurrent use;
// validation is.
type Schema struct {
	Paths map[string]*Field
}

// New creates an empty [Schema].
func New() *Schema {
	return &Schema{Paths: make(map[string]*Field)}
}

// Add declares a field and returns it. Declaring an existing path replaces
// its kind and options but keeps the validators already attached.
func (s *Schema) Add(path string, kind Kind, opts Options) *Field {
	if s.Paths == nil {
		s.Paths = make(map[string]*Field)
	}
	if f, ok := s.Paths[path]; ok {
		f.Instance = kind
		f.Options = opts

		return f
	}
	f := &Field{Path: path, Instance: kind, Options: opts}
	s.Paths[path] = f

	return f
}

// Field returns the metadata for path, or nil if it is not declared.
func (s *Schema) Field(path string) *Field {
	if s == nil {
		return nil
	}

	return s.Paths[path]
}

// SortedPaths returns the declared paths in lexical order.
func (s *Schema) SortedPaths() []string {
	if s == nil {
		return nil
	}
	paths := make([]string, 0, len(s.Paths))
	for p := range s.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths
}

// Use applies plugins in order and returns the schema for chaining.
func (s *Schema) Use(plugins ...Plugin) *Schema {
	for _, p := range plugins {
		if p != nil {
			p(s)
		}
	}

	return s
}
