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

// Package loader builds schemas from declarative definition documents.
//
// A definition lists paths with their type and field options:
//
//	paths:
//	  tags:
//	    type: Array
//	    maxItems: 3
//	  ids:
//	    type: Array
//	    minItems: 2
//	    uniqueItems:
//	      value: true
//	      message: "Values of `{PATH}` repeat"
//
// Definitions may come from files (JSON, YAML or TOML), in-memory content
// or Consul. Sources are merged in order, later ones overriding earlier
// ones, and the result is checked against a built-in JSON Schema before it
// is decoded.
//
// # Loading
//
//	s, err := loader.Load(ctx,
//	    loader.WithFile("schema.yaml"),
//	    loader.WithConsul("schemas/orders.yaml"),
//	)
//
// The array constraints of every Array path are installed on the returned
// schema. Additional plugins run afterwards:
//
//	s, err := loader.Load(ctx, loader.WithFile("schema.yaml"), loader.WithPlugins(myPlugin))
//
// # Messages
//
// A constraint record may carry a message template. {PATH}, {LENGTH} and
// {VALUE} are replaced with the field path, the array length and the
// array value.
package loader
