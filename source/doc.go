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

// Package source loads schema definition documents.
//
// A source returns the decoded definition as a map. Two kinds are provided:
//
//   - [File]: a file on disk or an in-memory byte slice
//   - [Consul]: a key in Consul's key-value store
//
// Example:
//
//	src, err := source.NewFile("schema.yaml", nil) // format from extension
//	def, err := src.Load(ctx)
//
//	kvSrc, err := source.NewConsul("schemas/orders", codec.YAML, nil)
//	def, err = kvSrc.Load(ctx)
package source
