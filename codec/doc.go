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

// Package codec decodes schema definitions and documents from JSON, YAML
// and TOML.
//
// Codecs are kept in a registry keyed by [Type]. The built-in codecs
// register themselves on import; [ForPath] picks one from a file extension:
//
//	t, err := codec.ForPath("schema.yaml") // codec.TypeYAML
//	m, err := codec.DecodeMap(t, data)
//
// Additional formats can be added with [RegisterEncoder] and
// [RegisterDecoder].
package codec
