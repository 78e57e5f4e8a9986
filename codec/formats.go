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

package codec

import (
	"encoding/json"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Built-in codec types.
const (
	TypeJSON Type = "json"
	TypeYAML Type = "yaml"
	TypeTOML Type = "toml"
)

// Format pairs a marshal and an unmarshal function into a codec.
type Format struct {
	Marshal   func(v any) ([]byte, error)
	Unmarshal func(data []byte, v any) error
}

// Encode implements [Encoder].
func (f Format) Encode(v any) ([]byte, error) {
	return f.Marshal(v)
}

// Decode implements [Decoder].
func (f Format) Decode(data []byte, v any) error {
	return f.Unmarshal(data, v)
}

// Built-in formats.
var (
	JSON = Format{Marshal: json.Marshal, Unmarshal: json.Unmarshal}
	YAML = Format{Marshal: yaml.Marshal, Unmarshal: func(data []byte, v any) error { return yaml.Unmarshal(data, v) }}
	TOML = Format{Marshal: toml.Marshal, Unmarshal: toml.Unmarshal}
)

func init() {
	for t, f := range map[Type]Format{TypeJSON: JSON, TypeYAML: YAML, TypeTOML: TOML} {
		RegisterEncoder(t, f)
		RegisterDecoder(t, f)
	}
}
