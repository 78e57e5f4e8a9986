// Copyright 2025 The Rivaas Authors
// Copyright 2025 Company.info B.V.
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
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Type identifies a codec.
type Type string

// Encoder converts Go values into encoded bytes.
// Implementations must be safe for concurrent use.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder converts encoded bytes into the value pointed to by v.
// Implementations must be safe for concurrent use.
type Decoder interface {
	Decode(data []byte, v any) error
}

// registry holds the known encoders and decoders.
type registry struct {
	mu       sync.RWMutex
	encoders map[Type]Encoder
	decoders map[Type]Decoder
}

var codecs = &registry{
	encoders: make(map[Type]Encoder),
	decoders: make(map[Type]Decoder),
}

// extensions maps lower-case file extensions to codec types.
var extensions = map[string]Type{
	".json": TypeJSON,
	".yaml": TypeYAML,
	".yml":  TypeYAML,
	".toml": TypeTOML,
}

// RegisterEncoder registers encoder under name, replacing any previous one.
func RegisterEncoder(name Type, encoder Encoder) {
	codecs.mu.Lock()
	defer codecs.mu.Unlock()
	codecs.encoders[name] = encoder
}

// RegisterDecoder registers decoder under name, replacing any previous one.
func RegisterDecoder(name Type, decoder Decoder) {
	codecs.mu.Lock()
	defer codecs.mu.Unlock()
	codecs.decoders[name] = decoder
}

// GetEncoder returns the encoder registered under name.
func GetEncoder(name Type) (Encoder, error) {
	codecs.mu.RLock()
	defer codecs.mu.RUnlock()

	encoder, exists := codecs.encoders[name]
	if !exists {
		return nil, fmt.Errorf("encoder not found for type: %s", name)
	}

	return encoder, nil
}

// GetDecoder returns the decoder registered under name.
func GetDecoder(name Type) (Decoder, error) {
	codecs.mu.RLock()
	defer codecs.mu.RUnlock()

	decoder, exists := codecs.decoders[name]
	if !exists {
		return nil, fmt.Errorf("decoder not found for type: %s", name)
	}

	return decoder, nil
}

// ForPath returns the codec type for a file name based on its extension.
//
// Example:
//
//	t, err := codec.ForPath("/etc/app/schema.yml") // codec.TypeYAML
func ForPath(path string) (Type, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensions[ext]; ok {
		return t, nil
	}

	return "", fmt.Errorf("cannot detect format of %q: unsupported extension %q", path, ext)
}

// DecodeMap decodes data with the decoder registered under t into a map.
// Empty input yields an empty map.
func DecodeMap(t Type, data []byte) (map[string]any, error) {
	decoder, err := GetDecoder(t)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)
	if len(strings.TrimSpace(string(data))) == 0 {
		return out, nil
	}
	if err = decoder.Decode(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", t, err)
	}
	if out == nil {
		out = make(map[string]any)
	}

	return out, nil
}
