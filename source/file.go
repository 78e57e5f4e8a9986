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

package source

import (
	"context"
	"fmt"
	"os"

	"rivaas.dev/schema/codec"
)

// File loads a definition from a file path or from bytes held in memory.
type File struct {
	path    string
	data    []byte
	decoder codec.Decoder
}

// NewFile returns a File that reads path on every Load.
// A nil decoder is chosen from the file extension.
//
// Errors:
//   - the decoder is nil and the extension is not a known format
func NewFile(path string, decoder codec.Decoder) (*File, error) {
	if decoder == nil {
		t, err := codec.ForPath(path)
		if err != nil {
			return nil, err
		}
		if decoder, err = codec.GetDecoder(t); err != nil {
			return nil, err
		}
	}

	return &File{path: path, decoder: decoder}, nil
}

// NewFileContent returns a File that decodes data. The slice is not copied.
func NewFileContent(data []byte, decoder codec.Decoder) *File {
	return &File{data: data, decoder: decoder}
}

// String names the source in errors and logs.
func (f *File) String() string {
	if f.path != "" {
		return "file:" + f.path
	}

	return "content"
}

// Load reads and decodes the definition. Empty input yields an empty map.
func (f *File) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := f.data
	if f.path != "" {
		var err error
		if data, err = os.ReadFile(f.path); err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}
	if f.decoder == nil {
		return nil, fmt.Errorf("no decoder for %s", f)
	}

	def := make(map[string]any)
	if len(data) == 0 {
		return def, nil
	}
	if err := f.decoder.Decode(data, &def); err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}
	if def == nil {
		def = make(map[string]any)
	}

	return def, nil
}
