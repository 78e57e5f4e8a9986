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

package loader

import (
	"errors"
	"log/slog"
	"os"

	"rivaas.dev/schema"
	"rivaas.dev/schema/codec"
	"rivaas.dev/schema/source"
)

// Option configures a [Loader].
type Option func(l *Loader) error

// WithSource adds a definition source. Later sources override earlier ones.
func WithSource(src Source) Option {
	return func(l *Loader) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		l.sources = append(l.sources, src)

		return nil
	}
}

// WithFile adds a definition file; its format follows the extension.
// Environment variables in path are expanded.
//
// Example:
//
//	s, err := loader.Load(ctx,
//	    loader.WithFile("schema.yaml"),
//	    loader.WithFile("${SCHEMA_DIR}/overrides.json"),
//	)
func WithFile(path string) Option {
	return func(l *Loader) error {
		path = os.ExpandEnv(path)

		format, err := codec.ForPath(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}

		return WithFileAs(path, format)(l)
	}
}

// WithFileAs adds a definition file decoded with the given codec.
func WithFileAs(path string, codecType codec.Type) Option {
	return func(l *Loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}
		src, err := source.NewFile(os.ExpandEnv(path), decoder)
		if err != nil {
			return NewError("file-source", "create", err)
		}
		l.sources = append(l.sources, src)

		return nil
	}
}

// WithContent adds an in-memory definition.
func WithContent(data []byte, codecType codec.Type) Option {
	return func(l *Loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}
		l.sources = append(l.sources, source.NewFileContent(data, decoder))

		return nil
	}
}

// WithConsul adds a definition stored in Consul under key. The key's
// extension selects the format; keys without one are read as JSON.
func WithConsul(key string) Option {
	return func(l *Loader) error {
		format, err := codec.ForPath(key)
		if err != nil {
			format = codec.TypeJSON
		}

		return WithConsulAs(key, format)(l)
	}
}

// WithConsulAs adds a definition stored in Consul decoded with the given codec.
func WithConsulAs(key string, codecType codec.Type) Option {
	return func(l *Loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("consul-source", "get-decoder", err)
		}
		src, err := source.NewConsul(key, decoder, nil)
		if err != nil {
			return NewError("consul-source", "create", err)
		}
		l.sources = append(l.sources, src)

		return nil
	}
}

// WithPlugins applies plugins to the built schema, after the array
// constraint installer.
func WithPlugins(plugins ...schema.Plugin) Option {
	return func(l *Loader) error {
		l.plugins = append(l.plugins, plugins...)
		return nil
	}
}

// WithValidator adds a check run on the merged definition before decoding.
func WithValidator(fn func(map[string]any) error) Option {
	return func(l *Loader) error {
		l.validators = append(l.validators, fn)
		return nil
	}
}

// WithLogger sets the logger. The default discards all records.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		l.logger = logger

		return nil
	}
}
