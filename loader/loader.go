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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"dario.cat/mergo"

	"rivaas.dev/schema"
	"rivaas.dev/schema/arrayitems"
)

// Source provides a decoded definition document.
type Source interface {
	Load(ctx context.Context) (map[string]any, error)
}

// Loader builds schemas from one or more definition sources.
// A Loader may be reused; every Load reads all sources again.
type Loader struct {
	sources    []Source
	plugins    []schema.Plugin
	validators []func(map[string]any) error
	logger     *slog.Logger
}

// New returns a Loader configured by options. All option errors are
// reported together.
func New(options ...Option) (*Loader, error) {
	l := &Loader{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	var errs error
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(l); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}

	return l, nil
}

// Load builds a schema from the given options. It is shorthand for
// New followed by [Loader.Load].
//
// Example:
//
//	s, err := loader.Load(ctx, loader.WithFile("schema.yaml"))
//	if err != nil {
//	    return err
//	}
//	err = s.Validate(ctx, doc)
func Load(ctx context.Context, options ...Option) (*schema.Schema, error) {
	l, err := New(options...)
	if err != nil {
		return nil, err
	}

	return l.Load(ctx)
}

// MustLoad is like [Load] but panics on error.
// Use it in main() or initialization code.
func MustLoad(ctx context.Context, options ...Option) *schema.Schema {
	s, err := Load(ctx, options...)
	if err != nil {
		panic(fmt.Sprintf("loader: failed to load schema: %v", err))
	}

	return s
}

// Load reads every source, merges them in order, checks the result against
// the definition schema and returns the built schema with array
// constraints installed.
//
// Errors:
//   - [*Error] with Operation "load" or "merge" for source failures
//   - [*Error] from "meta-schema" when the definition is malformed
//   - [*Error] from "custom-validator[i]" when a [WithValidator] check fails
//   - [*Error] from "decode" when the definition cannot be decoded
func (l *Loader) Load(ctx context.Context) (*schema.Schema, error) {
	if ctx == nil {
		return nil, errors.New("context cannot be nil")
	}

	values, err := l.merge(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := compiledMetaSchema()
	if err != nil {
		return nil, NewError("meta-schema", "compile", err)
	}
	if err = meta.Validate(values); err != nil {
		return nil, NewError("meta-schema", "validate", err)
	}

	for i, fn := range l.validators {
		if fn == nil {
			continue
		}
		if err = runValidator(fn, values); err != nil {
			return nil, NewError(fmt.Sprintf("custom-validator[%d]", i), "validate", err)
		}
	}

	def, err := decodeDefinition(values)
	if err != nil {
		return nil, NewError("decode", "decode", err)
	}
	s, err := def.build()
	if err != nil {
		return nil, err
	}

	plugins := append([]schema.Plugin{arrayitems.Plugin(arrayitems.WithLogger(l.logger))}, l.plugins...)
	s.Use(plugins...)

	l.logger.InfoContext(ctx, "schema loaded",
		slog.Int("sources", len(l.sources)),
		slog.Int("paths", len(s.Paths)),
	)

	return s, nil
}

// merge loads the sources in order and merges them with later values
// overriding earlier ones.
func (l *Loader) merge(ctx context.Context) (map[string]any, error) {
	merged := make(map[string]any)
	for i, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := sourceName(i, src)
		conf, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(name, "load", err)
		}
		if conf == nil {
			continue
		}

		normalized, _ := normalize(conf).(map[string]any)
		if err = mergo.Map(&merged, normalized, mergo.WithOverride); err != nil {
			return nil, NewError(name, "merge", err)
		}
		l.logger.DebugContext(ctx, "merged schema source",
			slog.String("source", name),
			slog.Int("keys", len(conf)),
		)
	}

	return merged, nil
}

// runValidator calls fn, turning a panic into an error.
func runValidator(fn func(map[string]any) error, values map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validator panic: %v", r)
		}
	}()

	return fn(values)
}

// sourceName labels source i for errors and logs.
func sourceName(i int, src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return fmt.Sprintf("source[%d] %s", i, s)
	}

	return fmt.Sprintf("source[%d]", i)
}
