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
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"rivaas.dev/schema"
	"rivaas.dev/schema/arrayitems"
)

//go:embed definition.schema.json
var definitionSchema []byte

const definitionSchemaURL = "https://rivaas.dev/schema/definition.schema.json"

var (
	metaOnce   sync.Once
	metaSchema *jsonschema.Schema
	errMeta    error
)

// compiledMetaSchema compiles the embedded definition schema once.
func compiledMetaSchema() (*jsonschema.Schema, error) {
	metaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(definitionSchema))
		if err != nil {
			errMeta = fmt.Errorf("parse definition schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err = compiler.AddResource(definitionSchemaURL, doc); err != nil {
			errMeta = fmt.Errorf("add definition schema: %w", err)
			return
		}
		metaSchema, errMeta = compiler.Compile(definitionSchemaURL)
	})

	return metaSchema, errMeta
}

// definition is the decoded form of a schema document.
type definition struct {
	Paths map[string]fieldDefinition `mapstructure:"paths"`
}

// fieldDefinition is one entry under "paths". Everything but "type" is
// kept as a field option.
type fieldDefinition struct {
	Type    string         `mapstructure:"type"`
	Options map[string]any `mapstructure:",remain"`
}

// kinds resolves a case-insensitive type name.
var kinds = map[string]schema.Kind{
	"array":   schema.KindArray,
	"string":  schema.KindString,
	"number":  schema.KindNumber,
	"boolean": schema.KindBoolean,
	"object":  schema.KindObject,
	"mixed":   schema.KindMixed,
}

// decodeDefinition decodes the merged document.
func decodeDefinition(values map[string]any) (*definition, error) {
	var def definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		Result:           &def,
	})
	if err != nil {
		return nil, err
	}
	if err = decoder.Decode(values); err != nil {
		return nil, err
	}

	return &def, nil
}

// build turns a decoded definition into a schema.
func (d *definition) build() (*schema.Schema, error) {
	s := schema.New()
	for path, fd := range d.Paths {
		kind, ok := kinds[strings.ToLower(fd.Type)]
		if !ok {
			return nil, NewFieldError("decode", path, "kind", fmt.Errorf("unknown type %q", fd.Type))
		}
		s.Add(path, kind, fieldOptions(fd.Options))
	}

	return s, nil
}

// constraintNames lists the options whose records become constraints.
var constraintNames = map[string]bool{
	arrayitems.MaxItems:    true,
	arrayitems.MinItems:    true,
	arrayitems.UniqueItems: true,
}

// fieldOptions turns constraint records into [arrayitems.Constraint] values.
// A string message becomes a template with {PATH}, {LENGTH} and {VALUE}.
// An explicit null value becomes 0; a missing value stays nil.
func fieldOptions(in map[string]any) schema.Options {
	if len(in) == 0 {
		return nil
	}

	opts := make(schema.Options, len(in))
	for name, v := range in {
		rec, ok := v.(map[string]any)
		if !ok || !constraintNames[name] {
			opts[name] = v
			continue
		}
		value, has := rec["value"]
		if has && value == nil {
			value = 0
		}
		c := arrayitems.Constraint{Value: value}
		if msg, ok := rec["message"].(string); ok && msg != "" {
			c.Message = schema.MessageTemplate(msg)
		}
		opts[name] = c
	}

	return opts
}

// normalize rewrites decoder-specific container types into the
// map[string]any and []any shapes the meta schema expects.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}
