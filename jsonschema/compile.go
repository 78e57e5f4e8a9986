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

package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsv "github.com/santhosh-tekuri/jsonschema/v6"

	"rivaas.dev/schema"
)

// resourceURL names the exported document inside the compiler.
const resourceURL = "schema.json"

// Compiled is an exported schema ready to validate documents.
// It is safe for concurrent use.
type Compiled struct {
	schema *jsv.Schema
}

// Compile exports s and compiles the result.
func Compile(s *schema.Schema) (*Compiled, error) {
	raw, err := json.Marshal(Export(s))
	if err != nil {
		return nil, fmt.Errorf("marshal exported schema: %w", err)
	}
	doc, err := jsv.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse exported schema: %w", err)
	}

	compiler := jsv.NewCompiler()
	if err = compiler.AddResource(resourceURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Compiled{schema: compiled}, nil
}

// Validate checks doc and returns nil, an [*schema.Error] listing the
// failed keywords, or a plain error when doc cannot be encoded as JSON.
// Codes are "schema." followed by the failed keyword, e.g. "schema.maxItems".
func (c *Compiled) Validate(doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	data, err := jsv.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	err = c.schema.Validate(data)
	if err == nil {
		return nil
	}

	var verr *jsv.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	result := &schema.Error{}
	collect(verr, result)
	result.Sort()

	return result
}

// collect flattens the leaves of the validation error tree into result.
func collect(verr *jsv.ValidationError, result *schema.Error) {
	if len(verr.Causes) == 0 {
		keyword := "invalid"
		if verr.ErrorKind != nil {
			if kw := verr.ErrorKind.KeywordPath(); len(kw) > 0 {
				keyword = kw[len(kw)-1]
			}
		}
		result.Add(strings.Join(verr.InstanceLocation, "."), "schema."+keyword, verr.Error(), map[string]any{
			"keyword":    keyword,
			"schema_url": verr.SchemaURL,
		})

		return
	}

	for _, cause := range verr.Causes {
		collect(cause, result)
	}
}
