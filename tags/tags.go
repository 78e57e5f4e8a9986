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

// Package tags exposes the array constraints as go-playground/validator
// struct tags.
//
//	type Order struct {
//	    Tags []string `json:"tags" validate:"max_items=3"`
//	    IDs  []int    `json:"ids" validate:"min_items=2,unique_items"`
//	}
//
//	v, _ := tags.New()
//	err := tags.Struct(v, order) // *schema.Error on failure
//
// The tags use the same predicates and default messages as the arrayitems
// installer.
package tags

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"rivaas.dev/schema"
	"rivaas.dev/schema/arrayitems"
)

// Tag names.
const (
	TagMaxItems    = "max_items"
	TagMinItems    = "min_items"
	TagUniqueItems = "unique_items"
)

// constraints maps each tag to the validator it builds from the tag parameter.
var constraints = map[string]func(param string) schema.Validator{
	TagMaxItems:    func(p string) schema.Validator { return arrayitems.MaxValidator(p) },
	TagMinItems:    func(p string) schema.Validator { return arrayitems.MinValidator(p) },
	TagUniqueItems: func(string) schema.Validator { return arrayitems.UniqueValidator(true) },
}

// Register adds the array tags to v.
func Register(v *validator.Validate) error {
	if v == nil {
		return errors.New("validator cannot be nil")
	}
	for tag, build := range constraints {
		if err := v.RegisterValidation(tag, check(build), true); err != nil {
			return fmt.Errorf("register %s tag: %w", tag, err)
		}
	}

	return nil
}

// New returns a validator with the array tags registered that names
// fields after their json tag.
func New() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	if err := Register(v); err != nil {
		return nil, err
	}

	return v, nil
}

// Struct validates s with v and converts failures into an [*schema.Error].
// Array tags get the installer's codes and messages; other tags get
// "tag.<name>" codes.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	result := &schema.Error{}
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		build, ok := constraints[fe.Tag()]
		if !ok {
			result.Add(path, "tag."+fe.Tag(), fe.Error(), map[string]any{"tag": fe.Tag(), "param": fe.Param()})
			continue
		}

		val := build(fe.Param())
		value, _ := schema.AsArray(fe.Value())
		result.Add(path, schema.CodeFor(val.Name), val.Render(schema.Props{Path: path, Value: value}), map[string]any{
			"validator": val.Name,
			"length":    len(value),
		})
	}
	result.Sort()

	return result
}

// check adapts a constraint to a validator.Func.
func check(build func(param string) schema.Validator) validator.Func {
	return func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if (field.Kind() == reflect.Slice || field.Kind() == reflect.Pointer) && field.IsNil() {
			return build(fl.Param()).Check([]any{})
		}
		value, ok := schema.AsArray(field.Interface())
		if !ok {
			return false
		}

		return build(fl.Param()).Check(value)
	}
}

// jsonName returns the json name of a struct field.
func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	default:
		return name
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}
