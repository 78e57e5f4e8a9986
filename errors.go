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

package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is the sentinel every document validation failure unwraps to.
// Use errors.Is(err, ErrValidation) to tell validation failures from setup errors.
var ErrValidation = errors.New("validation")

var (
	// ErrNilSchema is returned when Validate is called on a nil schema.
	ErrNilSchema = errors.New("schema is nil")

	// ErrNilDocument is returned when the document to validate is nil.
	ErrNilDocument = errors.New("document is nil")
)

// Stable error codes produced by the engine.
const (
	// CodeArrayType is reported when an Array path holds something that is not a list.
	CodeArrayType = "array.type"

	// codePrefix is prepended to a validator name to form its code.
	codePrefix = "array."
)

// CodeFor returns the stable code for a validator name ("maxItems" -> "array.maxItems").
func CodeFor(name string) string {
	return codePrefix + name
}

// FieldError describes one failed validator on one path.
//
// Example:
//
//	FieldError{
//	    Path:    "tags",
//	    Code:    "array.maxItems",
//	    Message: "Array length of `tags` (4) is more than maximum allowed length (3).",
//	    Meta:    map[string]any{"validator": "maxItems", "length": 4},
//	}
type FieldError struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error returns the message only; the path is already part of the
// validator messages this package renders.
func (e FieldError) Error() string {
	return e.Message
}

// Unwrap returns [ErrValidation].
func (e FieldError) Unwrap() error {
	return ErrValidation
}

// HTTPStatus implements [rivaas.dev/schema/problem.ErrorType].
func (e FieldError) HTTPStatus() int {
	return 422
}

// Error collects the field errors of one validation pass.
//
// Example:
//
//	var verr *schema.Error
//	if errors.As(err, &verr) {
//	    for _, fe := range verr.Fields {
//	        fmt.Println(fe.Path, fe.Message)
//	    }
//	}
//
//nolint:recvcheck // value receivers for the error interface, pointer receivers for mutation
type Error struct {
	Fields    []FieldError `json:"errors"`
	Truncated bool         `json:"truncated,omitempty"`
}

// Error joins the field messages.
func (v Error) Error() string {
	switch len(v.Fields) {
	case 0:
		return ""
	case 1:
		return v.Fields[0].Error()
	}

	msgs := make([]string, 0, len(v.Fields))
	for _, fe := range v.Fields {
		msgs = append(msgs, fe.Error())
	}

	out := "schema validation failed: " + strings.Join(msgs, "; ")
	if v.Truncated {
		out += " (truncated)"
	}

	return out
}

// Unwrap returns [ErrValidation].
func (v Error) Unwrap() error {
	return ErrValidation
}

// HTTPStatus implements [rivaas.dev/schema/problem.ErrorType].
func (v Error) HTTPStatus() int {
	return 422
}

// Details implements [rivaas.dev/schema/problem.ErrorDetails].
func (v Error) Details() any {
	return v.Fields
}

// Code implements [rivaas.dev/schema/problem.ErrorCode].
func (v Error) Code() string {
	return "validation_error"
}

// Add appends a field error.
func (v *Error) Add(path, code, message string, meta map[string]any) {
	v.Fields = append(v.Fields, FieldError{
		Path:    path,
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// AddError merges err into the collection. [FieldError] and [Error] values
// keep their structure; any other error becomes a path-less entry.
func (v *Error) AddError(err error) {
	if err == nil {
		return
	}

	var fe FieldError
	if errors.As(err, &fe) {
		v.Fields = append(v.Fields, fe)
		return
	}

	var agg *Error
	if errors.As(err, &agg) {
		v.Fields = append(v.Fields, agg.Fields...)
		v.Truncated = v.Truncated || agg.Truncated

		return
	}

	var val Error
	if errors.As(err, &val) {
		v.Fields = append(v.Fields, val.Fields...)
		v.Truncated = v.Truncated || val.Truncated

		return
	}

	v.Fields = append(v.Fields, FieldError{
		Code:    "validation_error",
		Message: err.Error(),
	})
}

// HasErrors reports whether any field error was recorded.
func (v Error) HasErrors() bool {
	return len(v.Fields) > 0
}

// HasCode reports whether any field error carries code.
func (v Error) HasCode(code string) bool {
	for _, fe := range v.Fields {
		if fe.Code == code {
			return true
		}
	}

	return false
}

// Has reports whether path has at least one error.
func (v Error) Has(path string) bool {
	return v.GetField(path) != nil
}

// GetField returns the first error recorded for path, or nil.
func (v Error) GetField(path string) *FieldError {
	for i := range v.Fields {
		if v.Fields[i].Path == path {
			fe := v.Fields[i]
			return &fe
		}
	}

	return nil
}

// Sort orders errors by path. Errors on the same path keep their
// relative order, which is the validator insertion order.
func (v *Error) Sort() {
	sort.SliceStable(v.Fields, func(i, j int) bool {
		return v.Fields[i].Path < v.Fields[j].Path
	})
}

// newFieldError builds the error for a failed validator.
func newFieldError(path string, val Validator, value []any) FieldError {
	return FieldError{
		Path:    path,
		Code:    CodeFor(val.Name),
		Message: val.Render(Props{Path: path, Value: value}),
		Meta: map[string]any{
			"validator": val.Name,
			"length":    len(value),
		},
	}
}

// typeError builds the error for an Array path holding a non-list value.
func typeError(path string, got any) FieldError {
	return FieldError{
		Path:    path,
		Code:    CodeArrayType,
		Message: fmt.Sprintf("Value of `%s` must be an array, got %T.", path, got),
		Meta:    map[string]any{"type": fmt.Sprintf("%T", got)},
	}
}
