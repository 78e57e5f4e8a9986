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
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Props is the context handed to a [MessageFunc] when a validator fails.
type Props struct {
	Path  string // Field path as declared in the schema
	Value []any  // The array value that failed validation
}

// MessageFunc renders the error message for a failed validator.
type MessageFunc func(Props) string

// Predicate reports whether an array value is valid.
// Predicates must not mutate the slice they receive.
type Predicate func(value []any) bool

// Validator pairs a predicate with the message rendered when it fails.
//
// Validators are built once when a schema is configured and invoked for
// every validation afterwards; they must be safe for concurrent use.
type Validator struct {
	Name     string // Constraint name, e.g. "maxItems"
	Validate Predicate
	Message  MessageFunc
}

// Check runs the predicate. A validator without a predicate always passes.
func (v Validator) Check(value []any) bool {
	if v.Validate == nil {
		return true
	}

	return v.Validate(value)
}

// Render produces the failure message for the given context.
func (v Validator) Render(p Props) string {
	if v.Message == nil {
		return fmt.Sprintf("Validator %q failed for path `%s`.", v.Name, p.Path)
	}

	return v.Message(p)
}

// MessageTemplate builds a [MessageFunc] from a template string.
//
// Supported placeholders:
//   - {PATH}: the field path
//   - {LENGTH}: number of elements in the value
//   - {VALUE}: the value rendered with fmt
func MessageTemplate(tmpl string) MessageFunc {
	return func(p Props) string {
		r := strings.NewReplacer(
			"{PATH}", p.Path,
			"{LENGTH}", strconv.Itoa(len(p.Value)),
			"{VALUE}", fmt.Sprint(p.Value),
		)

		return r.Replace(tmpl)
	}
}

// AsArray converts any slice or array into []any.
// It returns false when v is not a list.
func AsArray(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if arr, ok := v.([]any); ok {
		return arr, true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

// Equal is the element equality used for uniqueness checks.
//
// Numbers compare by value across Go numeric types (int 1 equals float64 1)
// without losing precision between integers, everything else compares
// structurally with reflect.DeepEqual. NaN is never equal to anything,
// including itself.
func Equal(a, b any) bool {
	na, aok := numeric(a)
	nb, bok := numeric(b)
	if aok || bok {
		return aok && bok && na.equal(nb)
	}

	return reflect.DeepEqual(a, b)
}

type numKind uint8

const (
	numSigned numKind = iota
	numUnsigned
	numFloat
)

// number holds a Go numeric value in its widest form.
type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

// numeric unpacks v if it holds a Go numeric kind.
func numeric(v any) (number, bool) {
	if v == nil {
		return number{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: numSigned, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: numUnsigned, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{kind: numFloat, f: rv.Float()}, true
	default:
		return number{}, false
	}
}

func (n number) equal(o number) bool {
	if n.kind > o.kind {
		n, o = o, n
	}

	switch {
	case n.kind == numSigned && o.kind == numSigned:
		return n.i == o.i
	case n.kind == numUnsigned && o.kind == numUnsigned:
		return n.u == o.u
	case n.kind == numSigned && o.kind == numUnsigned:
		return n.i >= 0 && uint64(n.i) == o.u
	case n.kind == numFloat:
		return n.f == o.f
	}

	// o is a float; it matches an integer only when it is integral and in range.
	f := o.f
	if math.Trunc(f) != f {
		return false
	}
	if n.kind == numSigned {
		return f >= math.MinInt64 && f < math.MaxInt64 && int64(f) == n.i
	}

	return f >= 0 && f < math.MaxUint64 && uint64(f) == n.u
}
