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

package problem

// Simple formats errors as {"error": ..., "code": ..., "details": ...}
// ("application/json").
type Simple struct {
	// StatusResolver overrides the status lookup when set.
	StatusResolver func(err error) int
}

// NewSimple returns a Simple formatter.
func NewSimple() *Simple {
	return &Simple{}
}

// Format renders err as a flat JSON object. A non-empty instance is added
// under "instance".
func (f *Simple) Format(instance string, err error) Response {
	body := map[string]any{"error": err.Error()}
	if instance != "" {
		body["instance"] = instance
	}
	if code, ok := codeOf(err); ok {
		body["code"] = code
	}
	if details, ok := detailsOf(err); ok {
		body["details"] = details
	}

	return Response{
		Status:      statusOf(err, f.StatusResolver),
		ContentType: "application/json; charset=utf-8",
		Body:        body,
	}
}
