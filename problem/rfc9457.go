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

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// RFC9457 formats errors as RFC 9457 Problem Details
// ("application/problem+json").
type RFC9457 struct {
	// BaseURL prefixes the error code to form the problem type URI.
	BaseURL string

	// StatusResolver overrides the status lookup when set.
	StatusResolver func(err error) int

	// ErrorIDGenerator returns the "error_id" extension. Defaults to a UUID.
	ErrorIDGenerator func() string

	// DisableErrorID omits the "error_id" extension.
	DisableErrorID bool
}

// NewRFC9457 returns an RFC 9457 formatter using baseURL for problem types.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{BaseURL: baseURL}
}

// Detail is an RFC 9457 problem detail. Extensions are written inline.
type Detail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"`
}

// reserved names cannot be overwritten by extensions.
var reserved = map[string]bool{"type": true, "title": true, "status": true, "detail": true, "instance": true}

// MarshalJSON writes the standard members followed by the extensions.
func (p Detail) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   p.Type,
		"title":  p.Title,
		"status": p.Status,
	}
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	for k, v := range p.Extensions {
		if !reserved[k] {
			m[k] = v
		}
	}

	return json.Marshal(m)
}

// Format renders err as a [Detail].
func (f *RFC9457) Format(instance string, err error) Response {
	status := statusOf(err, f.StatusResolver)

	p := Detail{
		Type:       "about:blank",
		Title:      http.StatusText(status),
		Status:     status,
		Detail:     err.Error(),
		Instance:   instance,
		Extensions: make(map[string]any),
	}

	if code, ok := codeOf(err); ok {
		p.Type = code
		if f.BaseURL != "" {
			p.Type = f.BaseURL + "/" + code
		}
		p.Extensions["code"] = code
	}
	if details, ok := detailsOf(err); ok {
		p.Extensions["errors"] = details
	}
	if !f.DisableErrorID {
		gen := f.ErrorIDGenerator
		if gen == nil {
			gen = uuid.NewString
		}
		p.Extensions["error_id"] = gen()
	}

	return Response{
		Status:      status,
		ContentType: "application/problem+json; charset=utf-8",
		Body:        p,
	}
}
