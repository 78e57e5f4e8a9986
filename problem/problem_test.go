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

//go:build !integration

package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/schema"
)

// tooLong is a one-field validation failure.
func tooLong() error {
	verr := &schema.Error{}
	verr.Add("tags", "array.maxItems", "Array length of `tags` (4) is more than maximum allowed length (3).", nil)

	return verr
}

func TestRFC9457_ValidationError(t *testing.T) {
	t.Parallel()

	f := NewRFC9457("https://rivaas.dev/problems")
	f.ErrorIDGenerator = func() string { return "id-1" }

	resp := f.Format("/orders", fmt.Errorf("checking order: %w", tooLong()))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.Equal(t, "application/problem+json; charset=utf-8", resp.ContentType)

	raw, err := json.Marshal(resp.Body)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "https://rivaas.dev/problems/validation_error", got["type"])
	assert.Equal(t, "Unprocessable Entity", got["title"])
	assert.InDelta(t, 422, got["status"], 0)
	assert.Equal(t, "/orders", got["instance"])
	assert.Equal(t, "validation_error", got["code"])
	assert.Equal(t, "id-1", got["error_id"])
	assert.Contains(t, got["detail"], "checking order")

	fields, ok := got["errors"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "array.maxItems", fields[0].(map[string]any)["code"])
}

func TestRFC9457_PlainError(t *testing.T) {
	t.Parallel()

	f := NewRFC9457("")
	resp := f.Format("", errors.New("boom"))

	p, ok := resp.Body.(Detail)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "about:blank", p.Type)
	assert.NotContains(t, p.Extensions, "code")
	assert.NotContains(t, p.Extensions, "errors")

	_, err := uuid.Parse(p.Extensions["error_id"].(string))
	assert.NoError(t, err, "default error ids are UUIDs")
}

func TestRFC9457_Options(t *testing.T) {
	t.Parallel()

	f := &RFC9457{
		DisableErrorID: true,
		StatusResolver: func(error) int { return http.StatusBadRequest },
	}
	resp := f.Format("doc.json", tooLong())

	p := resp.Body.(Detail)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "validation_error", p.Type, "without a base URL the code is the type")
	assert.NotContains(t, p.Extensions, "error_id")
}

func TestDetail_MarshalJSON_ProtectsReserved(t *testing.T) {
	t.Parallel()

	p := Detail{
		Type:       "about:blank",
		Title:      "Bad Request",
		Status:     400,
		Extensions: map[string]any{"status": 999, "title": "x", "trace": "t-1"},
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"about:blank","title":"Bad Request","status":400,"trace":"t-1"}`, string(raw))
}

func TestSimple(t *testing.T) {
	t.Parallel()

	resp := NewSimple().Format("doc.json", tooLong())

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.Equal(t, "application/json; charset=utf-8", resp.ContentType)

	body := resp.Body.(map[string]any)
	assert.Equal(t, "doc.json", body["instance"])
	assert.Equal(t, "validation_error", body["code"])
	assert.Len(t, body["details"], 1)

	plain := NewSimple().Format("", errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
	assert.Equal(t, map[string]any{"error": "boom"}, plain.Body)
}

func TestFormatter_Interface(t *testing.T) {
	t.Parallel()

	for _, f := range []Formatter{NewRFC9457(""), NewSimple()} {
		resp := f.Format("x", tooLong())
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	}
}
