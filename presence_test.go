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

package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePresence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    PresenceMap
		wantErr bool
	}{
		{"empty input", "", nil, false},
		{"empty object", "{}", PresenceMap{}, false},
		{"flat", `{"tags": [], "name": "x"}`, PresenceMap{"tags": true, "name": true}, false},
		{"nested", `{"meta": {"tags": [1, 2]}}`, PresenceMap{"meta": true, "meta.tags": true}, false},
		{"arrays are leaves", `{"items": [{"id": 1}]}`, PresenceMap{"items": true}, false},
		{"null value is present", `{"tags": null}`, PresenceMap{"tags": true}, false},
		{"invalid json", `{"tags": `, nil, true},
		{"top-level array", `[1, 2]`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pm, err := ComputePresence([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pm)
		})
	}
}

func TestComputePresence_DepthLimit(t *testing.T) {
	t.Parallel()

	depth := maxRecursionDepth + 20
	doc := strings.Repeat(`{"a":`, depth) + "1" + strings.Repeat("}", depth)

	pm, err := ComputePresence([]byte(doc))
	require.NoError(t, err)

	deepest := 0
	for p := range pm {
		if n := strings.Count(p, ".") + 1; n > deepest {
			deepest = n
		}
	}
	assert.Equal(t, maxRecursionDepth+1, deepest)
}

func TestPresenceOf(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"tags": []any{"a"},
		"profile": map[string]any{
			"links": []any{},
			"extra": map[any]any{"ids": []any{1}, 7: "seven"},
		},
	}

	assert.Equal(t, PresenceMap{
		"tags":              true,
		"profile":           true,
		"profile.links":     true,
		"profile.extra":     true,
		"profile.extra.ids": true,
		"profile.extra.7":   true,
	}, PresenceOf(doc))
	assert.Nil(t, PresenceOf(nil))
}

func TestPresenceMap(t *testing.T) {
	t.Parallel()

	pm := PresenceMap{"meta": true, "meta.tags": true, "ids": true}

	assert.True(t, pm.Has("ids"))
	assert.False(t, pm.Has("meta.ids"))
	assert.True(t, pm.HasPrefix("meta"))
	assert.True(t, pm.HasPrefix("meta.tags"))
	assert.False(t, pm.HasPrefix("met"))

	var empty PresenceMap
	assert.False(t, empty.Has("ids"))
	assert.False(t, empty.HasPrefix("ids"))
}

func FuzzComputePresence(f *testing.F) {
	f.Add([]byte(`{"tags": ["a"]}`))
	f.Add([]byte(`{"meta": {"ids": [1, 1]}}`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`not json`))

	f.Fuzz(func(t *testing.T, data []byte) {
		pm, err := ComputePresence(data)
		if err != nil {
			return
		}
		for p := range pm {
			if !pm.Has(p) || !pm.HasPrefix(p) {
				t.Fatalf("path %q recorded but not reported", p)
			}
		}
	})
}
