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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// counterTotals sums every Int64 sum data point by metric name.
func counterTotals(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))

	totals := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}

	return totals
}

func TestTelemetry(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	s := New()
	s.Add("ids", KindArray, nil).AddValidator(Validator{
		Name:     "minItems",
		Validate: func(v []any) bool { return len(v) >= 1 },
	})
	s.Add("tags", KindArray, nil).AddValidator(Validator{
		Name:     "maxItems",
		Validate: func(v []any) bool { return len(v) <= 1 },
	})

	opts := []Option{WithTracerProvider(tp), WithMeterProvider(mp), WithRunAll(true)}

	require.Error(t, s.Validate(t.Context(), map[string]any{}, opts...))
	require.NoError(t, s.Validate(t.Context(), map[string]any{"ids": []any{1}}, opts...))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "schema.Validate", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("schema.fields", 2))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("schema.errors", 1))
	assert.Equal(t, codes.Ok, spans[1].Status().Code)

	totals := counterTotals(t, reader)
	assert.Equal(t, int64(2), totals["schema.validations"])
	assert.Equal(t, int64(1), totals["schema.validation.failures"])
}
