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
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName identifies this package to OpenTelemetry.
const instrumentationName = "rivaas.dev/schema"

// Metric names.
const (
	metricValidations = "schema.validations"
	metricFailures    = "schema.validation.failures"
)

// telemetry bundles the span and counters of one Validate call.
type telemetry struct {
	tracer      trace.Tracer
	validations metric.Int64Counter
	failures    metric.Int64Counter
}

// newTelemetry resolves providers from cfg, falling back to the globals.
// Instrument creation errors leave a nil counter, which is skipped.
func newTelemetry(cfg *config) *telemetry {
	tp := cfg.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := cfg.meterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	meter := mp.Meter(instrumentationName)
	t := &telemetry{tracer: tp.Tracer(instrumentationName)}

	var err error
	t.validations, err = meter.Int64Counter(metricValidations,
		metric.WithDescription("Documents validated against a schema"),
		metric.WithUnit("{document}"),
	)
	if err != nil {
		t.validations = nil
	}
	t.failures, err = meter.Int64Counter(metricFailures,
		metric.WithDescription("Failed field validators"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		t.failures = nil
	}

	return t
}

// start opens the validation span.
func (t *telemetry) start(ctx context.Context, fields int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "schema.Validate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int("schema.fields", fields)),
	)
}

// recordFailure counts one failed validator.
func (t *telemetry) recordFailure(ctx context.Context, fe FieldError) {
	if t.failures == nil {
		return
	}
	t.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("schema.path", fe.Path),
		attribute.String("schema.code", fe.Code),
	))
}

// finish records the outcome on the span and the validations counter.
func (t *telemetry) finish(ctx context.Context, span trace.Span, result *Error) {
	outcome := "valid"
	if result != nil && result.HasErrors() {
		outcome = "invalid"
		span.SetAttributes(attribute.Int("schema.errors", len(result.Fields)))
		span.SetStatus(codes.Error, "schema validation failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	if t.validations != nil {
		t.validations.Add(ctx, 1, metric.WithAttributes(attribute.String("schema.outcome", outcome)))
	}
	span.End()
}
