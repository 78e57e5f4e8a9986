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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"rivaas.dev/schema"
)

// Telemetry providers.
const (
	providerNone       = "none"
	providerStdout     = "stdout"
	providerOTLP       = "otlp"
	providerPrometheus = "prometheus"
)

type telemetryOptions struct {
	traces       string
	metrics      string
	otlpEndpoint string
	metricsFile  string
}

func (o *telemetryOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.traces, "traces", providerNone, "trace exporter: none, stdout or otlp")
	cmd.Flags().StringVar(&o.metrics, "metrics", providerNone, "metrics exporter: none, stdout, otlp or prometheus")
	cmd.Flags().StringVar(&o.otlpEndpoint, "otlp-endpoint", "", "OTLP HTTP endpoint, e.g. http://localhost:4318")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "Prometheus textfile written when --metrics=prometheus")
}

// telemetry holds the providers of one run. Shutdown flushes every exporter.
type telemetry struct {
	options  []schema.Option
	shutdown []func(context.Context) error
}

// Shutdown flushes and stops all providers.
func (t *telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range t.shutdown {
		errs = append(errs, fn(ctx))
	}

	return errors.Join(errs...)
}

// setupTelemetry builds the providers selected by o. Console exporters
// write to w.
func setupTelemetry(ctx context.Context, o *telemetryOptions, w io.Writer) (*telemetry, error) {
	t := &telemetry{}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("schemacheck"),
		semconv.ServiceVersion(version),
	)

	if err := t.setupTraces(ctx, o, w, res); err != nil {
		return nil, err
	}
	if err := t.setupMetrics(ctx, o, w, res); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}

	return t, nil
}

func (t *telemetry) setupTraces(ctx context.Context, o *telemetryOptions, w io.Writer, res *resource.Resource) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch o.traces {
	case providerNone, "":
		return nil
	case providerStdout:
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	case providerOTLP:
		var opts []otlptracehttp.Option
		if endpoint, insecure, ok := parseEndpoint(o.otlpEndpoint); ok {
			opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
			if insecure {
				opts = append(opts, otlptracehttp.WithInsecure())
			}
		}
		exporter, err = otlptracehttp.New(ctx, opts...)
	default:
		return fmt.Errorf("unsupported trace exporter: %s", o.traces)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s trace exporter: %w", o.traces, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	t.options = append(t.options, schema.WithTracerProvider(tp))
	t.shutdown = append(t.shutdown, tp.Shutdown)

	return nil
}

func (t *telemetry) setupMetrics(ctx context.Context, o *telemetryOptions, w io.Writer, res *resource.Resource) error {
	var reader sdkmetric.Reader

	switch o.metrics {
	case providerNone, "":
		return nil
	case providerStdout:
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w), stdoutmetric.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("failed to create stdout metrics exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter)
	case providerOTLP:
		var opts []otlpmetrichttp.Option
		if endpoint, insecure, ok := parseEndpoint(o.otlpEndpoint); ok {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
			if insecure {
				opts = append(opts, otlpmetrichttp.WithInsecure())
			}
		}
		exporter, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter)
	case providerPrometheus:
		if o.metricsFile == "" {
			return errors.New("--metrics-file is required with --metrics=prometheus")
		}
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		reader = exporter
		path := o.metricsFile
		t.shutdown = append(t.shutdown, func(context.Context) error {
			return promclient.WriteToTextfile(path, registry)
		})
	default:
		return fmt.Errorf("unsupported metrics exporter: %s", o.metrics)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	t.options = append(t.options, schema.WithMeterProvider(mp))
	// The textfile is written before the provider stops collecting.
	t.shutdown = append(t.shutdown, mp.Shutdown)

	return nil
}

// parseEndpoint strips the scheme and path from an OTLP endpoint URL.
// insecure is true for plain http.
func parseEndpoint(raw string) (endpoint string, insecure bool, ok bool) {
	if raw == "" {
		return "", false, false
	}

	endpoint = raw
	if trimmed, found := strings.CutPrefix(endpoint, "http://"); found {
		endpoint = trimmed
		insecure = true
	} else if trimmed, found := strings.CutPrefix(endpoint, "https://"); found {
		endpoint = trimmed
	}
	if idx := strings.Index(endpoint, "/"); idx != -1 {
		endpoint = endpoint[:idx]
	}

	return endpoint, insecure, true
}
