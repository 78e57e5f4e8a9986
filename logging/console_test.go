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

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     *slog.HandlerOptions
		level    slog.Level
		expected bool
	}{
		{"default level INFO allows INFO", nil, slog.LevelInfo, true},
		{"default level INFO rejects DEBUG", nil, slog.LevelDebug, false},
		{"custom level DEBUG allows DEBUG", &slog.HandlerOptions{Level: slog.LevelDebug}, slog.LevelDebug, true},
		{"custom level WARN rejects INFO", &slog.HandlerOptions{Level: slog.LevelWarn}, slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newConsoleHandler(&bytes.Buffer{}, tt.opts)
			assert.Equal(t, tt.expected, h.Enabled(context.Background(), tt.level))
		})
	}
}

// record builds a record without a timestamp so output is deterministic.
func record(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Time{}, level, msg, 0)
	r.AddAttrs(attrs...)

	return r
}

func TestConsoleHandler_Handle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := newConsoleHandler(&buf, nil)

	err := h.Handle(context.Background(), record(slog.LevelWarn, "array validator failed",
		slog.String("path", "tags"),
		slog.Int("length", 4),
		slog.Float64("bound", 2.5),
		slog.Bool("unique", true),
		slog.Duration("took", 1500*time.Millisecond),
		slog.String("message", "too many tags"),
		slog.Any("err", errors.New("boom")),
	))
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, colorYellow+colorBold+"WARN "+colorReset))
	assert.Contains(t, out, "array validator failed")
	assert.Contains(t, out, " path=tags")
	assert.Contains(t, out, " length=4")
	assert.Contains(t, out, " bound=2.5")
	assert.Contains(t, out, " unique=true")
	assert.Contains(t, out, " took=1.5s")
	assert.Contains(t, out, ` message="too many tags"`)
	assert.Contains(t, out, ` err="boom"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestConsoleHandler_LevelColors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, colorRed, levelColor(slog.LevelError))
	assert.Equal(t, colorYellow, levelColor(slog.LevelWarn))
	assert.Equal(t, colorGreen, levelColor(slog.LevelInfo))
	assert.Equal(t, colorBlue, levelColor(slog.LevelDebug))
}

func TestConsoleHandler_AttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var h slog.Handler = newConsoleHandler(&buf, nil)
	h = h.WithAttrs([]slog.Attr{slog.String("service", "schemacheck")})
	h = h.WithGroup("loader")
	h = h.WithAttrs([]slog.Attr{slog.Int("sources", 2)})

	require.NoError(t, h.Handle(context.Background(), record(slog.LevelInfo, "schema loaded",
		slog.Int("paths", 3),
		slog.Group("field", slog.String("kind", "Array")),
	)))

	out := buf.String()
	assert.Contains(t, out, " service=schemacheck")
	assert.Contains(t, out, " loader.sources=2")
	assert.Contains(t, out, " loader.paths=3")
	assert.Contains(t, out, " loader.field.kind=Array")
}

func TestConsoleHandler_WithGroupEmptyName(t *testing.T) {
	t.Parallel()

	h := newConsoleHandler(&bytes.Buffer{}, nil)
	assert.Same(t, h, h.WithGroup(""))
}

func TestConsoleHandler_ReplaceAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := MustNew(WithHandlerType(ConsoleHandler), WithOutput(&buf))
	l.Logger().Info("consul source", "token", "s3cr3t")

	assert.NotContains(t, buf.String(), "s3cr3t")
	assert.Contains(t, buf.String(), "token=***REDACTED***")
}

func TestConsoleHandler_Source(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := newConsoleHandler(&buf, &slog.HandlerOptions{AddSource: true})

	var pcs [1]uintptr
	runtime.Callers(1, pcs[:])
	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "with source", pcs[0])
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Contains(t, buf.String(), "(console_test.go:")
}

func TestFormatValue_EmptyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `""`, formatValue(slog.StringValue("")))
	assert.Equal(t, "18446744073709551615", formatValue(slog.Uint64Value(^uint64(0))))
}
