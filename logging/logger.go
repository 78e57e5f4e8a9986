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

// Package logging builds the [slog.Logger] used by the schema tooling.
//
// Loggers are plain [slog.Logger] values, so every package that accepts a
// WithLogger option can take one directly:
//
//	l := logging.MustNew(logging.WithHandlerType(logging.ConsoleHandler), logging.WithDebugLevel())
//	s, err := loader.Load(ctx, loader.WithFile("orders.yaml"), loader.WithLogger(l.Logger()))
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

// Level represents log level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// redactedKeys are attribute keys whose values never reach the output.
var redactedKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"secret":        {},
	"api_key":       {},
	"authorization": {},
}

// Logger owns a configured [slog.Logger] and its level.
//
// The level is held in a [slog.LevelVar], so [Logger.SetLevel] takes effect
// on every logger derived from [Logger.Logger].
type Logger struct {
	handlerType    HandlerType
	output         io.Writer
	level          Level
	serviceName    string
	serviceVersion string
	addSource      bool
	replaceAttr    func(groups []string, a slog.Attr) slog.Attr

	levelVar slog.LevelVar
	slogger  *slog.Logger
}

// Option is a functional option for configuring the logger.
type Option func(*Logger)

// New creates a Logger with the given options.
//
// The default is a JSON handler at info level writing to stderr, which
// keeps stdout free for command output.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{
		handlerType: JSONHandler,
		output:      os.Stderr,
		level:       LevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.output == nil {
		return nil, fmt.Errorf("invalid configuration: %w", ErrNilOutput)
	}
	l.levelVar.Set(l.level)

	handlerOpts := &slog.HandlerOptions{
		Level:       &l.levelVar,
		AddSource:   l.addSource,
		ReplaceAttr: l.buildReplaceAttr(),
	}

	var handler slog.Handler
	switch l.handlerType {
	case JSONHandler:
		handler = slog.NewJSONHandler(l.output, handlerOpts)
	case TextHandler:
		handler = slog.NewTextHandler(l.output, handlerOpts)
	case ConsoleHandler:
		handler = newConsoleHandler(l.output, handlerOpts)
	default:
		return nil, fmt.Errorf("invalid configuration: %w: %q", ErrInvalidHandler, l.handlerType)
	}

	logger := slog.New(handler)
	if l.serviceName != "" {
		logger = logger.With("service", l.serviceName)
	}
	if l.serviceVersion != "" {
		logger = logger.With("version", l.serviceVersion)
	}
	l.slogger = logger

	return l, nil
}

// MustNew creates a new Logger or panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}

	return l
}

// Logger returns the underlying [slog.Logger].
func (l *Logger) Logger() *slog.Logger {
	return l.slogger
}

// SetLevel changes the minimum level of the logger and everything derived
// from it.
func (l *Logger) SetLevel(level Level) {
	l.levelVar.Set(level)
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	return l.levelVar.Level()
}

// buildReplaceAttr redacts sensitive attributes before the user replacer runs.
func (l *Logger) buildReplaceAttr() func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if _, ok := redactedKeys[strings.ToLower(a.Key)]; ok {
			return slog.String(a.Key, "***REDACTED***")
		}
		if l.replaceAttr != nil {
			return l.replaceAttr(groups, a)
		}

		return a
	}
}

// ParseLevel converts a level name such as "debug" or "WARN" into a Level.
func ParseLevel(s string) (Level, error) {
	var level Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}

	return level, nil
}

// ParseHandlerType converts a handler name into a HandlerType.
func ParseHandlerType(s string) (HandlerType, error) {
	switch t := HandlerType(strings.ToLower(s)); t {
	case JSONHandler, TextHandler, ConsoleHandler:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHandler, s)
	}
}
