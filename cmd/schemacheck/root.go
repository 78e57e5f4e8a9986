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
	"log/slog"

	"github.com/spf13/cobra"

	"rivaas.dev/schema"
	"rivaas.dev/schema/loader"
	"rivaas.dev/schema/logging"
)

// app holds state shared by all subcommands.
type app struct {
	logFormat string
	logLevel  string
	logger    *slog.Logger

	schemaFiles []string
	consulKeys  []string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "schemacheck",
		Short:         "Check documents against schema array constraints",
		Version:       fmt.Sprintf("%s (commit: %s)", version, gitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogger(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "console", "log format: json, text or console")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "minimum log level: debug, info, warn or error")

	root.AddCommand(
		newValidateCmd(a),
		newExportCmd(a),
		newApplyMongoCmd(a),
	)

	return root
}

// setupLogger builds the diagnostic logger. Logs go to stderr so stdout
// carries only command output.
func (a *app) setupLogger(cmd *cobra.Command) error {
	handler, err := logging.ParseHandlerType(a.logFormat)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}

	l, err := logging.New(
		logging.WithHandlerType(handler),
		logging.WithLevel(level),
		logging.WithOutput(cmd.ErrOrStderr()),
		logging.WithServiceName("schemacheck"),
		logging.WithServiceVersion(version),
	)
	if err != nil {
		return err
	}
	a.logger = l.Logger()

	return nil
}

// addSchemaFlags registers the flags that select schema definitions.
func (a *app) addSchemaFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&a.schemaFiles, "schema", "s", nil, "schema definition file (repeatable, later files override earlier ones)")
	cmd.Flags().StringArrayVar(&a.consulKeys, "consul-key", nil, "Consul KV key holding a schema definition (repeatable)")
}

// loadSchema merges every selected definition into one schema.
func (a *app) loadSchema(ctx context.Context) (*schema.Schema, error) {
	if len(a.schemaFiles) == 0 && len(a.consulKeys) == 0 {
		return nil, errors.New("at least one --schema or --consul-key is required")
	}

	opts := make([]loader.Option, 0, len(a.schemaFiles)+len(a.consulKeys)+1)
	for _, path := range a.schemaFiles {
		opts = append(opts, loader.WithFile(path))
	}
	for _, key := range a.consulKeys {
		opts = append(opts, loader.WithConsul(key))
	}
	opts = append(opts, loader.WithLogger(a.logger))

	return loader.Load(ctx, opts...)
}
