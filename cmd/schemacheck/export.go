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
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"rivaas.dev/schema/jsonschema"
)

func newExportCmd(a *app) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the loaded schema as JSON Schema or a MongoDB validator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.loadSchema(cmd.Context())
			if err != nil {
				return err
			}

			var out []byte
			switch target {
			case "jsonschema":
				out, err = json.MarshalIndent(jsonschema.Export(s), "", "  ")
			case "mongo":
				out, err = bson.MarshalExtJSONIndent(jsonschema.MongoValidator(s), false, false, "", "  ")
			default:
				return fmt.Errorf("unknown export target %q: want jsonschema or mongo", target)
			}
			if err != nil {
				return fmt.Errorf("encode %s export: %w", target, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
			return err
		},
	}

	a.addSchemaFlags(cmd)
	cmd.Flags().StringVarP(&target, "target", "t", "jsonschema", "export target: jsonschema or mongo")

	return cmd
}

func newApplyMongoCmd(a *app) *cobra.Command {
	var (
		uri        string
		database   string
		collection string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "apply-mongo",
		Short: "Install the loaded schema as a MongoDB collection validator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := a.loadSchema(ctx)
			if err != nil {
				return err
			}

			client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout))
			if err != nil {
				return fmt.Errorf("connect to mongodb: %w", err)
			}
			defer func() {
				if derr := client.Disconnect(ctx); derr != nil {
					a.logger.Warn("failed to disconnect from mongodb", "error", derr)
				}
			}()

			if err = jsonschema.ApplyMongoValidator(ctx, client.Database(database), collection, s); err != nil {
				return err
			}
			a.logger.Info("applied collection validator", "database", database, "collection", collection)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "validator applied to %s.%s\n", database, collection)

			return err
		},
	}

	defaultURI := os.Getenv("MONGODB_URI")
	if defaultURI == "" {
		defaultURI = "mongodb://localhost:27017"
	}

	a.addSchemaFlags(cmd)
	cmd.Flags().StringVar(&uri, "uri", defaultURI, "MongoDB connection URI (defaults to $MONGODB_URI)")
	cmd.Flags().StringVar(&database, "database", "", "database name")
	cmd.Flags().StringVar(&collection, "collection", "", "collection name")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "server selection timeout")
	_ = cmd.MarkFlagRequired("database")
	_ = cmd.MarkFlagRequired("collection")

	return cmd
}
