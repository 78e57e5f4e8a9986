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

package jsonschema

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"rivaas.dev/schema"
)

// codeNamespaceNotFound is returned by collMod for a missing collection.
const codeNamespaceNotFound = 26

// bsonTypes maps field kinds to MongoDB BSON types. Mixed has none.
var bsonTypes = map[schema.Kind]any{
	schema.KindArray:   "array",
	schema.KindString:  "string",
	schema.KindNumber:  bson.A{"int", "long", "double", "decimal"},
	schema.KindBoolean: "bool",
	schema.KindObject:  "object",
}

// MongoValidator returns s as a collection validator document:
//
//	{"$jsonSchema": {"bsonType": "object", "properties": {...}}}
func MongoValidator(s *schema.Schema) bson.D {
	if s == nil {
		s = schema.New()
	}

	return bson.D{{Key: "$jsonSchema", Value: toBSON(buildTree(s))}}
}

// toBSON renders n in MongoDB's $jsonSchema dialect, keys in a fixed order.
func toBSON(n *node) bson.D {
	if n.never {
		return bson.D{{Key: "not", Value: bson.D{}}}
	}

	var out bson.D
	if t, ok := bsonTypes[n.kind]; ok {
		out = append(out, bson.E{Key: "bsonType", Value: t})
	}
	if len(n.required) > 0 {
		out = append(out, bson.E{Key: "required", Value: append([]string(nil), n.required...)})
	}
	if n.maxItems != nil {
		out = append(out, bson.E{Key: "maxItems", Value: int64(*n.maxItems)})
	}
	if n.minItems != nil {
		out = append(out, bson.E{Key: "minItems", Value: int64(*n.minItems)})
	}
	if n.unique {
		out = append(out, bson.E{Key: "uniqueItems", Value: true})
	}
	if len(n.props) > 0 {
		props := make(bson.D, 0, len(n.props))
		for _, name := range n.propertyNames() {
			props = append(props, bson.E{Key: name, Value: toBSON(n.props[name])})
		}
		out = append(out, bson.E{Key: "properties", Value: props})
	}
	if out == nil {
		out = bson.D{}
	}

	return out
}

// ApplyMongoValidator installs the validator of s on a collection. It runs
// collMod on an existing collection and creates a missing one.
//
// Example:
//
//	client, _ := mongo.Connect(options.Client().ApplyURI(uri))
//	err := jsonschema.ApplyMongoValidator(ctx, client.Database("shop"), "orders", s)
func ApplyMongoValidator(ctx context.Context, db *mongo.Database, collection string, s *schema.Schema) error {
	validator := MongoValidator(s)

	err := db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: collection},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "strict"},
		{Key: "validationAction", Value: "error"},
	}).Err()
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != codeNamespaceNotFound {
		return fmt.Errorf("collMod %s: %w", collection, err)
	}

	opts := options.CreateCollection().
		SetValidator(validator).
		SetValidationLevel("strict").
		SetValidationAction("error")
	if err = db.CreateCollection(ctx, collection, opts); err != nil {
		return fmt.Errorf("create collection %s: %w", collection, err)
	}

	return nil
}
