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

//go:build integration

package jsonschema

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"rivaas.dev/schema"
)

// codeDocumentValidationFailure is returned for writes rejected by a validator.
const codeDocumentValidationFailure = 121

// MongoValidatorTestSuite applies exported validators to a real server.
type MongoValidatorTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *mongo.Client
	db        *mongo.Database
}

func (s *MongoValidatorTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections"),
			Tmpfs:        map[string]string{"/data/db": "rw"},
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(ctx, "27017")
	s.Require().NoError(err)

	s.client, err = mongo.Connect(options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	s.Require().NoError(err)
	s.Require().NoError(s.client.Ping(ctx, nil))

	s.db = s.client.Database("schema_test")
}

func (s *MongoValidatorTestSuite) TearDownSuite() {
	ctx := context.Background()
	if s.client != nil {
		s.Require().NoError(s.client.Disconnect(ctx))
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(ctx))
	}
}

//nolint:paralleltest // shares one MongoDB container
func TestMongoValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(MongoValidatorTestSuite))
}

// ordersSchema limits tags to three unique values.
func ordersSchema() *schema.Schema {
	s := schema.New()
	s.Add("tags", schema.KindArray, schema.Options{"maxItems": 3, "uniqueItems": true})

	return s
}

// isValidationFailure reports whether err is a rejected write.
func isValidationFailure(err error) bool {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return false
	}
	for _, e := range we.WriteErrors {
		if e.Code == codeDocumentValidationFailure {
			return true
		}
	}

	return false
}

func (s *MongoValidatorTestSuite) TestApply_CreatesCollection() {
	ctx := context.Background()
	coll := s.db.Collection("created")
	s.Require().NoError(coll.Drop(ctx))

	s.Require().NoError(ApplyMongoValidator(ctx, s.db, "created", ordersSchema()))

	_, err := coll.InsertOne(ctx, bson.D{{Key: "tags", Value: bson.A{"a", "b"}}})
	s.Require().NoError(err)

	_, err = coll.InsertOne(ctx, bson.D{{Key: "tags", Value: bson.A{"a", "b", "c", "d"}}})
	s.True(isValidationFailure(err), "expected validation failure, got %v", err)

	_, err = coll.InsertOne(ctx, bson.D{{Key: "tags", Value: bson.A{"a", "a"}}})
	s.True(isValidationFailure(err), "expected validation failure, got %v", err)
}

func (s *MongoValidatorTestSuite) TestApply_ModifiesExistingCollection() {
	ctx := context.Background()
	coll := s.db.Collection("existing")
	s.Require().NoError(coll.Drop(ctx))
	s.Require().NoError(s.db.CreateCollection(ctx, "existing"))

	_, err := coll.InsertOne(ctx, bson.D{{Key: "tags", Value: bson.A{"a", "b", "c", "d"}}})
	s.Require().NoError(err)

	s.Require().NoError(ApplyMongoValidator(ctx, s.db, "existing", ordersSchema()))

	_, err = coll.InsertOne(ctx, bson.D{{Key: "tags", Value: bson.A{"a", "b", "c", "d"}}})
	s.True(isValidationFailure(err), "expected validation failure, got %v", err)
}
