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

// Package problem renders validation and load errors as HTTP-style error
// bodies, either as RFC 9457 Problem Details or as a simple JSON object.
//
// A [*schema.Error] becomes a 422 response whose "errors" extension lists
// every failed field:
//
//	f := problem.NewRFC9457("https://rivaas.dev/problems")
//	resp := f.Format("/orders", err)
//	w.Header().Set("Content-Type", resp.ContentType)
//	w.WriteHeader(resp.Status)
//	json.NewEncoder(w).Encode(resp.Body)
//
// Errors control their rendering by implementing [ErrorType], [ErrorCode]
// and [ErrorDetails].
package problem

import (
	"errors"
	"net/http"
)

// Formatter converts an error into response components.
type Formatter interface {
	// Format renders err. instance identifies the checked resource, such as
	// a request path or a document file name.
	Format(instance string, err error) Response
}

// Response is a formatted error.
type Response struct {
	Status      int
	ContentType string
	Body        any
}

// ErrorType lets an error choose its status code.
type ErrorType interface {
	error
	HTTPStatus() int
}

// ErrorDetails lets an error expose structured details.
type ErrorDetails interface {
	error
	Details() any
}

// ErrorCode lets an error expose a machine-readable code.
type ErrorCode interface {
	error
	Code() string
}

// statusOf returns the status declared by err, or 500.
func statusOf(err error, resolver func(error) int) int {
	if resolver != nil {
		return resolver(err)
	}

	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	return http.StatusInternalServerError
}

// codeOf returns the code declared by err.
func codeOf(err error) (string, bool) {
	var coded ErrorCode
	if errors.As(err, &coded) {
		return coded.Code(), true
	}

	return "", false
}

// detailsOf returns the details declared by err.
func detailsOf(err error) (any, bool) {
	var detailed ErrorDetails
	if errors.As(err, &detailed) {
		return detailed.Details(), true
	}

	return nil, false
}
