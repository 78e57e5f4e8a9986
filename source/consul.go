// Copyright 2025 The Rivaas Authors
// Copyright 2025 Company.info B.V.
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

package source

import (
	"context"
	"fmt"

	"github.com/hashicorp/consul/api"

	"rivaas.dev/schema/codec"
)

// ConsulKV is the subset of the Consul KV API used by [Consul].
type ConsulKV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

// Consul loads a definition stored under one key of Consul's key-value store.
//
// The client is configured from the standard environment variables:
//   - CONSUL_HTTP_ADDR: server address, e.g. "http://localhost:8500"
//   - CONSUL_HTTP_TOKEN: access token (optional)
type Consul struct {
	kv        ConsulKV
	key       string
	decoder   codec.Decoder
	lastIndex uint64
}

// NewConsul returns a Consul source for key. When kv is nil a client is
// built from the environment and its KV endpoint is used.
//
// Errors:
//   - the decoder is nil
//   - the Consul client cannot be created
func NewConsul(key string, decoder codec.Decoder, kv ConsulKV) (*Consul, error) {
	if decoder == nil {
		return nil, fmt.Errorf("consul source %q: decoder is nil", key)
	}
	if kv == nil {
		client, err := api.NewClient(api.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create consul client: %w", err)
		}
		kv = client.KV()
	}

	return &Consul{kv: kv, key: key, decoder: decoder}, nil
}

// String names the source in errors and logs.
func (c *Consul) String() string {
	return "consul:" + c.key
}

// LastIndex returns the Consul modify index seen by the most recent Load.
func (c *Consul) LastIndex() uint64 {
	return c.lastIndex
}

// Load fetches and decodes the key. A missing key yields an empty map.
func (c *Consul) Load(ctx context.Context) (map[string]any, error) {
	pair, meta, err := c.kv.Get(c.key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get consul key: %w", err)
	}
	if meta != nil {
		c.lastIndex = meta.LastIndex
	}

	def := make(map[string]any)
	if pair == nil || len(pair.Value) == 0 {
		return def, nil
	}
	if err = c.decoder.Decode(pair.Value, &def); err != nil {
		return nil, fmt.Errorf("failed to decode consul value: %w", err)
	}
	if def == nil {
		def = make(map[string]any)
	}

	return def, nil
}
