/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/fwlog/pkg/logger"
	"github.com/carverauto/fwlog/pkg/models"
)

const natsClientName = "fwlog"

// NATSFetcher reads vendor exports from a NATS JetStream key-value bucket.
// Each vendor's export is stored under its vendor name, optionally zstd compressed.
type NATSFetcher struct {
	nc       *nats.Conn
	kv       jetstream.KeyValue
	compress bool
	logger   logger.Logger
}

var (
	_ Fetcher   = (*NATSFetcher)(nil)
	_ Publisher = (*NATSFetcher)(nil)
)

// NATSOption configures a NATSFetcher.
type NATSOption func(*NATSFetcher)

// WithCompression makes Publish store zstd compressed exports.
func WithCompression() NATSOption {
	return func(n *NATSFetcher) {
		n.compress = true
	}
}

// WithNATSLogger sets the logger of the fetcher.
func WithNATSLogger(log logger.Logger) NATSOption {
	return func(n *NATSFetcher) {
		n.logger = log
	}
}

// NewNATSFetcher connects to natsURL and opens bucket, creating it when missing.
func NewNATSFetcher(ctx context.Context, natsURL, bucket string, opts ...NATSOption) (*NATSFetcher, error) {
	nc, err := nats.Connect(natsURL, nats.Name(natsClientName))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()

		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	kv, err := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "firewall log exports keyed by vendor",
	})
	if errors.Is(err, jetstream.ErrBucketExists) {
		kv, err = js.KeyValue(ctx, bucket)
	}

	if err != nil {
		nc.Close()

		return nil, fmt.Errorf("failed to open KV bucket %s: %w", bucket, err)
	}

	n := newNATSFetcher(kv, opts...)
	n.nc = nc

	return n, nil
}

func newNATSFetcher(kv jetstream.KeyValue, opts ...NATSOption) *NATSFetcher {
	n := &NATSFetcher{kv: kv, logger: logger.Nop()}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Fetch reads the export stored under the vendor's name.
func (n *NATSFetcher) Fetch(ctx context.Context, vendor models.Vendor) (io.ReadCloser, error) {
	if n.kv == nil {
		return nil, errNotConnected
	}

	entry, err := n.kv.Get(ctx, vendor.String())
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s in bucket %s", ErrExportNotFound, vendor, n.kv.Bucket())
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", vendor, err)
	}

	data, err := Decompress(entry.Value())
	if err != nil {
		return nil, err
	}

	n.logger.Debug().
		Str("vendor", vendor.String()).
		Uint64("revision", entry.Revision()).
		Int("bytes", len(data)).
		Msg("Fetched export from KV")

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Publish stores data as the export of vendor.
func (n *NATSFetcher) Publish(ctx context.Context, vendor models.Vendor, data []byte) error {
	if n.kv == nil {
		return errNotConnected
	}

	if n.compress {
		var err error

		if data, err = Compress(data); err != nil {
			return err
		}
	}

	if _, err := n.kv.Put(ctx, vendor.String(), data); err != nil {
		return fmt.Errorf("failed to put key %s: %w", vendor, err)
	}

	return nil
}

// Close drains the NATS connection.
func (n *NATSFetcher) Close() error {
	if n.nc == nil {
		return nil
	}

	if err := n.nc.Drain(); err != nil {
		n.nc.Close()

		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}

	return nil
}
