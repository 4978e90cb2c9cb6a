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
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt is the file suffix of zstd compressed exports.
const CompressedExt = ".zst"

//nolint:gochecknoglobals // zstd frame magic number
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

//nolint:gochecknoglobals // shared stateless codecs, safe for concurrent EncodeAll/DecodeAll
var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

func codecs() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil)
		if codecErr != nil {
			return
		}

		decoder, codecErr = zstd.NewReader(nil)
	})

	return encoder, decoder, codecErr
}

// IsCompressed reports whether data starts with a zstd frame.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// Compress encodes data as a single zstd frame.
func Compress(data []byte) ([]byte, error) {
	enc, _, err := codecs()
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	return enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// Decompress decodes zstd data. Data without the zstd magic is returned unchanged.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}

	_, dec, err := codecs()
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress export: %w", err)
	}

	return out, nil
}

// zstdReadCloser streams a compressed file and closes both the decoder and the file.
type zstdReadCloser struct {
	dec  *zstd.Decoder
	file io.Closer
}

func newZstdReadCloser(rc io.ReadCloser) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(rc)
	if err != nil {
		_ = rc.Close()

		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &zstdReadCloser{dec: dec, file: rc}, nil
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	z.dec.Close()

	return z.file.Close()
}
