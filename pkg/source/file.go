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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/carverauto/fwlog/pkg/logger"
	"github.com/carverauto/fwlog/pkg/models"
)

// defaultExtensions are tried in order when no explicit path is configured for a vendor.
//
//nolint:gochecknoglobals // lookup order
var defaultExtensions = []string{".csv", ".json", ".csv" + CompressedExt, ".json" + CompressedExt}

// FileFetcher reads vendor exports from a directory.
type FileFetcher struct {
	dir    string
	files  map[models.Vendor]string
	logger logger.Logger
}

var (
	_ Fetcher   = (*FileFetcher)(nil)
	_ Publisher = (*FileFetcher)(nil)
)

// NewFileFetcher creates a fetcher reading <dir>/<vendor>.<ext>. Entries of files
// override the path of individual vendors; relative overrides resolve against dir.
func NewFileFetcher(dir string, files map[models.Vendor]string, log logger.Logger) *FileFetcher {
	if log == nil {
		log = logger.Nop()
	}

	overrides := make(map[models.Vendor]string, len(files))
	for v, p := range files {
		overrides[v] = p
	}

	return &FileFetcher{dir: dir, files: overrides, logger: log}
}

// Path resolves the export file of a vendor.
func (f *FileFetcher) Path(vendor models.Vendor) (string, error) {
	if p, ok := f.files[vendor]; ok && p != "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(f.dir, p)
		}

		return p, nil
	}

	for _, ext := range defaultExtensions {
		p := filepath.Join(f.dir, vendor.String()+ext)

		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s in %s", ErrExportNotFound, vendor, f.dir)
}

// Fetch opens the export of vendor, decompressing .zst files on the fly.
func (f *FileFetcher) Fetch(ctx context.Context, vendor models.Vendor) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := f.Path(vendor)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrExportNotFound, path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open export %s: %w", path, err)
	}

	f.logger.Debug().Str("vendor", vendor.String()).Str("path", path).Msg("Opened export")

	if strings.HasSuffix(path, CompressedExt) {
		return newZstdReadCloser(file)
	}

	return file, nil
}

// Publish writes data as the export of vendor, replacing the file Path resolves to,
// or <dir>/<vendor>.csv when none exists yet.
func (f *FileFetcher) Publish(ctx context.Context, vendor models.Vendor, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := f.Path(vendor)
	if errors.Is(err, ErrExportNotFound) {
		path = filepath.Join(f.dir, vendor.String()+defaultExtensions[0])
	} else if err != nil {
		return err
	}

	if strings.HasSuffix(path, CompressedExt) {
		if data, err = Compress(data); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export %s: %w", path, err)
	}

	return nil
}
