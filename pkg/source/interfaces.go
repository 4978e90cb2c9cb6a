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

//go:generate mockgen -destination=mock_source.go -package=source github.com/carverauto/fwlog/pkg/source Fetcher

// Package source retrieves raw vendor log exports for the parser.
package source

import (
	"context"
	"io"

	"github.com/carverauto/fwlog/pkg/models"
)

// Fetcher retrieves the raw export of one vendor. The caller closes the returned reader.
type Fetcher interface {
	Fetch(ctx context.Context, vendor models.Vendor) (io.ReadCloser, error)
}

// Publisher stores the raw export of one vendor where a Fetcher can find it.
type Publisher interface {
	Publish(ctx context.Context, vendor models.Vendor, data []byte) error
}
