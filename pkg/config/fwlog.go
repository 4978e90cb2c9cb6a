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

package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/carverauto/fwlog/pkg/logger"
	"github.com/carverauto/fwlog/pkg/models"
	"github.com/carverauto/fwlog/pkg/parser"
)

// Configuration errors.
var (
	ErrInvalidSource     = errors.New("source must be 'file' or 'nats'")
	ErrMissingDataDir    = errors.New("data_dir is required for the file source")
	ErrMissingNATSURL    = errors.New("nats_url is required for the nats source")
	ErrMissingBucket     = errors.New("bucket is required for the nats source")
	ErrInvalidDelimiter  = errors.New("delimiter must be a single character other than a quote or line break")
	ErrInvalidMaxBuckets = errors.New("max_buckets must not be negative")
	ErrInvalidTimeout    = errors.New("fetch_timeout must not be negative")
)

// Source kinds.
const (
	SourceFile = "file"
	SourceNATS = "nats"
)

const (
	defaultDataDir      = "."
	defaultBucket       = "fwlog-exports"
	defaultFetchTimeout = 30 * time.Second
)

// FwlogConfig is the configuration of the fwlog binary.
type FwlogConfig struct {
	Source       string            `json:"source"`
	DataDir      string            `json:"data_dir"`
	Files        map[string]string `json:"files,omitempty"`
	NATSURL      string            `json:"nats_url,omitempty"`
	Bucket       string            `json:"bucket,omitempty"`
	Compress     bool              `json:"compress,omitempty"`
	Vendors      []string          `json:"vendors,omitempty"`
	Delimiter    string            `json:"delimiter"`
	Format       string            `json:"format"`
	MaxBuckets   int               `json:"max_buckets"`
	TypedSort    bool              `json:"typed_sort"`
	FetchTimeout Duration          `json:"fetch_timeout"`
	Logging      *logger.Config    `json:"logging"`
}

// Default returns the configuration used for unset fields.
func Default() *FwlogConfig {
	return &FwlogConfig{
		Source:       SourceFile,
		DataDir:      defaultDataDir,
		Bucket:       defaultBucket,
		Delimiter:    ",",
		Format:       string(parser.FormatAuto),
		MaxBuckets:   15,
		FetchTimeout: Duration(defaultFetchTimeout),
		Logging:      logger.DefaultConfig(),
	}
}

// Load reads the configuration at path (or from the environment, see
// Config.LoadAndValidate) on top of Default and validates it.
func Load(ctx context.Context, path string, log logger.Logger) (*FwlogConfig, error) {
	cfg := Default()

	if err := NewConfig(log).LoadAndValidate(ctx, path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *FwlogConfig) Validate() error {
	var errs []error

	c.Source = strings.ToLower(strings.TrimSpace(c.Source))

	switch c.Source {
	case SourceFile:
		if c.DataDir == "" {
			errs = append(errs, ErrMissingDataDir)
		}
	case SourceNATS:
		if c.NATSURL == "" {
			errs = append(errs, ErrMissingNATSURL)
		}

		if c.Bucket == "" {
			errs = append(errs, ErrMissingBucket)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidSource, c.Source))
	}

	if !validDelimiter(c.delimiter()) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDelimiter, c.Delimiter))
	}

	if _, err := parser.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.VendorList(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.FileOverrides(); err != nil {
		errs = append(errs, err)
	}

	if c.MaxBuckets < 0 {
		errs = append(errs, ErrInvalidMaxBuckets)
	}

	if c.FetchTimeout < 0 {
		errs = append(errs, ErrInvalidTimeout)
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}

	return errors.Join(errs...)
}

func (c *FwlogConfig) delimiter() string {
	if strings.EqualFold(c.Delimiter, "tab") || c.Delimiter == `\t` {
		return "\t"
	}

	return c.Delimiter
}

// validDelimiter mirrors the separators encoding/csv accepts.
func validDelimiter(d string) bool {
	if utf8.RuneCountInString(d) != 1 {
		return false
	}

	r, _ := utf8.DecodeRuneInString(d)

	switch r {
	case '"', '\r', '\n', utf8.RuneError:
		return false
	default:
		return true
	}
}

// DelimiterRune is the field separator of delimited exports. "tab" and `\t` name a tab.
func (c *FwlogConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.delimiter())

	return r
}

// VendorList resolves Vendors, defaulting to every vendor.
func (c *FwlogConfig) VendorList() ([]models.Vendor, error) {
	if len(c.Vendors) == 0 {
		return append([]models.Vendor(nil), models.AllVendors...), nil
	}

	out := make([]models.Vendor, 0, len(c.Vendors))

	for _, name := range c.Vendors {
		v, err := models.ParseVendor(name)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// FileOverrides resolves the per-vendor export paths of Files.
func (c *FwlogConfig) FileOverrides() (map[models.Vendor]string, error) {
	out := make(map[models.Vendor]string, len(c.Files))

	for name, path := range c.Files {
		v, err := models.ParseVendor(name)
		if err != nil {
			return nil, err
		}

		out[v] = path
	}

	return out, nil
}

// ParserOptions translates the parsing settings.
func (c *FwlogConfig) ParserOptions() []parser.Option {
	format, err := parser.ParseFormat(c.Format)
	if err != nil {
		format = parser.FormatAuto
	}

	return []parser.Option{
		parser.WithDelimiter(c.DelimiterRune()),
		parser.WithFormat(format),
	}
}
