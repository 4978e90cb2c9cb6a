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

// Package session orchestrates loading the three vendor exports and holds the
// filter and sort state the presentation layer works against.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/carverauto/fwlog/pkg/filter"
	"github.com/carverauto/fwlog/pkg/logger"
	"github.com/carverauto/fwlog/pkg/models"
	"github.com/carverauto/fwlog/pkg/parser"
	"github.com/carverauto/fwlog/pkg/report"
	"github.com/carverauto/fwlog/pkg/source"
	"github.com/carverauto/fwlog/pkg/table"
)

var (
	// ErrNotLoaded is returned when a vendor has no retained records yet.
	ErrNotLoaded = errors.New("vendor not loaded")
	// ErrVendorNotTracked is returned for a vendor the session was not created for.
	ErrVendorNotTracked = errors.New("vendor not tracked by session")
)

// Session retains the parsed collection of every vendor along with the
// current filter parameters and the per-vendor sort state.
type Session struct {
	id         uuid.UUID
	fetcher    source.Fetcher
	logger     logger.Logger
	vendors    []models.Vendor
	parseOpts  []parser.Option
	timeout    time.Duration
	maxBuckets int
	typed      bool
	now        func() time.Time

	mu       sync.RWMutex
	results  map[models.Vendor]*parser.Result
	failures map[models.Vendor]error
	loadedAt time.Time
	params   filter.Params
	sorts    map[models.Vendor]table.State
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Session) {
		s.logger = log
	}
}

// WithVendors limits the session to the given vendors.
func WithVendors(vendors ...models.Vendor) Option {
	return func(s *Session) {
		s.vendors = append([]models.Vendor(nil), vendors...)
	}
}

// WithParserOptions passes options to every parse.
func WithParserOptions(opts ...parser.Option) Option {
	return func(s *Session) {
		s.parseOpts = append(s.parseOpts, opts...)
	}
}

// WithFetchTimeout bounds each vendor fetch and parse.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithMaxBuckets sets the cap of the top-N charts.
func WithMaxBuckets(n int) Option {
	return func(s *Session) {
		s.maxBuckets = n
	}
}

// WithTypedSort makes table sorting compare numeric and address columns by value.
func WithTypedSort() Option {
	return func(s *Session) {
		s.typed = true
	}
}

// WithClock overrides the clock used for the default date range.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates a session that loads exports through fetcher.
func New(fetcher source.Fetcher, opts ...Option) *Session {
	s := &Session{
		id:       uuid.New(),
		fetcher:  fetcher,
		logger:   logger.Nop(),
		vendors:  append([]models.Vendor(nil), models.AllVendors...),
		now:      time.Now,
		results:  make(map[models.Vendor]*parser.Result),
		failures: make(map[models.Vendor]error),
		sorts:    make(map[models.Vendor]table.State),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.params = filter.DefaultParams(s.now())

	for _, v := range s.vendors {
		s.sorts[v] = table.State{Column: models.ColID, Direction: models.Ascending}
	}

	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id.String()
}

// Vendors returns the vendors tracked by the session.
func (s *Session) Vendors() []models.Vendor {
	return append([]models.Vendor(nil), s.vendors...)
}

type loadResult struct {
	vendor models.Vendor
	result *parser.Result
	err    error
}

// Load fetches and parses every vendor concurrently and returns once all of them
// have completed. A vendor that fails keeps its previously retained records; the
// failures are joined into the returned error.
func (s *Session) Load(ctx context.Context) error {
	start := time.Now()
	results := make([]loadResult, len(s.vendors))

	var g errgroup.Group

	for i, v := range s.vendors {
		g.Go(func() error {
			res, err := s.loadVendor(ctx, v)
			results[i] = loadResult{vendor: v, result: res, err: err}

			return nil
		})
	}

	_ = g.Wait()

	var joinErr error

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, lr := range results {
		if lr.err != nil {
			s.failures[lr.vendor] = lr.err
			joinErr = errors.Join(joinErr, lr.err)

			s.logger.Error().
				Err(lr.err).
				Str("session", s.ID()).
				Str("vendor", lr.vendor.String()).
				Msg("Failed to load vendor export")

			continue
		}

		delete(s.failures, lr.vendor)
		s.results[lr.vendor] = lr.result
	}

	s.loadedAt = s.now()

	s.logger.Info().
		Str("session", s.ID()).
		Int("vendors", len(s.vendors)).
		Int("failed", len(s.failures)).
		Dur("elapsed", time.Since(start)).
		Msg("Load completed")

	return joinErr
}

func (s *Session) loadVendor(ctx context.Context, vendor models.Vendor) (*parser.Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rc, err := s.fetcher.Fetch(ctx, vendor)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", vendor, err)
	}

	defer func() {
		if cerr := rc.Close(); cerr != nil {
			s.logger.Warn().Err(cerr).Str("vendor", vendor.String()).Msg("Failed to close export")
		}
	}()

	opts := append([]parser.Option{parser.WithLogger(s.logger)}, s.parseOpts...)

	res, err := parser.Parse(ctx, vendor, rc, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", vendor, err)
	}

	return res, nil
}

func (s *Session) tracked(vendor models.Vendor) bool {
	for _, v := range s.vendors {
		if v == vendor {
			return true
		}
	}

	return false
}

// Ready reports whether every tracked vendor has retained records.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.vendors {
		if _, ok := s.results[v]; !ok {
			return false
		}
	}

	return true
}

// LoadedAt is the completion time of the last Load.
func (s *Session) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadedAt
}

// Failure returns the error of the last load of vendor, if it failed.
func (s *Session) Failure(vendor models.Vendor) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.failures[vendor]
}

func (s *Session) result(vendor models.Vendor) (*parser.Result, error) {
	if !s.tracked(vendor) {
		return nil, fmt.Errorf("%w: %s", ErrVendorNotTracked, vendor)
	}

	res, ok := s.results[vendor]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, vendor)
	}

	return res, nil
}

// Records returns the retained, unfiltered records of vendor.
func (s *Session) Records(vendor models.Vendor) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.result(vendor)
	if err != nil {
		return nil, err
	}

	return append([]models.Record(nil), res.Records...), nil
}

// Diagnostics returns the parse diagnostics of vendor's retained export.
func (s *Session) Diagnostics(vendor models.Vendor) (parser.Diagnostics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.result(vendor)
	if err != nil {
		return parser.Diagnostics{}, err
	}

	return res.Diagnostics, nil
}

// Params returns the current filter parameters.
func (s *Session) Params() filter.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.params
}

// SetParams replaces the filter parameters. Dates are normalized to day boundaries.
func (s *Session) SetParams(p filter.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = p.WithMinDate(p.MinDate).WithMaxDate(p.MaxDate).WithAddress(p.Address)
}

// SetMinDate moves the lower bound of the date range.
func (s *Session) SetMinDate(day time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = s.params.WithMinDate(day)
}

// SetMaxDate moves the upper bound of the date range to the end of day.
func (s *Session) SetMaxDate(day time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = s.params.WithMaxDate(day)
}

// SetAddress filters every vendor by source address; NoAddress clears it.
func (s *Session) SetAddress(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = s.params.WithAddress(address)
}

// SortState returns the table sort state of vendor.
func (s *Session) SortState(vendor models.Vendor) table.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorts[vendor]
}

// ClickColumn applies a header click on vendor's table and returns the new state.
func (s *Session) ClickColumn(vendor models.Vendor, column models.ColumnID) table.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := table.ToggleOrSet(s.sorts[vendor], column)
	s.sorts[vendor] = next

	return next
}

// SetSort sets vendor's table sort state directly.
func (s *Session) SetSort(vendor models.Vendor, state table.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sorts[vendor] = state
}

// Addresses returns the address picker candidates of vendor.
func (s *Session) Addresses(vendor models.Vendor) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.result(vendor)
	if err != nil {
		return nil, err
	}

	return filter.Addresses(res.Records), nil
}

// Report builds vendor's report under the current filter and sort state.
func (s *Session) Report(vendor models.Vendor) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.result(vendor)
	if err != nil {
		return nil, err
	}

	diag := res.Diagnostics

	return report.Build(vendor, res.Records, report.Request{
		Params:     s.params,
		Sort:       s.sorts[vendor],
		MaxBuckets: s.maxBuckets,
		Typed:      s.typed,
	}, &diag), nil
}
