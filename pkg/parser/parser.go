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

// Package parser turns raw vendor firewall exports into models.Record values.
//
// Parsing is tolerant: a line that cannot be shaped into the vendor layout is
// skipped and counted, a line whose timestamp cannot be resolved is kept with
// the zero timestamp. Delimited exports hold one record per line; quoted fields
// may not span lines. Only I/O errors and context cancellation abort a batch.
package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/carverauto/fwlog/pkg/logger"
	"github.com/carverauto/fwlog/pkg/models"
)

// Format selects how a raw export is tokenized.
type Format string

const (
	FormatAuto      Format = "auto"
	FormatDelimited Format = "csv"
	FormatJSON      Format = "json"
)

// ParseFormat validates a format name; "" means auto detection.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatDelimited, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

const (
	// id, date and time must always be present.
	minColumns = 3

	defaultDelimiter = ','
	// Longer lines are reported as malformed.
	maxLineSize      = 1 << 20
	ctxCheckInterval = 256
	sniffSize        = 512
)

// Parser extracts one vendor's records from single lines of delimited text.
type Parser interface {
	Vendor() models.Vendor
	// ParseLine returns ErrMalformedRecord with a nil record when the line is
	// rejected, and ErrUnparsableTimestamp together with a usable record when
	// only the timestamp could not be resolved.
	ParseLine(line string) (models.Record, error)
}

// Result is the outcome of parsing one export.
type Result struct {
	Vendor      models.Vendor   `json:"vendor"`
	Records     []models.Record `json:"-"`
	Diagnostics Diagnostics     `json:"diagnostics"`
}

type options struct {
	delimiter rune
	format    Format
	logger    logger.Logger
}

// Option customizes a parser.
type Option func(*options)

// WithDelimiter sets the column separator of delimited exports.
func WithDelimiter(d rune) Option {
	return func(o *options) {
		if d != 0 {
			o.delimiter = d
		}
	}
}

// WithFormat forces the input format instead of sniffing it.
func WithFormat(f Format) Option {
	return func(o *options) {
		if f != "" {
			o.format = f
		}
	}
}

// WithLogger routes soft failure reports to log.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.logger = log
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		delimiter: defaultDelimiter,
		format:    FormatAuto,
		logger:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// New returns the line parser for vendor.
func New(vendor models.Vendor, opts ...Option) (Parser, error) {
	layout := models.LayoutFor(vendor)
	if layout == nil {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownVendor, vendor)
	}

	o := buildOptions(opts)

	return &delimitedParser{layout: layout, delimiter: o.delimiter}, nil
}

// Parse reads a whole export for vendor from r.
func Parse(ctx context.Context, vendor models.Vendor, r io.Reader, opts ...Option) (*Result, error) {
	layout := models.LayoutFor(vendor)
	if layout == nil {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownVendor, vendor)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	br := bufio.NewReader(r)

	format := o.format
	if format == FormatAuto {
		format = sniffFormat(br)
	}

	var (
		res *Result
		err error
	)

	switch format {
	case FormatJSON:
		res, err = parseJSON(ctx, layout, br, o)
	case FormatDelimited:
		res, err = parseDelimited(ctx, &delimitedParser{layout: layout, delimiter: o.delimiter}, br, o)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, err
	}

	o.logger.Debug().
		Str("vendor", vendor.String()).
		Str("format", string(format)).
		Int("lines", res.Diagnostics.Lines).
		Int("parsed", res.Diagnostics.Parsed).
		Int("malformed", res.Diagnostics.Malformed).
		Int("unparsable_timestamps", res.Diagnostics.UnparsableTimestamps).
		Msg("Parsed vendor export")

	return res, nil
}

// sniffFormat peeks at the first non-blank byte without consuming input.
func sniffFormat(br *bufio.Reader) Format {
	head, _ := br.Peek(sniffSize)

	for _, b := range head {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[', '{':
			return FormatJSON
		default:
			return FormatDelimited
		}
	}

	return FormatDelimited
}

func parseDelimited(ctx context.Context, p *delimitedParser, br *bufio.Reader, o *options) (*Result, error) {
	res := &Result{Vendor: p.layout.Vendor()}
	diag := &res.Diagnostics
	lines := &lineReader{br: br, limit: maxLineSize}

	sawContent := false

	for {
		line, tooLong, err := lines.next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read %s export: %w", p.layout.Vendor(), err)
		}

		diag.Lines++

		if diag.Lines%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if tooLong {
			sawContent = true

			collect(res, nil, diag.Lines, fmt.Errorf("%w: line exceeds %d bytes", ErrMalformedRecord, maxLineSize), o.logger)

			continue
		}

		if strings.TrimSpace(line) == "" {
			diag.Skipped++

			continue
		}

		if !sawContent {
			sawContent = true

			if p.isHeader(line) {
				diag.Skipped++

				continue
			}
		}

		rec, err := p.ParseLine(line)
		collect(res, rec, diag.Lines, err, o.logger)
	}

	return res, nil
}

// lineReader yields newline terminated lines of at most limit bytes. The
// content of a longer line is discarded up to its terminator.
type lineReader struct {
	br    *bufio.Reader
	limit int
	buf   []byte
}

// next returns the following line without its line ending, or io.EOF once
// the input is exhausted. tooLong marks a line that exceeded the limit.
func (lr *lineReader) next() (line string, tooLong bool, err error) {
	lr.buf = lr.buf[:0]
	read := false

	for {
		chunk, readErr := lr.br.ReadSlice('\n')
		if len(chunk) > 0 {
			read = true
		}

		if !tooLong {
			if len(lr.buf)+len(chunk) > lr.limit {
				tooLong = true
				lr.buf = lr.buf[:0]
			} else {
				lr.buf = append(lr.buf, chunk...)
			}
		}

		switch {
		case readErr == nil:
			return strings.TrimRight(string(lr.buf), "\r\n"), tooLong, nil
		case errors.Is(readErr, bufio.ErrBufferFull):
			continue
		case errors.Is(readErr, io.EOF):
			if !read {
				return "", false, io.EOF
			}

			return strings.TrimRight(string(lr.buf), "\r\n"), tooLong, nil
		default:
			return "", false, readErr
		}
	}
}

// collect files one parsed line into the result and its diagnostics.
func collect(res *Result, rec models.Record, line int, err error, log logger.Logger) {
	diag := &res.Diagnostics

	if err != nil {
		diag.record(line, err)

		if errors.Is(err, ErrMalformedRecord) {
			log.Warn().
				Str("vendor", res.Vendor.String()).
				Int("line", line).
				Err(err).
				Msg("Skipping malformed log line")

			return
		}

		log.Debug().
			Str("vendor", res.Vendor.String()).
			Int("line", line).
			Err(err).
			Msg("Keeping log line without timestamp")
	}

	if rec == nil {
		return
	}

	diag.Parsed++
	res.Records = append(res.Records, rec)
}

// buildRecord validates the column count and resolves the record.
func buildRecord(layout *models.Layout, fields []string) (models.Record, error) {
	if len(fields) < minColumns {
		return nil, fmt.Errorf("%w: %d columns, need at least %d", ErrMalformedRecord, len(fields), minColumns)
	}

	if len(fields) > layout.Len() {
		return nil, fmt.Errorf("%w: %d columns, %s layout has %d",
			ErrMalformedRecord, len(fields), layout.Vendor(), layout.Len())
	}

	rec, err := models.NewRecord(layout.Vendor(), fields)
	if err != nil {
		return nil, err
	}

	if !rec.HasTimestamp() {
		return rec, fmt.Errorf("%w: date %q time %q", ErrUnparsableTimestamp, rec.Date(), rec.Time())
	}

	return rec, nil
}
