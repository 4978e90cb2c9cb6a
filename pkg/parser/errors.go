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

package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a line that could not be shaped into the vendor layout.
	// The line is skipped and the batch continues.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrUnparsableTimestamp marks a record whose date and time fields do not match
	// the export layout. The record is kept but never matches a date range.
	ErrUnparsableTimestamp = errors.New("unparsable timestamp")
	// ErrUnsupportedFormat is returned for an unknown input format name.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

const maxSampledErrors = 100

// LineError ties a soft parse failure to its 1-based line (or JSON element) number.
type LineError struct {
	Line int   `json:"line"`
	Err  error `json:"-"`
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Diagnostics summarizes soft failures of one batch for the caller.
type Diagnostics struct {
	Lines                int          `json:"lines"`
	Parsed               int          `json:"parsed"`
	Skipped              int          `json:"skipped"`
	Malformed            int          `json:"malformed"`
	UnparsableTimestamps int          `json:"unparsable_timestamps"`
	Errors               []*LineError `json:"-"`
}

// HasFailures reports whether any line was dropped or kept without a timestamp.
func (d *Diagnostics) HasFailures() bool {
	return d.Malformed > 0 || d.UnparsableTimestamps > 0
}

func (d *Diagnostics) record(line int, err error) {
	switch {
	case errors.Is(err, ErrMalformedRecord):
		d.Malformed++
	case errors.Is(err, ErrUnparsableTimestamp):
		d.UnparsableTimestamps++
	}

	if len(d.Errors) < maxSampledErrors {
		d.Errors = append(d.Errors, &LineError{Line: line, Err: err})
	}
}
