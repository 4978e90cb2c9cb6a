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

// Package filter narrows a record collection by date range and source address.
package filter

import (
	"sort"
	"time"

	"github.com/carverauto/fwlog/pkg/models"
)

// NoAddress is the "no filter" value of the address parameter.
const NoAddress = "None"

// Params is the filter surface offered to the presentation layer.
// MinDate and MaxDate bound an inclusive interval; use WithMinDate and
// WithMaxDate so that both are normalized to day boundaries.
type Params struct {
	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`
	Address string    `json:"address"`
}

// DefaultParams spans 1 Jan 2000 to the end of the day containing now, unfiltered by address.
func DefaultParams(now time.Time) Params {
	return Params{
		MinDate: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		MaxDate: EndOfDay(now),
		Address: NoAddress,
	}
}

// WithMinDate returns p with the lower bound set to the start of day's calendar day.
func (p Params) WithMinDate(day time.Time) Params {
	p.MinDate = StartOfDay(day)
	return p
}

// WithMaxDate returns p with the upper bound set to 23:59:59 of day's calendar day,
// so that "until 10 May" includes all of 10 May.
func (p Params) WithMaxDate(day time.Time) Params {
	p.MaxDate = EndOfDay(day)
	return p
}

// WithAddress returns p filtered to one exact source address. "" and NoAddress clear the filter.
func (p Params) WithAddress(address string) Params {
	if address == "" {
		address = NoAddress
	}

	p.Address = address

	return p
}

// AddressFiltered reports whether p restricts the source address.
func (p Params) AddressFiltered() bool {
	return p.Address != "" && p.Address != NoAddress
}

// StartOfDay truncates t to 00:00:00 UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay moves t to 23:59:59 UTC of its calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}

// InRange reports whether r's timestamp lies within [minDate, maxDate].
// Records without a timestamp are never in range.
func InRange(r models.Record, minDate, maxDate time.Time) bool {
	if !r.HasTimestamp() {
		return false
	}

	ts := r.Timestamp()

	return !ts.Before(minDate) && !ts.After(maxDate)
}

// Matches reports whether r passes every predicate of p.
func (p Params) Matches(r models.Record) bool {
	if !InRange(r, p.MinDate, p.MaxDate) {
		return false
	}

	if p.AddressFiltered() && r.SourceAddress() != p.Address {
		return false
	}

	return true
}

// Apply returns the records matching p in their original order.
// The input slice is never modified; the result is always a new slice.
func Apply(records []models.Record, p Params) []models.Record {
	out := make([]models.Record, 0, len(records))

	for _, r := range records {
		if p.Matches(r) {
			out = append(out, r)
		}
	}

	return out
}

// Addresses returns the distinct non-empty source addresses of records, sorted.
// This is the candidate list for the address filter.
func Addresses(records []models.Record) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, r := range records {
		addr := r.SourceAddress()
		if addr == "" {
			continue
		}

		if _, ok := seen[addr]; ok {
			continue
		}

		seen[addr] = struct{}{}
		out = append(out, addr)
	}

	sort.Strings(out)

	return out
}
