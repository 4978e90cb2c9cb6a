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

// Package table orders records for the tabular view and tracks the active sort column.
package table

import (
	"math"
	"net/netip"
	"sort"
	"strconv"
	"strings"

	"github.com/carverauto/fwlog/pkg/models"
)

// State is the active sort column and its direction.
type State struct {
	Column    models.ColumnID  `json:"column"`
	Direction models.Direction `json:"direction"`
}

// ToggleOrSet applies a click on a column header. Clicking the active column
// flips the direction; clicking another column selects it ascending.
func ToggleOrSet(current State, clicked models.ColumnID) State {
	if current.Column == clicked {
		return State{Column: clicked, Direction: current.Direction.Toggle()}
	}

	return State{Column: clicked, Direction: models.Ascending}
}

type options struct {
	typed bool
}

// Option configures Sort.
type Option func(*options)

// WithTyped compares numeric columns as numbers and address columns as IPs
// instead of the default plain string comparison.
func WithTyped() Option {
	return func(o *options) {
		o.typed = true
	}
}

type lessFunc func(a, b string) bool

func textLess(a, b string) bool { return a < b }

// parseNumber rejects NaN and infinities so numeric order stays a strict weak order.
func parseNumber(s string) (float64, bool) {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}

	return x, true
}

func numericLess(a, b string) bool {
	x, okX := parseNumber(a)
	y, okY := parseNumber(b)

	switch {
	case okX && okY:
		return x < y
	case okX:
		return true
	case okY:
		return false
	default:
		return a < b
	}
}

func addressLess(a, b string) bool {
	x, errX := netip.ParseAddr(strings.TrimSpace(a))
	y, errY := netip.ParseAddr(strings.TrimSpace(b))

	switch {
	case errX == nil && errY == nil:
		return x.Less(y)
	case errX == nil:
		return true
	case errY == nil:
		return false
	default:
		return a < b
	}
}

func comparator(records []models.Record, column models.ColumnID, o options) lessFunc {
	if !o.typed || len(records) == 0 {
		return textLess
	}

	c, ok := records[0].Layout().Column(column)
	if !ok {
		return textLess
	}

	switch c.Kind {
	case models.KindNumeric:
		return numericLess
	case models.KindAddress:
		return addressLess
	case models.KindText:
		return textLess
	default:
		return textLess
	}
}

// Sort returns a new slice of records ordered by column. The sort is stable,
// and descending is the mirror of ascending, so equal values keep their
// relative input order in both directions. The input slice is not modified.
func Sort(records []models.Record, column models.ColumnID, direction models.Direction, opts ...Option) []models.Record {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]models.Record, len(records))
	copy(out, records)

	less := comparator(out, column, o)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Field(column), out[j].Field(column)
		if direction == models.Descending {
			return less(b, a)
		}

		return less(a, b)
	})

	return out
}

// SortState is Sort driven by a State.
func SortState(records []models.Record, s State, opts ...Option) []models.Record {
	return Sort(records, s.Column, s.Direction, opts...)
}

// Header returns the column titles with the direction symbol appended to the active column.
func Header(columns []models.Column, s State) []string {
	out := make([]string, len(columns))

	for i, c := range columns {
		out[i] = c.Title
		if c.ID == s.Column {
			out[i] += " " + s.Direction.Symbol()
		}
	}

	return out
}

// AddressColumns lists the columns of layout whose cells hold IP addresses.
func AddressColumns(layout *models.Layout) []models.ColumnID {
	out := make([]models.ColumnID, 0)

	for _, c := range layout.Columns() {
		if c.Kind == models.KindAddress {
			out = append(out, c.ID)
		}
	}

	return out
}

// AddressAt returns the IP held by the cell of r at column, if that column is an
// address column and the cell parses. It is the hook for per-cell address lookups.
func AddressAt(r models.Record, column models.ColumnID) (netip.Addr, bool) {
	c, ok := r.Layout().Column(column)
	if !ok || c.Kind != models.KindAddress {
		return netip.Addr{}, false
	}

	addr, err := netip.ParseAddr(strings.TrimSpace(r.Field(column)))
	if err != nil {
		return netip.Addr{}, false
	}

	return addr, true
}
