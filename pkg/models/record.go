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

package models

import (
	"encoding/json"
	"time"
)

// Record is the capability set every vendor log line exposes. Filtering,
// aggregation and sorting only ever talk to records through this interface.
// Records are read-only once constructed.
type Record interface {
	Vendor() Vendor
	Layout() *Layout
	ID() string
	Date() string
	Time() string
	// Timestamp is resolved once from Date and Time.
	Timestamp() time.Time
	// HasTimestamp is false when Date and Time could not be resolved. Such
	// records never satisfy a date range.
	HasTimestamp() bool
	SourceAddress() string
	Protocol() string
	Severity() string
	Event() string
	Category() string
	// Field returns the textual value of any column, "" for unknown columns.
	Field(id ColumnID) string
	Values() []string
}

// record is the layout-driven storage shared by all vendor variants.
type record struct {
	layout       *Layout
	values       []string
	timestamp    time.Time
	hasTimestamp bool
}

func newRecord(layout *Layout, values []string) record {
	stored := make([]string, layout.Len())
	copy(stored, values)

	r := record{layout: layout, values: stored}
	r.timestamp, r.hasTimestamp = ResolveTimestamp(r.Field(ColDate), r.Field(ColTime))

	return r
}

func (r *record) Vendor() Vendor {
	return r.layout.vendor
}

func (r *record) Layout() *Layout {
	return r.layout
}

func (r *record) Field(id ColumnID) string {
	if id == "" {
		return ""
	}

	i := r.layout.Index(id)
	if i < 0 {
		return ""
	}

	return r.values[i]
}

// Values returns a copy of the raw column values in layout order.
func (r *record) Values() []string {
	return append([]string(nil), r.values...)
}

func (r *record) ID() string            { return r.Field(ColID) }
func (r *record) Date() string          { return r.Field(ColDate) }
func (r *record) Time() string          { return r.Field(ColTime) }
func (r *record) Timestamp() time.Time  { return r.timestamp }
func (r *record) HasTimestamp() bool    { return r.hasTimestamp }
func (r *record) SourceAddress() string { return r.Field(r.layout.source) }
func (r *record) Protocol() string      { return r.Field(r.layout.protocol) }
func (r *record) Severity() string      { return r.Field(r.layout.severity) }
func (r *record) Event() string         { return r.Field(r.layout.event) }
func (r *record) Category() string      { return r.Field(r.layout.category) }

// MarshalJSON renders the record as an object keyed by column id.
func (r *record) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(r.values)+1)
	for i, c := range r.layout.columns {
		out[string(c.ID)] = r.values[i]
	}

	if r.HasTimestamp() {
		out["timestamp"] = r.timestamp.Format(time.RFC3339)
	}

	return json.Marshal(out)
}

// NewRecord builds the vendor specific record for values given in layout order.
// Missing trailing values are treated as blank; extra values are dropped.
func NewRecord(v Vendor, values []string) (Record, error) {
	switch v {
	case VendorDLink:
		return NewDLinkLog(values), nil
	case VendorTPLink:
		return NewTPLinkLog(values), nil
	case VendorKaspersky:
		return NewKasperskyLog(values), nil
	default:
		return nil, ErrUnknownVendor
	}
}
