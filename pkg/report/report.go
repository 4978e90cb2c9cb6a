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

// Package report assembles the full chart and table view of one vendor's records.
package report

import (
	"github.com/carverauto/fwlog/pkg/aggregate"
	"github.com/carverauto/fwlog/pkg/filter"
	"github.com/carverauto/fwlog/pkg/models"
	"github.com/carverauto/fwlog/pkg/parser"
	"github.com/carverauto/fwlog/pkg/table"
)

// Request selects what a Report shows.
type Request struct {
	Params     filter.Params `json:"params"`
	Sort       table.State   `json:"sort"`
	MaxBuckets int           `json:"max_buckets"`
	Typed      bool          `json:"typed"`
}

// Table is the sorted tabular view.
type Table struct {
	Sort    table.State     `json:"sort"`
	Columns []models.Column `json:"columns"`
	Header  []string        `json:"header"`
	Records []models.Record `json:"records"`
}

// Report is everything the presentation layer renders for one vendor.
type Report struct {
	Vendor       models.Vendor       `json:"vendor"`
	Params       filter.Params       `json:"params"`
	Total        int                 `json:"total"`
	MostActive   []models.Bucket     `json:"most_active"`
	Protocols    []models.Bucket     `json:"protocols"`
	DailyTraffic []models.Bucket     `json:"daily_traffic"`
	Events       []models.Bucket     `json:"events"`
	Severity     []models.Bucket     `json:"severity"`
	Hourly       [24]models.Bucket   `json:"hourly"`
	Table        Table               `json:"table"`
	Addresses    []string            `json:"addresses"`
	Diagnostics  *parser.Diagnostics `json:"diagnostics,omitempty"`
}

// Build filters source with req.Params and derives every chart and the sorted
// table from the filtered collection. The address candidates come from the
// unfiltered source so the picker always offers every address.
func Build(vendor models.Vendor, source []models.Record, req Request, diag *parser.Diagnostics) *Report {
	maxBuckets := req.MaxBuckets
	if maxBuckets == 0 {
		maxBuckets = aggregate.DefaultMaxBuckets
	}

	if req.Sort.Column == "" {
		req.Sort.Column = models.ColID
	}

	var opts []table.Option
	if req.Typed {
		opts = append(opts, table.WithTyped())
	}

	filtered := filter.Apply(source, req.Params)

	var columns []models.Column
	if layout := models.LayoutFor(vendor); layout != nil {
		columns = layout.Columns()
	}

	return &Report{
		Vendor:       vendor,
		Params:       req.Params,
		Total:        aggregate.Total(filtered),
		MostActive:   aggregate.TopN(filtered, aggregate.BySourceAddress, maxBuckets),
		Protocols:    aggregate.TopN(filtered, aggregate.ByProtocol, maxBuckets),
		DailyTraffic: aggregate.Sorted(filtered, aggregate.ByDay),
		Events:       aggregate.Sorted(filtered, aggregate.ByEvent),
		Severity:     aggregate.Sorted(filtered, aggregate.BySeverity),
		Hourly:       aggregate.Hourly(filtered, req.Params.MaxDate),
		Table: Table{
			Sort:    req.Sort,
			Columns: columns,
			Header:  table.Header(columns, req.Sort),
			Records: table.SortState(filtered, req.Sort, opts...),
		},
		Addresses:   filter.Addresses(source),
		Diagnostics: diag,
	}
}
