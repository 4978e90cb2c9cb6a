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

// Package aggregate reduces record collections into keyed counts for charting.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/carverauto/fwlog/pkg/models"
)

// DefaultMaxBuckets is the cap applied to the top-N charts.
const DefaultMaxBuckets = 15

const (
	hoursPerDay = 24
	dayKey      = "2006-01-02"
)

// KeyFunc extracts the grouping key of a record. An empty key excludes the record.
type KeyFunc func(models.Record) string

// ByProtocol groups by transport protocol.
func ByProtocol(r models.Record) string { return r.Protocol() }

// BySeverity groups by severity level.
func BySeverity(r models.Record) string { return r.Severity() }

// ByEvent groups by event name.
func ByEvent(r models.Record) string { return r.Event() }

// BySourceAddress groups by source address.
func BySourceAddress(r models.Record) string { return r.SourceAddress() }

// ByCategory groups by log category.
func ByCategory(r models.Record) string { return r.Category() }

// ByHour groups by hour of day, "00" to "23".
func ByHour(r models.Record) string {
	if !r.HasTimestamp() {
		return ""
	}

	return fmt.Sprintf("%02d", r.Timestamp().Hour())
}

// ByDay groups by calendar day in "2006-01-02" form so keys sort chronologically.
func ByDay(r models.Record) string {
	if !r.HasTimestamp() {
		return ""
	}

	return r.Timestamp().Format(dayKey)
}

// ByColumn groups by the textual value of an arbitrary column.
func ByColumn(id models.ColumnID) KeyFunc {
	return func(r models.Record) string { return r.Field(id) }
}

// count tallies records per key and remembers the order keys were first seen.
func count(records []models.Record, key KeyFunc) []models.Bucket {
	index := make(map[string]int)
	buckets := make([]models.Bucket, 0)

	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}

		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, models.Bucket{Key: k})
		}

		buckets[i].Count++
	}

	return buckets
}

// TopN returns the maxBuckets most frequent keys, count-descending.
// Equal counts keep the order in which the keys first appeared.
// A maxBuckets of zero or less disables truncation.
func TopN(records []models.Record, key KeyFunc, maxBuckets int) []models.Bucket {
	buckets := count(records, key)

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	if maxBuckets > 0 && len(buckets) > maxBuckets {
		buckets = buckets[:maxBuckets]
	}

	return buckets
}

// Sorted returns one bucket per distinct key, key-ascending and untruncated.
func Sorted(records []models.Record, key KeyFunc) []models.Bucket {
	buckets := count(records, key)

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})

	return buckets
}

// Hourly returns the 24 hour-of-day buckets for the calendar day of endOfDay.
// Every hour is present, zero counts included. Records outside that day are ignored.
func Hourly(records []models.Record, endOfDay time.Time) [hoursPerDay]models.Bucket {
	var out [hoursPerDay]models.Bucket

	for h := range out {
		out[h].Key = fmt.Sprintf("%02d", h)
	}

	y, m, d := endOfDay.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := time.Date(y, m, d, 23, 59, 59, 0, time.UTC)

	for _, r := range records {
		if !r.HasTimestamp() {
			continue
		}

		ts := r.Timestamp()
		if ts.Before(start) || ts.After(end) {
			continue
		}

		out[ts.Hour()].Count++
	}

	return out
}

// Total is the number of records in the collection.
func Total(records []models.Record) int {
	return len(records)
}
