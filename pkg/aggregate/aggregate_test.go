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

package aggregate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fwlog/pkg/models"
)

func dlink(id, date, clock, severity, protocol, src, event string) models.Record {
	values := make([]string, 15)
	values[0], values[1], values[2] = id, date, clock
	values[3], values[7], values[10], values[14] = severity, protocol, src, event

	return models.NewDLinkLog(values)
}

func exampleRecords() []models.Record {
	return []models.Record{
		dlink("1", "10.05.2019", "12:00:00", "notice", "TCP", "10.0.0.1", "conn_open"),
		dlink("2", "10.05.2019", "13:00:00", "warning", "UDP", "10.0.0.2", "conn_close"),
		dlink("3", "11.05.2019", "09:00:00", "notice", "TCP", "10.0.0.1", "conn_open"),
	}
}

func TestTopNExample(t *testing.T) {
	got := TopN(exampleRecords(), ByProtocol, DefaultMaxBuckets)

	assert.Equal(t, []models.Bucket{{Key: "TCP", Count: 2}, {Key: "UDP", Count: 1}}, got)
}

func TestTopNTiesKeepFirstSeenOrder(t *testing.T) {
	records := []models.Record{
		dlink("1", "10.05.2019", "12:00:00", "", "ICMP", "", ""),
		dlink("2", "10.05.2019", "12:00:00", "", "UDP", "", ""),
		dlink("3", "10.05.2019", "12:00:00", "", "TCP", "", ""),
		dlink("4", "10.05.2019", "12:00:00", "", "TCP", "", ""),
	}

	got := TopN(records, ByProtocol, 0)
	assert.Equal(t, []models.Bucket{
		{Key: "TCP", Count: 2},
		{Key: "ICMP", Count: 1},
		{Key: "UDP", Count: 1},
	}, got)
}

func TestTopNTruncation(t *testing.T) {
	records := make([]models.Record, 0)

	// source i appears i times, 20 distinct sources
	for i := 1; i <= 20; i++ {
		for n := 0; n < i; n++ {
			records = append(records, dlink("x", "10.05.2019", "12:00:00", "", "TCP", fmt.Sprintf("10.0.0.%d", i), ""))
		}
	}

	got := TopN(records, BySourceAddress, DefaultMaxBuckets)
	require.Len(t, got, DefaultMaxBuckets)
	assert.Equal(t, models.Bucket{Key: "10.0.0.20", Count: 20}, got[0])
	assert.Equal(t, models.Bucket{Key: "10.0.0.6", Count: 6}, got[DefaultMaxBuckets-1])

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
	}

	assert.Len(t, TopN(records, BySourceAddress, -1), 20)
}

func TestSorted(t *testing.T) {
	tests := []struct {
		name string
		key  KeyFunc
		want []models.Bucket
	}{
		{
			name: "events",
			key:  ByEvent,
			want: []models.Bucket{{Key: "conn_close", Count: 1}, {Key: "conn_open", Count: 2}},
		},
		{
			name: "severity",
			key:  BySeverity,
			want: []models.Bucket{{Key: "notice", Count: 2}, {Key: "warning", Count: 1}},
		},
		{
			name: "daily",
			key:  ByDay,
			want: []models.Bucket{{Key: "2019-05-10", Count: 2}, {Key: "2019-05-11", Count: 1}},
		},
		{
			name: "hour keys are zero padded",
			key:  ByHour,
			want: []models.Bucket{{Key: "09", Count: 1}, {Key: "12", Count: 1}, {Key: "13", Count: 1}},
		},
		{
			name: "column",
			key:  ByColumn(models.ColSrcIP),
			want: []models.Bucket{{Key: "10.0.0.1", Count: 2}, {Key: "10.0.0.2", Count: 1}},
		},
		{
			name: "all keys empty",
			key:  ByCategory,
			want: []models.Bucket{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sorted(exampleRecords(), tt.key))
		})
	}
}

func TestSparseness(t *testing.T) {
	records := append(exampleRecords(),
		dlink("4", "10.05.2019", "14:00:00", "", "", "", ""),
		dlink("5", "bad", "", "", "", "", ""),
	)

	for _, key := range []KeyFunc{ByProtocol, BySeverity, ByEvent, BySourceAddress, ByDay, ByHour} {
		for _, b := range Sorted(records, key) {
			assert.NotEmpty(t, b.Key)
			assert.Positive(t, b.Count)
		}
	}
}

func TestHourly(t *testing.T) {
	records := append(exampleRecords(),
		dlink("4", "11.05.2019", "09:30:00", "", "TCP", "", ""),
		dlink("5", "11.05.2019", "23:59:59", "", "TCP", "", ""),
		dlink("6", "", "", "", "TCP", "", ""),
	)

	got := Hourly(records, time.Date(2019, time.May, 11, 23, 59, 59, 0, time.UTC))

	require.Len(t, got, 24)

	total := 0

	for h, b := range got {
		assert.Equal(t, fmt.Sprintf("%02d", h), b.Key)

		total += b.Count
	}

	assert.Equal(t, 2, got[9].Count)
	assert.Equal(t, 1, got[23].Count)
	assert.Zero(t, got[12].Count)
	assert.Equal(t, 3, total)
}

func TestHourlyEmpty(t *testing.T) {
	got := Hourly(nil, time.Date(2019, time.May, 11, 23, 59, 59, 0, time.UTC))

	for _, b := range got {
		assert.Zero(t, b.Count)
	}

	assert.Equal(t, "00", got[0].Key)
	assert.Equal(t, "23", got[23].Key)
}

func TestAggregationDoesNotMutateInput(t *testing.T) {
	records := exampleRecords()
	before := make([]models.Record, len(records))
	copy(before, records)

	_ = TopN(records, ByProtocol, 1)
	_ = Sorted(records, ByEvent)
	_ = Hourly(records, time.Now())

	assert.Equal(t, before, records)
	assert.Equal(t, 3, Total(records))
	assert.Zero(t, Total(nil))
}
