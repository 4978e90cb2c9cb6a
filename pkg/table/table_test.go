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

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fwlog/pkg/models"
)

func dlink(id, protocol, src, srcPort string) models.Record {
	values := make([]string, 13)
	values[0], values[1], values[2] = id, "10.05.2019", "12:00:00"
	values[7], values[10], values[12] = protocol, src, srcPort

	return models.NewDLinkLog(values)
}

func ids(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID())
	}

	return out
}

func TestToggleOrSet(t *testing.T) {
	tests := []struct {
		name    string
		current State
		clicked models.ColumnID
		want    State
	}{
		{
			name:    "same column ascending flips",
			current: State{Column: models.ColID, Direction: models.Ascending},
			clicked: models.ColID,
			want:    State{Column: models.ColID, Direction: models.Descending},
		},
		{
			name:    "same column descending flips",
			current: State{Column: models.ColID, Direction: models.Descending},
			clicked: models.ColID,
			want:    State{Column: models.ColID, Direction: models.Ascending},
		},
		{
			name:    "new column resets to ascending",
			current: State{Column: models.ColID, Direction: models.Descending},
			clicked: models.ColProtocol,
			want:    State{Column: models.ColProtocol, Direction: models.Ascending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToggleOrSet(tt.current, tt.clicked))
		})
	}

	s := State{Column: models.ColID}
	assert.Equal(t, s, ToggleOrSet(ToggleOrSet(s, models.ColID), models.ColID))
}

func TestSortLexicographic(t *testing.T) {
	records := []models.Record{
		dlink("10", "UDP", "10.0.0.10", "80"),
		dlink("9", "TCP", "10.0.0.9", "443"),
		dlink("2", "ICMP", "10.0.0.2", "8080"),
	}

	assert.Equal(t, []string{"10", "2", "9"}, ids(Sort(records, models.ColID, models.Ascending)))
	assert.Equal(t, []string{"9", "2", "10"}, ids(Sort(records, models.ColID, models.Descending)))
	assert.Equal(t, []string{"2", "9", "10"}, ids(Sort(records, models.ColProtocol, models.Ascending)))
}

func TestSortTyped(t *testing.T) {
	records := []models.Record{
		dlink("10", "UDP", "10.0.0.10", "80"),
		dlink("9", "TCP", "10.0.0.9", "443"),
		dlink("n/a", "TCP", "unknown", ""),
		dlink("2", "ICMP", "10.0.0.2", "8080"),
	}

	tests := []struct {
		name      string
		column    models.ColumnID
		direction models.Direction
		want      []string
	}{
		{"numeric ascending", models.ColID, models.Ascending, []string{"2", "9", "10", "n/a"}},
		{"numeric descending", models.ColID, models.Descending, []string{"n/a", "10", "9", "2"}},
		{"address ascending", models.ColSrcIP, models.Ascending, []string{"2", "9", "10", "n/a"}},
		{"port ascending", models.ColSrcPort, models.Ascending, []string{"10", "9", "2", "n/a"}},
		{"text column unaffected", models.ColProtocol, models.Ascending, []string{"2", "9", "n/a", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(records, tt.column, tt.direction, WithTyped())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSortTypedNonFiniteNumbers(t *testing.T) {
	records := []models.Record{
		dlink("a", "TCP", "", "30"),
		dlink("b", "TCP", "", "NaN"),
		dlink("c", "TCP", "", "10"),
		dlink("d", "TCP", "", "Inf"),
		dlink("e", "TCP", "", "20"),
	}

	got := Sort(records, models.ColSrcPort, models.Ascending, WithTyped())
	assert.Equal(t, []string{"c", "e", "a", "d", "b"}, ids(got))

	got = Sort(records, models.ColSrcPort, models.Descending, WithTyped())
	assert.Equal(t, []string{"b", "d", "a", "e", "c"}, ids(got))
}

func TestSortStable(t *testing.T) {
	records := []models.Record{
		dlink("1", "TCP", "", ""),
		dlink("2", "UDP", "", ""),
		dlink("3", "TCP", "", ""),
		dlink("4", "UDP", "", ""),
	}

	assert.Equal(t, []string{"1", "3", "2", "4"}, ids(Sort(records, models.ColProtocol, models.Ascending)))
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(Sort(records, models.ColProtocol, models.Descending)))
}

func TestSortReversalOfDistinctValues(t *testing.T) {
	records := []models.Record{
		dlink("c", "", "", ""),
		dlink("a", "", "", ""),
		dlink("d", "", "", ""),
		dlink("b", "", "", ""),
	}

	asc := ids(Sort(records, models.ColID, models.Ascending))
	desc := ids(Sort(records, models.ColID, models.Descending))

	require.Len(t, desc, len(asc))

	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	records := []models.Record{dlink("2", "", "", ""), dlink("1", "", "", "")}

	got := Sort(records, models.ColID, models.Ascending)

	assert.Equal(t, []string{"1", "2"}, ids(got))
	assert.Equal(t, []string{"2", "1"}, ids(records))
	assert.Empty(t, Sort(nil, models.ColID, models.Ascending, WithTyped()))
	assert.Equal(t, ids(got), ids(SortState(records, State{Column: models.ColID})))
}

func TestHeader(t *testing.T) {
	columns := []models.Column{
		{ID: models.ColID, Title: "ID"},
		{ID: models.ColDate, Title: "Date"},
	}

	assert.Equal(t, []string{"ID ↑", "Date"}, Header(columns, State{Column: models.ColID}))
	assert.Equal(t, []string{"ID", "Date ↓"}, Header(columns, State{Column: models.ColDate, Direction: models.Descending}))
	assert.Equal(t, []string{"ID", "Date"}, Header(columns, State{}))
}

func TestAddressColumns(t *testing.T) {
	assert.Equal(t, []models.ColumnID{
		models.ColSrcIP, models.ColDstIP, models.ColConnNewSrcIP, models.ColConnNewDstIP,
	}, AddressColumns(models.LayoutFor(models.VendorDLink)))

	assert.Equal(t, []models.ColumnID{models.ColIPAddress, models.ColLocalAddress},
		AddressColumns(models.LayoutFor(models.VendorKaspersky)))
}

func TestAddressAt(t *testing.T) {
	r := dlink("1", "TCP", "192.168.1.5", "80")

	addr, ok := AddressAt(r, models.ColSrcIP)
	require.True(t, ok)
	assert.Equal(t, "192.168.1.5", addr.String())

	_, ok = AddressAt(r, models.ColProtocol)
	assert.False(t, ok)

	_, ok = AddressAt(r, models.ColDstIP)
	assert.False(t, ok)
}
