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

// ColumnID names one column of a vendor export. It doubles as the JSON key
// for JSON exports and as the sort key of the table view.
type ColumnID string

const (
	ColID             ColumnID = "id"
	ColDate           ColumnID = "date"
	ColTime           ColumnID = "time"
	ColSeverity       ColumnID = "severity"
	ColCategory       ColumnID = "category"
	ColCategoryID     ColumnID = "category_id"
	ColRule           ColumnID = "rule"
	ColProtocol       ColumnID = "protocol"
	ColSrcIf          ColumnID = "src_if"
	ColDstIf          ColumnID = "dst_if"
	ColSrcIP          ColumnID = "src_ip"
	ColDstIP          ColumnID = "dst_ip"
	ColSrcPort        ColumnID = "src_port"
	ColDstPort        ColumnID = "dst_port"
	ColEvent          ColumnID = "event"
	ColAction         ColumnID = "action"
	ColConn           ColumnID = "conn"
	ColConnNewSrcIP   ColumnID = "conn_new_src_ip"
	ColConnNewSrcPort ColumnID = "conn_new_src_port"
	ColConnNewDstIP   ColumnID = "conn_new_dst_ip"
	ColConnNewDstPort ColumnID = "conn_new_dst_port"
	ColOrigSent       ColumnID = "orig_sent"
	ColTermSent       ColumnID = "term_sent"
	ColConnTime       ColumnID = "conn_time"
	ColApplication    ColumnID = "application"
	ColResult         ColumnID = "result"
	ColDirection      ColumnID = "direction"
	ColIPAddress      ColumnID = "ip_address"
	ColRemotePort     ColumnID = "remote_port"
	ColLocalAddress   ColumnID = "local_address"
	ColLocalPort      ColumnID = "local_port"
)

// ColumnKind describes what a column semantically holds. Values are always
// stored as text; the kind only matters for the typed sort option.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
	KindAddress
)

func (k ColumnKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindAddress:
		return "address"
	case KindText:
		return "text"
	default:
		return "text"
	}
}

// Column is one entry of a vendor layout.
type Column struct {
	ID    ColumnID   `json:"id"`
	Title string     `json:"title"`
	Kind  ColumnKind `json:"-"`
}

// Layout is the ordered column set of one vendor export plus the columns that
// back the shared Record accessors. An empty accessor column means the vendor
// does not log that dimension.
type Layout struct {
	vendor   Vendor
	columns  []Column
	index    map[ColumnID]int
	source   ColumnID
	protocol ColumnID
	severity ColumnID
	event    ColumnID
	category ColumnID
}

func newLayout(vendor Vendor, columns []Column, source, protocol, severity, event, category ColumnID) *Layout {
	index := make(map[ColumnID]int, len(columns))
	for i, c := range columns {
		index[c.ID] = i
	}

	return &Layout{
		vendor:   vendor,
		columns:  columns,
		index:    index,
		source:   source,
		protocol: protocol,
		severity: severity,
		event:    event,
		category: category,
	}
}

// Vendor returns the vendor this layout describes.
func (l *Layout) Vendor() Vendor {
	return l.vendor
}

// Columns returns a copy of the ordered columns.
func (l *Layout) Columns() []Column {
	return append([]Column(nil), l.columns...)
}

// Len is the number of columns in the layout.
func (l *Layout) Len() int {
	return len(l.columns)
}

// Index returns the position of id, or -1 if the vendor has no such column.
func (l *Layout) Index(id ColumnID) int {
	if i, ok := l.index[id]; ok {
		return i
	}

	return -1
}

// Column looks up a column definition by id.
func (l *Layout) Column(id ColumnID) (Column, bool) {
	i := l.Index(id)
	if i < 0 {
		return Column{}, false
	}

	return l.columns[i], true
}

// SourceColumn is the column used for address filtering and top talkers.
func (l *Layout) SourceColumn() ColumnID {
	return l.source
}

// LayoutFor returns the column layout of a vendor, or nil for an unknown vendor.
func LayoutFor(v Vendor) *Layout {
	switch v {
	case VendorDLink:
		return dlinkLayout
	case VendorTPLink:
		return tplinkLayout
	case VendorKaspersky:
		return kasperskyLayout
	default:
		return nil
	}
}
