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

//nolint:gochecknoglobals // immutable vendor layout
var tplinkLayout = newLayout(VendorTPLink, []Column{
	{ID: ColID, Title: "ID", Kind: KindNumeric},
	{ID: ColDate, Title: "Date"},
	{ID: ColTime, Title: "Time"},
	{ID: ColCategory, Title: "Type"},
	{ID: ColSeverity, Title: "Level"},
	{ID: ColEvent, Title: "Content"},
	{ID: ColProtocol, Title: "Protocol"},
	{ID: ColSrcIP, Title: "IP Address", Kind: KindAddress},
	{ID: ColDstIP, Title: "Destination IP", Kind: KindAddress},
	{ID: ColSrcPort, Title: "Source Port", Kind: KindNumeric},
	{ID: ColDstPort, Title: "Destination Port", Kind: KindNumeric},
	{ID: ColAction, Title: "Action"},
}, ColSrcIP, ColProtocol, ColSeverity, ColEvent, ColCategory)

// TPLinkLog is one line of a TP-Link router system log export.
type TPLinkLog struct {
	record
}

// NewTPLinkLog builds a TP-Link record from values in layout order.
func NewTPLinkLog(values []string) *TPLinkLog {
	return &TPLinkLog{record: newRecord(tplinkLayout, values)}
}

func (l *TPLinkLog) IPAddress() string { return l.Field(ColSrcIP) }
func (l *TPLinkLog) DstIP() string     { return l.Field(ColDstIP) }
func (l *TPLinkLog) SrcPort() string   { return l.Field(ColSrcPort) }
func (l *TPLinkLog) DstPort() string   { return l.Field(ColDstPort) }
func (l *TPLinkLog) Action() string    { return l.Field(ColAction) }

var _ Record = (*TPLinkLog)(nil)
