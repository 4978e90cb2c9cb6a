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
var dlinkLayout = newLayout(VendorDLink, []Column{
	{ID: ColID, Title: "ID", Kind: KindNumeric},
	{ID: ColDate, Title: "Date"},
	{ID: ColTime, Title: "Time"},
	{ID: ColSeverity, Title: "Severity"},
	{ID: ColCategory, Title: "Category"},
	{ID: ColCategoryID, Title: "ID of category", Kind: KindNumeric},
	{ID: ColRule, Title: "Rule"},
	{ID: ColProtocol, Title: "Protocol"},
	{ID: ColSrcIf, Title: "Source If"},
	{ID: ColDstIf, Title: "Destination If"},
	{ID: ColSrcIP, Title: "Source IP", Kind: KindAddress},
	{ID: ColDstIP, Title: "Destination IP", Kind: KindAddress},
	{ID: ColSrcPort, Title: "Source Port", Kind: KindNumeric},
	{ID: ColDstPort, Title: "Destination Port", Kind: KindNumeric},
	{ID: ColEvent, Title: "Event"},
	{ID: ColAction, Title: "Action"},
	{ID: ColConn, Title: "Connection"},
	{ID: ColConnNewSrcIP, Title: "Connection New Src IP", Kind: KindAddress},
	{ID: ColConnNewSrcPort, Title: "Connection New Src Port", Kind: KindNumeric},
	{ID: ColConnNewDstIP, Title: "Connection New Dst IP", Kind: KindAddress},
	{ID: ColConnNewDstPort, Title: "Connection New Dst Port", Kind: KindNumeric},
	{ID: ColOrigSent, Title: "OrigSent", Kind: KindNumeric},
	{ID: ColTermSent, Title: "TermSent", Kind: KindNumeric},
	{ID: ColConnTime, Title: "Connection Time", Kind: KindNumeric},
}, ColSrcIP, ColProtocol, ColSeverity, ColEvent, ColCategory)

// DLinkLog is one line of a D-Link DFL firewall export.
type DLinkLog struct {
	record
}

// NewDLinkLog builds a D-Link record from values in layout order.
func NewDLinkLog(values []string) *DLinkLog {
	return &DLinkLog{record: newRecord(dlinkLayout, values)}
}

func (l *DLinkLog) CategoryID() string     { return l.Field(ColCategoryID) }
func (l *DLinkLog) Rule() string           { return l.Field(ColRule) }
func (l *DLinkLog) SrcIf() string          { return l.Field(ColSrcIf) }
func (l *DLinkLog) DstIf() string          { return l.Field(ColDstIf) }
func (l *DLinkLog) SrcIP() string          { return l.Field(ColSrcIP) }
func (l *DLinkLog) DstIP() string          { return l.Field(ColDstIP) }
func (l *DLinkLog) SrcPort() string        { return l.Field(ColSrcPort) }
func (l *DLinkLog) DstPort() string        { return l.Field(ColDstPort) }
func (l *DLinkLog) Action() string         { return l.Field(ColAction) }
func (l *DLinkLog) Conn() string           { return l.Field(ColConn) }
func (l *DLinkLog) ConnNewSrcIP() string   { return l.Field(ColConnNewSrcIP) }
func (l *DLinkLog) ConnNewSrcPort() string { return l.Field(ColConnNewSrcPort) }
func (l *DLinkLog) ConnNewDstIP() string   { return l.Field(ColConnNewDstIP) }
func (l *DLinkLog) ConnNewDstPort() string { return l.Field(ColConnNewDstPort) }
func (l *DLinkLog) OrigSent() string       { return l.Field(ColOrigSent) }
func (l *DLinkLog) TermSent() string       { return l.Field(ColTermSent) }
func (l *DLinkLog) ConnTime() string       { return l.Field(ColConnTime) }

var _ Record = (*DLinkLog)(nil)
