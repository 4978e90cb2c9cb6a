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

// Kaspersky exports carry no severity or category column.
//
//nolint:gochecknoglobals // immutable vendor layout
var kasperskyLayout = newLayout(VendorKaspersky, []Column{
	{ID: ColID, Title: "ID", Kind: KindNumeric},
	{ID: ColDate, Title: "Date"},
	{ID: ColTime, Title: "Time"},
	{ID: ColEvent, Title: "Event"},
	{ID: ColApplication, Title: "Application"},
	{ID: ColResult, Title: "Result"},
	{ID: ColRule, Title: "Rule"},
	{ID: ColDirection, Title: "Direction"},
	{ID: ColProtocol, Title: "Protocol"},
	{ID: ColIPAddress, Title: "IP Address", Kind: KindAddress},
	{ID: ColRemotePort, Title: "Remote Port", Kind: KindNumeric},
	{ID: ColLocalAddress, Title: "Local Address", Kind: KindAddress},
	{ID: ColLocalPort, Title: "Local Port", Kind: KindNumeric},
}, ColIPAddress, ColProtocol, "", ColEvent, "")

// KasperskyLog is one line of a Kaspersky endpoint firewall report.
type KasperskyLog struct {
	record
}

// NewKasperskyLog builds a Kaspersky record from values in layout order.
func NewKasperskyLog(values []string) *KasperskyLog {
	return &KasperskyLog{record: newRecord(kasperskyLayout, values)}
}

func (l *KasperskyLog) Application() string  { return l.Field(ColApplication) }
func (l *KasperskyLog) Result() string       { return l.Field(ColResult) }
func (l *KasperskyLog) Rule() string         { return l.Field(ColRule) }
func (l *KasperskyLog) Direction() string    { return l.Field(ColDirection) }
func (l *KasperskyLog) IPAddress() string    { return l.Field(ColIPAddress) }
func (l *KasperskyLog) RemotePort() string   { return l.Field(ColRemotePort) }
func (l *KasperskyLog) LocalAddress() string { return l.Field(ColLocalAddress) }
func (l *KasperskyLog) LocalPort() string    { return l.Field(ColLocalPort) }

var _ Record = (*KasperskyLog)(nil)
