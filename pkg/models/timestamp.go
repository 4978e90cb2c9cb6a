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
	"strings"
	"time"
)

// Layouts used by every vendor export. All timestamps are interpreted as UTC.
const (
	DateLayout     = "02.01.2006"
	TimeLayout     = "15:04:05"
	DateTimeLayout = DateLayout + " " + TimeLayout
)

// ResolveTimestamp combines the verbatim date and time fields of a record.
// A blank time resolves to midnight of the date. The boolean is false when the
// fields do not match the layout, in which case the zero time is returned.
func ResolveTimestamp(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	if date == "" {
		return time.Time{}, false
	}

	if clock == "" {
		ts, err := time.ParseInLocation(DateLayout, date, time.UTC)
		if err != nil {
			return time.Time{}, false
		}

		return ts, true
	}

	ts, err := time.ParseInLocation(DateTimeLayout, date+" "+clock, time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	return ts, true
}
