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

// Bucket is one (key, count) pair produced by aggregation.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Direction is the sort order of the table view.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}

	return Ascending
}

// Symbol is the arrow appended to the active column header.
func (d Direction) Symbol() string {
	if d == Descending {
		return "↓"
	}

	return "↑"
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}

	return "asc"
}

// MarshalText renders the direction as "asc" or "desc".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
