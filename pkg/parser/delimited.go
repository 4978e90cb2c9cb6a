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

package parser

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/carverauto/fwlog/pkg/models"
)

type delimitedParser struct {
	layout    *models.Layout
	delimiter rune
}

func (p *delimitedParser) Vendor() models.Vendor {
	return p.layout.Vendor()
}

func (p *delimitedParser) ParseLine(line string) (models.Record, error) {
	fields, err := p.split(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	return buildRecord(p.layout, fields)
}

// isHeader reports whether line is the column title row of an export.
func (p *delimitedParser) isHeader(line string) bool {
	fields, err := p.split(line)
	if err != nil || len(fields) == 0 {
		return false
	}

	return strings.EqualFold(fields[0], string(models.ColID))
}

// split tokenizes a single line with RFC 4180 quoting. Records are line
// bounded: a quoted field cannot contain a line break, and an unterminated
// quote only costs its own line.
func (p *delimitedParser) split(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = p.delimiter
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	fields, err := r.Read()
	if err != nil {
		return nil, err
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	return fields, nil
}
