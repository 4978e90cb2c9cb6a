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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/carverauto/fwlog/pkg/models"
)

//nolint:gochecknoglobals // parser pool is safe for concurrent use
var jsonParsers fastjson.ParserPool

// parseJSON handles exports served as a JSON array of objects keyed by column id.
// A single top-level object is treated as a one element array.
func parseJSON(ctx context.Context, layout *models.Layout, r io.Reader, o *options) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s export: %w", layout.Vendor(), err)
	}

	res := &Result{Vendor: layout.Vendor()}

	p := jsonParsers.Get()
	defer jsonParsers.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		res.Diagnostics.Lines = 1
		collect(res, nil, 1, fmt.Errorf("%w: %w", ErrMalformedRecord, err), o.logger)

		return res, nil
	}

	elements := []*fastjson.Value{v}
	if v.Type() == fastjson.TypeArray {
		elements, _ = v.Array()
	}

	for i, el := range elements {
		res.Diagnostics.Lines++

		if (i+1)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rec, err := recordFromJSON(layout, el)
		collect(res, rec, i+1, err, o.logger)
	}

	return res, nil
}

func recordFromJSON(layout *models.Layout, el *fastjson.Value) (models.Record, error) {
	obj, err := el.Object()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	columns := layout.Columns()
	fields := make([]string, len(columns))
	known := 0

	for i, c := range columns {
		fv := obj.Get(string(c.ID))
		if fv == nil {
			continue
		}

		fields[i] = jsonText(fv)
		known++
	}

	if known == 0 {
		return nil, fmt.Errorf("%w: object has no %s columns", ErrMalformedRecord, layout.Vendor())
	}

	// Absent keys behave like blank columns.
	return buildRecord(layout, fields)
}

func jsonText(v *fastjson.Value) string {
	switch v.Type() {
	case fastjson.TypeString:
		return strings.TrimSpace(string(v.GetStringBytes()))
	case fastjson.TypeNull:
		return ""
	case fastjson.TypeNumber, fastjson.TypeTrue, fastjson.TypeFalse, fastjson.TypeObject, fastjson.TypeArray:
		return v.String()
	default:
		return v.String()
	}
}
