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
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fwlog/pkg/models"
)

//nolint:gochecknoglobals // shared fixture
var dlinkExport = "id,date,time,severity,category,category_id,rule,protocol,src_if,dst_if,src_ip,dst_ip,src_port,dst_port,event,action\n" +
	"1,10.05.2019,10:00:00,Notice,CONN,600004,allow_all,TCP,lan,wan,10.0.0.1,8.8.8.8,5000,53,conn_open,allow\n" +
	"\n" +
	"2,10.05.2019,not-a-time,Warning,CONN,600004,drop_all,UDP,lan,wan,10.0.0.2,8.8.4.4,5001,53,conn_close,drop\n" +
	"\"3,10.05.2019,10:00:00\n" +
	"4,11.05.2019,\n" +
	"5,11.05.2019,09:15:00" + strings.Repeat(",", 25) + "\n" +
	`6,"11.05.2019", 23:59:59 ,Notice,"CONN, NAT",600005,"rule ""x""",ICMP` + "\n"

func TestParseDelimitedExport(t *testing.T) {
	res, err := Parse(context.Background(), models.VendorDLink, strings.NewReader(dlinkExport))
	require.NoError(t, err)

	diag := res.Diagnostics
	assert.Equal(t, 8, diag.Lines)
	assert.Equal(t, 2, diag.Skipped, "header and blank line")
	assert.Equal(t, 4, diag.Parsed)
	assert.Equal(t, 2, diag.Malformed, "unterminated quote and too many columns")
	assert.Equal(t, 1, diag.UnparsableTimestamps)
	assert.True(t, diag.HasFailures())
	require.Len(t, diag.Errors, 3)

	ids := make([]string, 0, len(res.Records))
	for _, r := range res.Records {
		ids = append(ids, r.ID())
	}

	assert.Equal(t, []string{"1", "2", "4", "6"}, ids)

	assert.False(t, res.Records[1].HasTimestamp(), "bad time keeps the record without timestamp")
	assert.Equal(t, time.Date(2019, time.May, 11, 0, 0, 0, 0, time.UTC), res.Records[2].Timestamp())

	last := res.Records[3].(*models.DLinkLog)
	assert.Equal(t, "CONN, NAT", last.Category())
	assert.Equal(t, `rule "x"`, last.Rule())
	assert.Equal(t, "ICMP", last.Protocol())
	assert.Empty(t, last.SrcIP())
	assert.Equal(t, time.Date(2019, time.May, 11, 23, 59, 59, 0, time.UTC), last.Timestamp())
}

func TestParseLineErrors(t *testing.T) {
	p, err := New(models.VendorTPLink)
	require.NoError(t, err)
	assert.Equal(t, models.VendorTPLink, p.Vendor())

	tests := []struct {
		name       string
		line       string
		wantErr    error
		wantRecord bool
	}{
		{name: "valid", line: "1,10.05.2019,10:00:00,Security,Info,login,TCP,10.0.0.1", wantRecord: true},
		{name: "too few columns", line: "1,10.05.2019", wantErr: ErrMalformedRecord},
		{name: "too many columns", line: strings.Repeat("x,", 12) + "x", wantErr: ErrMalformedRecord},
		{name: "bad quote", line: `1,"10.05.2019,10:00:00`, wantErr: ErrMalformedRecord},
		{name: "bad date", line: "1,2019/05/10,10:00:00", wantErr: ErrUnparsableTimestamp, wantRecord: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := p.ParseLine(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			if tt.wantRecord {
				require.NotNil(t, rec)
				assert.Equal(t, "1", rec.ID())
			} else {
				assert.Nil(t, rec)
			}
		})
	}
}

func TestParseWithDelimiter(t *testing.T) {
	input := "10;12.05.2019;08:00:00;Blocked;chrome.exe;deny;Web;out;TCP;93.184.216.34;443;192.168.0.2;50123\n"

	res, err := Parse(context.Background(), models.VendorKaspersky, strings.NewReader(input),
		WithDelimiter(';'), WithFormat(FormatDelimited))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	rec := res.Records[0].(*models.KasperskyLog)
	assert.Equal(t, "93.184.216.34", rec.SourceAddress())
	assert.Equal(t, "chrome.exe", rec.Application())
	assert.Equal(t, "50123", rec.LocalPort())
}

func TestParseSkipsOverlongLine(t *testing.T) {
	oversize := "2,10.05.2019,10:00:00,Security,Info," + strings.Repeat("x", 2<<20)
	input := "1,10.05.2019,10:00:00,Security,Info,login,TCP,10.0.0.1\n" +
		oversize + "\n" +
		"3,10.05.2019,11:00:00,Security,Info,logout,TCP,10.0.0.3"

	res, err := Parse(context.Background(), models.VendorTPLink, strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "1", res.Records[0].ID())
	assert.Equal(t, "3", res.Records[1].ID())

	diag := res.Diagnostics
	assert.Equal(t, 3, diag.Lines)
	assert.Equal(t, 2, diag.Parsed)
	assert.Equal(t, 1, diag.Malformed)
	require.Len(t, diag.Errors, 1)
	assert.Equal(t, 2, diag.Errors[0].Line)
	assert.ErrorIs(t, diag.Errors[0], ErrMalformedRecord)
}

func TestParseOverlongFinalLine(t *testing.T) {
	input := "1,10.05.2019,10:00:00,Security,Info,login,TCP,10.0.0.1\n" + strings.Repeat("y", maxLineSize+1)

	res, err := Parse(context.Background(), models.VendorTPLink, strings.NewReader(input))
	require.NoError(t, err)

	assert.Len(t, res.Records, 1)
	assert.Equal(t, 2, res.Diagnostics.Lines)
	assert.Equal(t, 1, res.Diagnostics.Malformed)
}

func TestParseQuotedFieldsAreLineBounded(t *testing.T) {
	input := "1,10.05.2019,10:00:00,Security,\"multi\n" +
		"line\",login,TCP,10.0.0.1\n" +
		"3,10.05.2019,11:00:00,Security,Info,logout,TCP,10.0.0.3\n"

	res, err := Parse(context.Background(), models.VendorTPLink, strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	assert.Equal(t, "3", res.Records[0].ID())
	assert.Equal(t, 2, res.Diagnostics.Malformed)
}

func TestLineReader(t *testing.T) {
	lr := &lineReader{
		br:    bufio.NewReaderSize(strings.NewReader("ab\r\n\n0123456789\ncd"), 16),
		limit: 8,
	}

	want := []struct {
		line    string
		tooLong bool
	}{
		{"ab", false},
		{"", false},
		{"", true},
		{"cd", false},
	}

	for _, w := range want {
		line, tooLong, err := lr.next()
		require.NoError(t, err)
		assert.Equal(t, w.line, line)
		assert.Equal(t, w.tooLong, tooLong)
	}

	_, _, err := lr.next()
	require.ErrorIs(t, err, io.EOF)
}

func TestParseJSONExport(t *testing.T) {
	input := `
[
  {"id": 1, "date": "10.05.2019", "time": "10:00:00", "protocol": "TCP", "src_ip": "10.0.0.1", "severity": "Info"},
  {"id": "2", "date": "10.05.2019", "time": null, "src_ip": "10.0.0.2"},
  "not an object",
  {"unrelated": true},
  {"id": 5, "date": "bad", "time": "10:00:00"}
]`

	res, err := Parse(context.Background(), models.VendorTPLink, strings.NewReader(input))
	require.NoError(t, err)

	diag := res.Diagnostics
	assert.Equal(t, 5, diag.Lines)
	assert.Equal(t, 3, diag.Parsed)
	assert.Equal(t, 2, diag.Malformed)
	assert.Equal(t, 1, diag.UnparsableTimestamps)

	require.Len(t, res.Records, 3)
	assert.Equal(t, "1", res.Records[0].ID())
	assert.Equal(t, "TCP", res.Records[0].Protocol())
	assert.Equal(t, "Info", res.Records[0].Severity())
	assert.Equal(t, "10.0.0.2", res.Records[1].SourceAddress())
	assert.True(t, res.Records[1].HasTimestamp(), "null time resolves to midnight")
	assert.False(t, res.Records[2].HasTimestamp())
}

func TestParseJSONSingleObject(t *testing.T) {
	input := `{"id": 9, "date": "01.06.2019", "time": "00:00:01", "ip_address": "1.1.1.1"}`

	res, err := Parse(context.Background(), models.VendorKaspersky, strings.NewReader(input), WithFormat(FormatJSON))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "1.1.1.1", res.Records[0].SourceAddress())
}

func TestParseInvalidJSONIsSoftFailure(t *testing.T) {
	res, err := Parse(context.Background(), models.VendorDLink, strings.NewReader(`[{"id": 1,`), WithFormat(FormatJSON))
	require.NoError(t, err)

	assert.Empty(t, res.Records)
	assert.Equal(t, 1, res.Diagnostics.Malformed)
	require.Len(t, res.Diagnostics.Errors, 1)

	var lineErr *LineError
	require.True(t, errors.As(res.Diagnostics.Errors[0], &lineErr))
	assert.Equal(t, 1, lineErr.Line)
	assert.ErrorIs(t, lineErr, ErrMalformedRecord)
}

func TestParseEmptyInput(t *testing.T) {
	res, err := Parse(context.Background(), models.VendorDLink, strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.False(t, res.Diagnostics.HasFailures())
}

func TestParseUnknownVendor(t *testing.T) {
	_, err := Parse(context.Background(), models.Vendor("cisco"), strings.NewReader(""))
	require.ErrorIs(t, err, models.ErrUnknownVendor)

	_, err = New(models.Vendor("cisco"))
	require.ErrorIs(t, err, models.ErrUnknownVendor)
}

func TestParseCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, models.VendorDLink, strings.NewReader(dlinkExport))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDiagnosticsCapsSampledErrors(t *testing.T) {
	var b strings.Builder
	for i := 0; i < maxSampledErrors+20; i++ {
		b.WriteString("only-one-column\n")
	}

	res, err := Parse(context.Background(), models.VendorDLink, strings.NewReader(b.String()), WithFormat(FormatDelimited))
	require.NoError(t, err)

	assert.Equal(t, maxSampledErrors+20, res.Diagnostics.Malformed)
	assert.Len(t, res.Diagnostics.Errors, maxSampledErrors)
}
