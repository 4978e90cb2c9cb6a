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

// Package output renders reports as JSON or as terminal tables.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/carverauto/fwlog/pkg/models"
	"github.com/carverauto/fwlog/pkg/report"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaComment    = "#6272A4"
)

const (
	defaultBarWidth = 30
	barRune         = "█"
)

//nolint:gochecknoglobals // vendor display names
var vendorTitles = map[models.Vendor]string{
	models.VendorDLink:     "D-Link",
	models.VendorTPLink:    "TP-Link",
	models.VendorKaspersky: "Kaspersky",
}

// Options controls terminal rendering.
type Options struct {
	// MaxRows limits the record table; zero prints every row.
	MaxRows int
	// BarWidth is the width of the longest chart bar.
	BarWidth int
	// Charts includes the aggregate charts above the record table.
	Charts bool
}

type styles struct {
	title, header, cell, key, bar, muted, warn, border lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true).
			Padding(0, 1),
		cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)).
			Padding(0, 1),
		key: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)),
		bar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		border: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPurple)),
	}
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, rep *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return nil
}

// VendorTitle is the display name of a vendor.
func VendorTitle(v models.Vendor) string {
	if t, ok := vendorTitles[v]; ok {
		return t
	}

	return v.String()
}

// Table writes the report as styled terminal output.
func Table(w io.Writer, rep *report.Report, opts Options) error {
	if opts.BarWidth <= 0 {
		opts.BarWidth = defaultBarWidth
	}

	st := newStyles()

	var b strings.Builder

	b.WriteString(st.title.Render(fmt.Sprintf("%s: %d logs", VendorTitle(rep.Vendor), rep.Total)))
	b.WriteString(st.muted.Render(fmt.Sprintf("  %s - %s, address %s",
		rep.Params.MinDate.Format(models.DateLayout),
		rep.Params.MaxDate.Format(models.DateLayout),
		rep.Params.Address)))
	b.WriteString("\n")

	if d := rep.Diagnostics; d != nil && d.HasFailures() {
		b.WriteString(st.warn.Render(fmt.Sprintf("%d malformed lines skipped, %d records without timestamp",
			d.Malformed, d.UnparsableTimestamps)))
		b.WriteString("\n")
	}

	if opts.Charts {
		charts := []struct {
			title   string
			buckets []models.Bucket
		}{
			{"Most active", rep.MostActive},
			{"Protocols", rep.Protocols},
			{"Daily traffic", rep.DailyTraffic},
			{"Events", rep.Events},
			{"Severity levels", rep.Severity},
			{"24-hour traffic", rep.Hourly[:]},
		}

		for _, c := range charts {
			b.WriteString("\n")
			b.WriteString(Chart(c.title, c.buckets, opts.BarWidth))
		}
	}

	b.WriteString("\n")
	b.WriteString(records(rep, opts.MaxRows, st))
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// Chart renders buckets as a horizontal bar chart scaled to the largest count.
func Chart(title string, buckets []models.Bucket, barWidth int) string {
	st := newStyles()

	var b strings.Builder

	b.WriteString(st.header.UnsetPadding().Render(title))
	b.WriteString("\n")

	if len(buckets) == 0 {
		b.WriteString(st.muted.Render("  no data"))
		b.WriteString("\n")

		return b.String()
	}

	keyWidth, maxCount := 0, 0

	for _, bk := range buckets {
		keyWidth = max(keyWidth, lipgloss.Width(bk.Key))
		maxCount = max(maxCount, bk.Count)
	}

	for _, bk := range buckets {
		n := 0
		if maxCount > 0 {
			n = bk.Count * barWidth / maxCount
		}

		if bk.Count > 0 && n == 0 {
			n = 1
		}

		b.WriteString("  ")
		b.WriteString(st.key.Render(bk.Key + strings.Repeat(" ", keyWidth-lipgloss.Width(bk.Key))))
		b.WriteString(" ")
		b.WriteString(st.bar.Render(strings.Repeat(barRune, n)))
		b.WriteString(" ")
		b.WriteString(st.muted.Render(strconv.Itoa(bk.Count)))
		b.WriteString("\n")
	}

	return b.String()
}

func records(rep *report.Report, maxRows int, st styles) string {
	rows := rep.Table.Records
	truncated := 0

	if maxRows > 0 && len(rows) > maxRows {
		truncated = len(rows) - maxRows
		rows = rows[:maxRows]
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.border).
		Headers(rep.Table.Header...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}

			return st.cell
		})

	for _, r := range rows {
		t.Row(r.Values()...)
	}

	out := t.String()

	if truncated > 0 {
		out += "\n" + st.muted.Render(fmt.Sprintf("... %d more rows", truncated))
	}

	return out
}

// Addresses writes the address picker candidates, one per line, after the "None" entry.
func Addresses(w io.Writer, noAddress string, addrs []string) error {
	var b strings.Builder

	b.WriteString(noAddress)
	b.WriteString("\n")

	for _, a := range addrs {
		b.WriteString(a)
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write addresses: %w", err)
	}

	return nil
}
