// Copyright 2025 Ben Lievens
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package export renders aggregated tables into the flat formats consumed
// by downstream tooling: CSV summaries, plain-text reports, negative
// keyword lists and JSON result snapshots.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blievens89/ngram/analysis"
)

// queriesSeparator delimits contributing queries in the detailed export.
const queriesSeparator = " | "

var summaryHeader = []string{
	"ngram", "query_count", "clicks", "cost", "conversions", "impressions", "ctr", "cvr", "cpa",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// summaryFields renders one aggregate row. Unknown values (impressions sum,
// CTR, CPA) become empty cells, never zeros pretending to be data.
func summaryFields(agg *analysis.Aggregate) []string {
	m := agg.Metrics()
	impressions := ""
	if agg.ImpressionsKnown {
		impressions = strconv.Itoa(agg.Impressions)
	}
	ctr := ""
	if m.CTRKnown {
		ctr = formatFloat(m.CTR)
	}
	cpa := ""
	if m.CPAKnown {
		cpa = formatFloat(m.CPA)
	}
	return []string{
		string(agg.Key),
		strconv.Itoa(agg.QueryCount),
		strconv.Itoa(agg.Clicks),
		formatFloat(agg.Cost),
		formatFloat(agg.Conversions),
		impressions,
		ctr,
		formatFloat(m.CVR),
		cpa,
	}
}

// WriteSummaryCSV writes one size's rows as a summary table.
func WriteSummaryCSV(w io.Writer, rows []*analysis.Aggregate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("failed to write CSV export: %w", err)
	}
	for _, agg := range rows {
		if err := cw.Write(summaryFields(agg)); err != nil {
			return fmt.Errorf("failed to write CSV export: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDetailedCSV is WriteSummaryCSV plus a trailing column holding the
// contributing queries in first-seen order.
func WriteDetailedCSV(w io.Writer, rows []*analysis.Aggregate) error {
	cw := csv.NewWriter(w)
	header := append(append([]string{}, summaryHeader...), "queries")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV export: %w", err)
	}
	for _, agg := range rows {
		fields := append(summaryFields(agg), strings.Join(agg.Queries, queriesSeparator))
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("failed to write CSV export: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteNegativeKeywords writes one n-gram per line, the format ad platforms
// accept for bulk negative keyword upload.
func WriteNegativeKeywords(w io.Writer, keywords []string) error {
	for _, kw := range keywords {
		if _, err := fmt.Fprintln(w, kw); err != nil {
			return fmt.Errorf("failed to write negative keywords: %w", err)
		}
	}
	return nil
}
