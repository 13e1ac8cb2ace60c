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

// Package dataimport is the validation boundary between raw exports
// (CSV/XLSX files, pasted data, a sqlite source) and the analysis core.
// It normalizes column names, coerces metric values and drops rows with
// empty queries, so the core only ever sees well-formed records.
package dataimport

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/blievens89/ngram/analysis"
	"github.com/rs/zerolog/log"
)

// columnCandidates lists accepted header spellings per target column, in
// priority order. Headers are matched lowercased and trimmed, which covers
// the usual Google Ads / Microsoft Advertising export variants.
var columnCandidates = map[string][]string{
	"query":       {"search term", "search_term", "query", "search terms", "searchterm"},
	"clicks":      {"interactions", "clicks", "click", "interaction", "total clicks"},
	"cost":        {"cost", "spend", "cost_gbp", "total cost", "totalcost"},
	"conversions": {"conversions", "conv.", "conv", "converted", "total conversions"},
	"impressions": {"impr.", "impressions", "impr", "impression"},
}

var requiredColumns = []string{"query", "clicks", "cost", "conversions"}

// columnIndex holds per-target positions within a header row; -1 means the
// column is absent (only allowed for impressions).
type columnIndex struct {
	query       int
	clicks      int
	cost        int
	conversions int
	impressions int
}

func findColumn(header []string, candidates []string) int {
	for _, cand := range candidates {
		for i, h := range header {
			if strings.TrimSpace(strings.ToLower(h)) == cand {
				return i
			}
		}
	}
	return -1
}

// mapHeader resolves a raw header row into column positions. Missing
// required columns produce a single error naming all of them along with
// the columns which were actually available.
func mapHeader(header []string) (columnIndex, error) {
	found := make(map[string]int, len(columnCandidates))
	var missing []string
	for _, target := range []string{"query", "clicks", "cost", "conversions", "impressions"} {
		idx := findColumn(header, columnCandidates[target])
		found[target] = idx
		if idx == -1 {
			for _, req := range requiredColumns {
				if req == target {
					missing = append(missing, fmt.Sprintf("%s (%s)", target, strings.Join(columnCandidates[target][:2], "/")))
				}
			}
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf(
			"missing required columns: %s; available columns: %s",
			strings.Join(missing, ", "),
			strings.Join(header, ", "),
		)
	}
	if found["impressions"] == -1 {
		log.Warn().Msg("impressions column not found - CTR will not be computable")
	}
	return columnIndex{
		query:       found["query"],
		clicks:      found["clicks"],
		cost:        found["cost"],
		conversions: found["conversions"],
		impressions: found["impressions"],
	}, nil
}

// coerceFloat mirrors the forgiving numeric handling of ad-platform
// exports: unparsable or negative cells become 0 rather than a failed
// import.
func coerceFloat(v string) float64 {
	ans, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(ans) || ans < 0 {
		return 0
	}
	return ans
}

func coerceInt(v string) int {
	return int(math.Round(coerceFloat(v)))
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// recordsFromRows converts raw tabular data into validated QueryRecords.
// Rows with an empty query are dropped. When the impressions column is
// absent the records carry no impressions value at all (unknown, not zero).
func recordsFromRows(header []string, rows [][]string) ([]analysis.QueryRecord, error) {
	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}
	ans := make([]analysis.QueryRecord, 0, len(rows))
	var numDropped int
	for _, row := range rows {
		query := strings.TrimSpace(cell(row, cols.query))
		if query == "" {
			numDropped++
			continue
		}
		rec := analysis.QueryRecord{
			Query:       query,
			Clicks:      coerceInt(cell(row, cols.clicks)),
			Cost:        coerceFloat(cell(row, cols.cost)),
			Conversions: coerceFloat(cell(row, cols.conversions)),
		}
		if cols.impressions != -1 {
			impr := coerceInt(cell(row, cols.impressions))
			rec.Impressions = &impr
		}
		ans = append(ans, rec)
	}
	if numDropped > 0 {
		log.Info().Int("numDropped", numDropped).Msg("dropped rows with empty query")
	}
	return ans, nil
}
