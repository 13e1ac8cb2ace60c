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

package dataimport

import (
	"github.com/blievens89/ngram/analysis"
)

// QualitySummary describes an imported dataset before analysis, so a user
// can spot a broken export (all-zero clicks, no conversions at all) early.
type QualitySummary struct {
	TotalRows           int     `json:"totalRows"`
	RowsWithConversions int     `json:"rowsWithConversions"`
	ConvertingShare     float64 `json:"convertingShare"`
	RowsWithZeroClicks  int     `json:"rowsWithZeroClicks"`
	RowsWithZeroCost    int     `json:"rowsWithZeroCost"`
	TotalClicks         int     `json:"totalClicks"`
	TotalCost           float64 `json:"totalCost"`
	TotalConversions    float64 `json:"totalConversions"`
	AvgCPA              float64 `json:"avgCpa"`
}

// Summarize computes dataset-level quality statistics.
func Summarize(records []analysis.QueryRecord) QualitySummary {
	var ans QualitySummary
	ans.TotalRows = len(records)
	for _, rec := range records {
		if rec.Conversions > 0 {
			ans.RowsWithConversions++
		}
		if rec.Clicks == 0 {
			ans.RowsWithZeroClicks++
		}
		if rec.Cost == 0 {
			ans.RowsWithZeroCost++
		}
		ans.TotalClicks += rec.Clicks
		ans.TotalCost += rec.Cost
		ans.TotalConversions += rec.Conversions
	}
	if ans.TotalRows > 0 {
		ans.ConvertingShare = float64(ans.RowsWithConversions) / float64(ans.TotalRows)
	}
	if ans.TotalConversions > 0 {
		ans.AvgCPA = ans.TotalCost / ans.TotalConversions
	}
	return ans
}
