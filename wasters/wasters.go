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

// Package wasters flags and ranks "money wasters" - n-grams with high cost
// and poor conversion - within one aggregated table.
package wasters

import (
	"fmt"
	"sort"

	"github.com/blievens89/ngram/analysis"
	"github.com/blievens89/ngram/stats"
)

const (
	DfltCostPercentile = 75.0
	DfltCVRPercentile  = 25.0
	DfltMinWasteScore  = 0.5
	DfltMaxKeywords    = 100
)

// ScoredRow annotates one aggregate row with its waste score. The
// annotation is only meaningful within the scoring pass which produced it;
// thresholds are recomputed for every table and never cached.
type ScoredRow struct {
	*analysis.Aggregate
	WasteScore float64 `json:"wasteScore"`
	IsWaster   bool    `json:"isWaster"`
}

// Thresholds carries the percentile cut-offs derived from one table.
type Thresholds struct {
	Cost float64 `json:"cost"`
	CVR  float64 `json:"cvr"`
}

// Score computes cost and CVR percentile thresholds over rows and annotates
// every row. A row is a waster when its cost reaches the cost threshold
// while its CVR stays at or below the CVR threshold. The waste score is
// cost / max(cost) * (1 - cvr) regardless of the flag, with all scores zero
// when the table's maximum cost is zero. Percentiles outside [0, 100] are
// rejected before anything is computed. An empty table is valid and yields
// an empty result.
//
// Rows of different n-gram sizes must never be pooled into one call - the
// thresholds are only meaningful within a single size's table.
func Score(rows []*analysis.Aggregate, costPercentile, cvrPercentile float64) ([]ScoredRow, Thresholds, error) {
	if costPercentile < 0 || costPercentile > 100 {
		return nil, Thresholds{}, fmt.Errorf("invalid cost percentile %f (must be within [0, 100])", costPercentile)
	}
	if cvrPercentile < 0 || cvrPercentile > 100 {
		return nil, Thresholds{}, fmt.Errorf("invalid CVR percentile %f (must be within [0, 100])", cvrPercentile)
	}
	if len(rows) == 0 {
		return []ScoredRow{}, Thresholds{}, nil
	}

	costs := make([]float64, len(rows))
	cvrs := make([]float64, len(rows))
	for i, agg := range rows {
		costs[i] = agg.Cost
		cvrs[i] = agg.Metrics().CVR
	}
	costThreshold, err := stats.Percentile(costs, costPercentile)
	if err != nil {
		return nil, Thresholds{}, err
	}
	cvrThreshold, err := stats.Percentile(cvrs, cvrPercentile)
	if err != nil {
		return nil, Thresholds{}, err
	}
	maxCost := stats.Max(costs)

	ans := make([]ScoredRow, len(rows))
	for i, agg := range rows {
		row := ScoredRow{Aggregate: agg}
		row.IsWaster = agg.Cost >= costThreshold && cvrs[i] <= cvrThreshold
		if maxCost > 0 {
			row.WasteScore = agg.Cost / maxCost * (1 - cvrs[i])
		}
		ans[i] = row
	}
	return ans, Thresholds{Cost: costThreshold, CVR: cvrThreshold}, nil
}

// Wasters filters a scored table down to the flagged rows, ordered by waste
// score descending with the n-gram text as tie-break.
func Wasters(scored []ScoredRow) []ScoredRow {
	ans := make([]ScoredRow, 0, len(scored))
	for _, row := range scored {
		if row.IsWaster {
			ans = append(ans, row)
		}
	}
	sort.Slice(ans, func(i, j int) bool {
		if ans[i].WasteScore != ans[j].WasteScore {
			return ans[i].WasteScore > ans[j].WasteScore
		}
		return ans[i].Key < ans[j].Key
	})
	return ans
}

// NegativeKeywords turns ranked wasters into a negative keyword list:
// flagged rows scoring at least minWasteScore, capped at maxResults items.
// Rows without the waster flag never become keywords, whatever they score.
func NegativeKeywords(ranked []ScoredRow, minWasteScore float64, maxResults int) []string {
	ans := make([]string, 0, len(ranked))
	for _, row := range ranked {
		if !row.IsWaster || row.WasteScore < minWasteScore {
			continue
		}
		ans = append(ans, string(row.Key))
		if len(ans) == maxResults {
			break
		}
	}
	return ans
}

// Savings sums up what the flagged rows currently consume.
type Savings struct {
	WastedCost        float64 `json:"wastedCost"`
	WastedClicks      int     `json:"wastedClicks"`
	WastedConversions float64 `json:"wastedConversions"`
	AvgWasterCPA      float64 `json:"avgWasterCpa"`
	NumWasters        int     `json:"numWasters"`
}

// PotentialSavings summarizes the flagged rows of one scored table. The
// average CPA covers only rows where CPA is defined.
func PotentialSavings(wasterRows []ScoredRow) Savings {
	var ans Savings
	var cpaSum float64
	var cpaCount int
	for _, row := range wasterRows {
		ans.NumWasters++
		ans.WastedCost += row.Cost
		ans.WastedClicks += row.Clicks
		ans.WastedConversions += row.Conversions
		if m := row.Metrics(); m.CPAKnown {
			cpaSum += m.CPA
			cpaCount++
		}
	}
	if cpaCount > 0 {
		ans.AvgWasterCPA = cpaSum / float64(cpaCount)
	}
	return ans
}
