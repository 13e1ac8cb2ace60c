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

package wasters

import (
	"testing"

	"github.com/blievens89/ngram/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFlagsHighCostLowCVR(t *testing.T) {
	rows := []*analysis.Aggregate{
		{Key: "expensive dud", Cost: 100, Clicks: 100, Conversions: 0},
		{Key: "cheap dud", Cost: 1, Clicks: 100, Conversions: 0},
		{Key: "expensive winner", Cost: 90, Clicks: 100, Conversions: 50},
		{Key: "cheap winner", Cost: 2, Clicks: 100, Conversions: 60},
	}
	scored, thresholds, err := Score(rows, 75, 25)
	require.NoError(t, err)
	require.Len(t, scored, 4)

	byKey := make(map[string]ScoredRow)
	for _, r := range scored {
		byKey[string(r.Key)] = r
	}
	assert.True(t, byKey["expensive dud"].IsWaster)
	assert.False(t, byKey["cheap dud"].IsWaster)
	assert.False(t, byKey["expensive winner"].IsWaster)
	assert.False(t, byKey["cheap winner"].IsWaster)
	assert.Greater(t, thresholds.Cost, 1.0)
}

func TestScoreWasteScoreFormula(t *testing.T) {
	rows := []*analysis.Aggregate{
		{Key: "a", Cost: 50, Clicks: 100, Conversions: 20}, // cvr 0.2
		{Key: "b", Cost: 100, Clicks: 100, Conversions: 0}, // cvr 0
	}
	scored, _, err := Score(rows, 50, 50)
	require.NoError(t, err)
	byKey := make(map[string]ScoredRow)
	for _, r := range scored {
		byKey[string(r.Key)] = r
	}
	// a: 50/100 * (1 - 0.2) = 0.4; b: 100/100 * 1 = 1.0
	assert.InDelta(t, 0.4, byKey["a"].WasteScore, 1e-9)
	assert.InDelta(t, 1.0, byKey["b"].WasteScore, 1e-9)
}

func TestScoreEqualCVRsCostConditionDecidesAlone(t *testing.T) {
	// all CVRs identical => cvr threshold equals the common value and
	// every row passes the CVR condition
	rows := []*analysis.Aggregate{
		{Key: "a", Cost: 10, Clicks: 100, Conversions: 10},
		{Key: "b", Cost: 20, Clicks: 200, Conversions: 20},
		{Key: "c", Cost: 30, Clicks: 300, Conversions: 30},
		{Key: "d", Cost: 40, Clicks: 400, Conversions: 40},
	}
	scored, thresholds, err := Score(rows, 75, 25)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, thresholds.CVR, 1e-9)
	// cost threshold: quantile(0.75) of {10,20,30,40} = 32.5
	assert.InDelta(t, 32.5, thresholds.Cost, 1e-9)
	for _, r := range scored {
		assert.Equal(t, r.Cost >= thresholds.Cost, r.IsWaster, "key %s", r.Key)
	}
}

func TestScoreZeroMaxCost(t *testing.T) {
	rows := []*analysis.Aggregate{
		{Key: "a", Clicks: 10},
		{Key: "b", Clicks: 5},
	}
	scored, _, err := Score(rows, 75, 25)
	require.NoError(t, err)
	for _, r := range scored {
		assert.Equal(t, 0.0, r.WasteScore)
	}
}

func TestScoreEmptyTable(t *testing.T) {
	scored, thresholds, err := Score(nil, 75, 25)
	require.NoError(t, err)
	assert.Empty(t, scored)
	assert.Equal(t, Thresholds{}, thresholds)
}

func TestScoreInvalidPercentiles(t *testing.T) {
	rows := []*analysis.Aggregate{{Key: "a", Cost: 1}}
	_, _, err := Score(rows, -1, 25)
	assert.Error(t, err)
	_, _, err = Score(rows, 75, 101)
	assert.Error(t, err)
}

func TestWastersRankedByScore(t *testing.T) {
	scored := []ScoredRow{
		{Aggregate: &analysis.Aggregate{Key: "low"}, WasteScore: 0.2, IsWaster: true},
		{Aggregate: &analysis.Aggregate{Key: "skip"}, WasteScore: 0.9, IsWaster: false},
		{Aggregate: &analysis.Aggregate{Key: "high"}, WasteScore: 0.8, IsWaster: true},
	}
	ranked := Wasters(scored)
	require.Len(t, ranked, 2)
	assert.Equal(t, "high", string(ranked[0].Key))
	assert.Equal(t, "low", string(ranked[1].Key))
}

func TestNegativeKeywords(t *testing.T) {
	ranked := []ScoredRow{
		{Aggregate: &analysis.Aggregate{Key: "very bad"}, WasteScore: 0.9, IsWaster: true},
		{Aggregate: &analysis.Aggregate{Key: "bad"}, WasteScore: 0.6, IsWaster: true},
		{Aggregate: &analysis.Aggregate{Key: "meh"}, WasteScore: 0.3, IsWaster: true},
	}
	assert.Equal(t, []string{"very bad", "bad"}, NegativeKeywords(ranked, 0.5, 100))
	assert.Equal(t, []string{"very bad"}, NegativeKeywords(ranked, 0.5, 1))
	assert.Empty(t, NegativeKeywords(nil, 0.5, 10))
}

func TestNegativeKeywordsOnlyFromFlaggedRows(t *testing.T) {
	// both rows score above the default minimum, but neither satisfies
	// both threshold conditions, so no keyword may be produced
	rows := []*analysis.Aggregate{
		{Key: "expensive winner", Clicks: 10, Conversions: 2, Cost: 100},
		{Key: "cheap dud", Clicks: 10, Conversions: 0, Cost: 50},
	}
	scored, _, err := Score(rows, DfltCostPercentile, DfltCVRPercentile)
	require.NoError(t, err)
	for _, row := range scored {
		assert.False(t, row.IsWaster)
		assert.GreaterOrEqual(t, row.WasteScore, DfltMinWasteScore)
	}
	assert.Empty(t, NegativeKeywords(Wasters(scored), DfltMinWasteScore, DfltMaxKeywords))
	assert.Empty(t, NegativeKeywords(scored, DfltMinWasteScore, DfltMaxKeywords))
}

func TestPotentialSavings(t *testing.T) {
	ranked := []ScoredRow{
		{Aggregate: &analysis.Aggregate{Key: "a", Cost: 100, Clicks: 50, Conversions: 2}},
		{Aggregate: &analysis.Aggregate{Key: "b", Cost: 60, Clicks: 30}},
	}
	s := PotentialSavings(ranked)
	assert.Equal(t, 160.0, s.WastedCost)
	assert.Equal(t, 80, s.WastedClicks)
	assert.Equal(t, 2.0, s.WastedConversions)
	assert.Equal(t, 2, s.NumWasters)
	// only "a" has a defined CPA
	assert.InDelta(t, 50.0, s.AvgWasterCPA, 1e-9)
}

func TestPotentialSavingsEmpty(t *testing.T) {
	assert.Equal(t, Savings{}, PotentialSavings(nil))
}
