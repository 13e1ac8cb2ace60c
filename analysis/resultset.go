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

package analysis

import (
	"sort"
)

// ResultSet holds the filtered, ordered aggregate rows per requested
// n-gram size. Sizes is kept sorted ascending for stable iteration.
type ResultSet struct {
	Sizes   []int                 `json:"sizes" msgpack:"sizes"`
	Tables  map[int][]*Aggregate  `json:"tables" msgpack:"tables"`
	Options Options               `json:"options" msgpack:"options"`
}

// NumRows returns the total number of rows across all sizes.
func (rs *ResultSet) NumRows() int {
	var ans int
	for _, rows := range rs.Tables {
		ans += len(rows)
	}
	return ans
}

// BuildResultSet applies the minimum-occurrence filter and the configured
// ordering to raw aggregation tables. The source tables are not modified.
func BuildResultSet(tables map[int]Table, opts Options) *ResultSet {
	ans := &ResultSet{
		Sizes:   make([]int, 0, len(tables)),
		Tables:  make(map[int][]*Aggregate, len(tables)),
		Options: opts,
	}
	for n := range tables {
		ans.Sizes = append(ans.Sizes, n)
	}
	sort.Ints(ans.Sizes)
	for _, n := range ans.Sizes {
		rows := make([]*Aggregate, 0, len(tables[n]))
		for _, agg := range tables[n] {
			if agg.QueryCount >= opts.MinOccurrences {
				rows = append(rows, agg)
			}
		}
		SortRows(rows, opts.SortMetric)
		ans.Tables[n] = rows
	}
	return ans
}

// SortRows orders rows by the metric descending; ties break by n-gram text
// ascending so equal-metric rows always come out in the same order. Rows
// with an unknown value of the metric (undefined CPA, unknown CTR) go after
// all rows with a known value.
func SortRows(rows []*Aggregate, metric Metric) {
	sort.Slice(rows, func(i, j int) bool {
		vi, knownI := metricValue(rows[i], metric)
		vj, knownJ := metricValue(rows[j], metric)
		if knownI != knownJ {
			return knownI
		}
		if vi != vj {
			return vi > vj
		}
		return rows[i].Key < rows[j].Key
	})
}

func metricValue(agg *Aggregate, metric Metric) (float64, bool) {
	m := agg.Metrics()
	switch metric {
	case MetricClicks:
		return float64(agg.Clicks), true
	case MetricConversions:
		return agg.Conversions, true
	case MetricCPA:
		return m.CPA, m.CPAKnown
	case MetricCVR:
		return m.CVR, true
	case MetricCTR:
		return m.CTR, m.CTRKnown
	default:
		return agg.Cost, true
	}
}

// Analyze is the full core pipeline: tokenize, extract, aggregate, filter
// and order. It is a pure function of its inputs - identical records and
// options always reproduce identical tables.
func Analyze(records []QueryRecord, opts Options) (*ResultSet, error) {
	tables, err := AggregateRecords(records, opts)
	if err != nil {
		return nil, err
	}
	return BuildResultSet(tables, opts), nil
}
