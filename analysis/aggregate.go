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
	"github.com/blievens89/ngram/textproc"
)

// Aggregate is one output row: the summed performance of every input query
// containing Key as a contiguous token sequence. Queries keeps the
// contributing query strings in first-seen input order, so re-running the
// aggregation over the same input reproduces the table bit for bit.
//
// ImpressionsKnown follows the full-unknown policy: as soon as a single
// contributing record lacks impressions, the sum is unknown for good and
// Impressions resets to zero.
type Aggregate struct {
	Key              textproc.Key `json:"ngram" msgpack:"ngram"`
	QueryCount       int          `json:"queryCount" msgpack:"queryCount"`
	Clicks           int          `json:"clicks" msgpack:"clicks"`
	Cost             float64      `json:"cost" msgpack:"cost"`
	Conversions      float64      `json:"conversions" msgpack:"conversions"`
	Impressions      int          `json:"impressions" msgpack:"impressions"`
	ImpressionsKnown bool         `json:"impressionsKnown" msgpack:"impressionsKnown"`
	Queries          []string     `json:"queries,omitempty" msgpack:"queries"`
}

func newAggregate(key textproc.Key) *Aggregate {
	return &Aggregate{
		Key:              key,
		ImpressionsKnown: true,
	}
}

// addRecord accumulates one contributing query. The caller guarantees it is
// invoked at most once per (record, key) pair - a repeated window inside one
// query must not add the query's spend twice.
func (agg *Aggregate) addRecord(rec QueryRecord) {
	agg.QueryCount++
	agg.Clicks += rec.Clicks
	agg.Cost += rec.Cost
	agg.Conversions += rec.Conversions
	if agg.ImpressionsKnown {
		if rec.HasImpressions() {
			agg.Impressions += *rec.Impressions

		} else {
			agg.Impressions = 0
			agg.ImpressionsKnown = false
		}
	}
	agg.Queries = append(agg.Queries, rec.Query)
}

// Table maps n-gram keys to their aggregates for one window size.
type Table map[textproc.Key]*Aggregate

// AggregateRecords runs the tokenize-extract-accumulate reduction for every
// requested size in one pass over the records. Each query is cleaned once;
// for each size, every distinct key found in the query receives the record's
// full metric totals exactly once. Zero surviving records or queries which
// clean to nothing simply yield empty (or smaller) tables, never an error.
func AggregateRecords(records []QueryRecord, opts Options) (map[int]Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tokenizer := textproc.NewTokenizer(opts.UseStopWords, opts.CustomStopWords)
	ans := make(map[int]Table, len(opts.Sizes))
	for _, n := range opts.Sizes {
		ans[n] = make(Table)
	}
	for _, rec := range records {
		tokens := tokenizer.Clean(rec.Query)
		for _, n := range opts.Sizes {
			for _, key := range textproc.DistinctNgrams(tokens, n) {
				agg, ok := ans[n][key]
				if !ok {
					agg = newAggregate(key)
					ans[n][key] = agg
				}
				agg.addRecord(rec)
			}
		}
	}
	return ans, nil
}
