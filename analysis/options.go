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
	"fmt"

	"github.com/blievens89/ngram/textproc"
)

// Metric identifies a sortable column of the aggregated tables.
type Metric string

const (
	MetricCost        Metric = "cost"
	MetricClicks      Metric = "clicks"
	MetricConversions Metric = "conversions"
	MetricCPA         Metric = "cpa"
	MetricCVR         Metric = "cvr"
	MetricCTR         Metric = "ctr"
)

// ParseMetric converts a user-supplied metric name.
func ParseMetric(v string) (Metric, error) {
	switch Metric(v) {
	case MetricCost, MetricClicks, MetricConversions, MetricCPA, MetricCVR, MetricCTR:
		return Metric(v), nil
	}
	return "", fmt.Errorf("unknown sort metric '%s'", v)
}

// Options configures one analysis pass. All fields have defaults
// (see DefaultOptions) and are validated before any aggregation starts.
type Options struct {
	Sizes           []int    `json:"sizes" msgpack:"sizes"`
	MinOccurrences  int      `json:"minOccurrences" msgpack:"minOccurrences"`
	UseStopWords    bool     `json:"useStopWords" msgpack:"useStopWords"`
	CustomStopWords []string `json:"customStopWords,omitempty" msgpack:"customStopWords"`
	SortMetric      Metric   `json:"sortMetric" msgpack:"sortMetric"`
}

// DefaultOptions mirrors the defaults of the spreadsheet-era workflow:
// unigrams to trigrams, at least two source queries per row, stop words
// removed, most expensive rows first.
func DefaultOptions() Options {
	return Options{
		Sizes:          []int{1, 2, 3},
		MinOccurrences: 2,
		UseStopWords:   true,
		SortMetric:     MetricCost,
	}
}

// Validate rejects configurations before aggregation begins.
func (opts Options) Validate() error {
	if len(opts.Sizes) == 0 {
		return fmt.Errorf("no n-gram sizes requested")
	}
	seen := make(map[int]struct{}, len(opts.Sizes))
	for _, n := range opts.Sizes {
		if err := textproc.ValidateSize(n); err != nil {
			return err
		}
		if _, ok := seen[n]; ok {
			return fmt.Errorf("duplicate n-gram size %d", n)
		}
		seen[n] = struct{}{}
	}
	if opts.MinOccurrences < 1 {
		return fmt.Errorf("minOccurrences must be at least 1 (got %d)", opts.MinOccurrences)
	}
	if _, err := ParseMetric(string(opts.SortMetric)); err != nil {
		return err
	}
	return nil
}
