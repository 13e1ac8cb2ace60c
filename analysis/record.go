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

// QueryRecord is one validated input row as provided by the dataimport
// boundary. Metrics are guaranteed non-negative by the time a record
// reaches this package. A nil Impressions means the upstream export did
// not contain the column - unknown, not zero.
type QueryRecord struct {
	Query       string  `json:"query" msgpack:"query"`
	Clicks      int     `json:"clicks" msgpack:"clicks"`
	Cost        float64 `json:"cost" msgpack:"cost"`
	Conversions float64 `json:"conversions" msgpack:"conversions"`
	Impressions *int    `json:"impressions,omitempty" msgpack:"impressions,omitempty"`
}

// HasImpressions tests whether the record carries a known impressions value.
func (rec QueryRecord) HasImpressions() bool {
	return rec.Impressions != nil
}

// WithImpressions is a convenience constructor used mainly by tests
// and the SQL import path.
func WithImpressions(query string, clicks int, cost, conversions float64, impressions int) QueryRecord {
	return QueryRecord{
		Query:       query,
		Clicks:      clicks,
		Cost:        cost,
		Conversions: conversions,
		Impressions: &impressions,
	}
}
