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
	"encoding/json"
	"math"
)

// Metrics carries the ratio metrics derived from one aggregate row.
// All rates are fractions in [0, 1]; formatting to percent is a display
// concern. CTRKnown is false when the impressions sum is unknown - the CTR
// value is then the clicks-as-proxy ceiling 1.0 and must not be confused
// with a genuine 100% click-through rate. CPAKnown is false when there are
// no conversions; the CPA value is NaN then, never zero or infinity.
type Metrics struct {
	CTR      float64 `json:"ctr"`
	CTRKnown bool    `json:"ctrKnown"`
	CVR      float64 `json:"cvr"`
	CPA      float64 `json:"cpa"`
	CPAKnown bool    `json:"cpaKnown"`
}

// MarshalJSON encodes an unknown CPA as null - the NaN sentinel has no
// JSON representation.
func (m Metrics) MarshalJSON() ([]byte, error) {
	var cpa *float64
	if m.CPAKnown {
		cpa = &m.CPA
	}
	return json.Marshal(struct {
		CTR      float64  `json:"ctr"`
		CTRKnown bool     `json:"ctrKnown"`
		CVR      float64  `json:"cvr"`
		CPA      *float64 `json:"cpa"`
		CPAKnown bool     `json:"cpaKnown"`
	}{
		CTR:      m.CTR,
		CTRKnown: m.CTRKnown,
		CVR:      m.CVR,
		CPA:      cpa,
		CPAKnown: m.CPAKnown,
	})
}

// Metrics derives CTR, CVR and CPA from the stored sums. It is computed on
// demand so derived values can never go stale with respect to the sums.
func (agg *Aggregate) Metrics() Metrics {
	var ans Metrics
	if agg.Clicks > 0 {
		ans.CVR = agg.Conversions / float64(agg.Clicks)
	}
	switch {
	case agg.ImpressionsKnown && agg.Impressions > 0:
		ans.CTR = float64(agg.Clicks) / float64(agg.Impressions)
		ans.CTRKnown = true
	case agg.ImpressionsKnown:
		// zero known impressions, so there is no rate to speak of
		ans.CTRKnown = true
	default:
		ans.CTR = 1.0
	}
	if agg.Conversions > 0 {
		ans.CPA = agg.Cost / agg.Conversions
		ans.CPAKnown = true

	} else {
		ans.CPA = math.NaN()
	}
	return ans
}
