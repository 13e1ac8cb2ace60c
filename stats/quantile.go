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

package stats

import (
	"fmt"
	"math"
	"sort"
)

// Quantile computes the q-th quantile (q in [0, 1]) of values using linear
// interpolation between order statistics: for sorted x of length n and
// h = (n-1)*q, the result is x[floor(h)] + (h-floor(h)) * (x[floor(h)+1] - x[floor(h)]).
// This is the same method pandas' Series.quantile applies by default, which
// keeps thresholds comparable with the older spreadsheets-based workflow.
// The input slice is not modified.
func Quantile(values []float64, q float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("cannot compute quantile of an empty sample")
	}
	if q < 0 || q > 1 {
		return 0, fmt.Errorf("invalid quantile %f (must be within [0, 1])", q)
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * q
	lo := int(math.Floor(h))
	if lo == len(sorted)-1 {
		return sorted[lo], nil
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), nil
}

// Percentile is Quantile with p expressed in the 0-100 range.
func Percentile(values []float64, p float64) (float64, error) {
	if p < 0 || p > 100 {
		return 0, fmt.Errorf("invalid percentile %f (must be within [0, 100])", p)
	}
	return Quantile(values, p/100)
}

// Max returns the maximum of values or 0 for an empty slice.
func Max(values []float64) float64 {
	var ans float64
	for i, v := range values {
		if i == 0 || v > ans {
			ans = v
		}
	}
	return ans
}
