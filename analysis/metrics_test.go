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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsHappyPath(t *testing.T) {
	agg := &Aggregate{
		Clicks:           150,
		Cost:             245.50,
		Conversions:      12,
		Impressions:      2500,
		ImpressionsKnown: true,
	}
	m := agg.Metrics()
	assert.InDelta(t, 0.08, m.CVR, 1e-9)
	assert.True(t, m.CTRKnown)
	assert.InDelta(t, 0.06, m.CTR, 1e-9)
	assert.True(t, m.CPAKnown)
	assert.InDelta(t, 245.50/12, m.CPA, 1e-9)
}

func TestMetricsZeroClicksZeroCVR(t *testing.T) {
	agg := &Aggregate{Cost: 10, ImpressionsKnown: true, Impressions: 100}
	m := agg.Metrics()
	assert.Equal(t, 0.0, m.CVR)
}

func TestMetricsUnknownImpressionsCTRFallback(t *testing.T) {
	agg := &Aggregate{Clicks: 50, Cost: 10, Conversions: 1}
	m := agg.Metrics()
	assert.False(t, m.CTRKnown)
	assert.Equal(t, 1.0, m.CTR)
}

func TestMetricsKnownZeroImpressions(t *testing.T) {
	agg := &Aggregate{ImpressionsKnown: true}
	m := agg.Metrics()
	assert.True(t, m.CTRKnown)
	assert.Equal(t, 0.0, m.CTR)
}

func TestMetricsZeroConversionsCPAUndefined(t *testing.T) {
	agg := &Aggregate{Clicks: 10, Cost: 99.9, ImpressionsKnown: true, Impressions: 100}
	m := agg.Metrics()
	assert.False(t, m.CPAKnown)
	assert.True(t, math.IsNaN(m.CPA))
}
