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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheTestRecords() []QueryRecord {
	return []QueryRecord{
		WithImpressions("remortgage rates", 150, 245.50, 12, 2500),
		WithImpressions("cheap remortgage", 89, 156.20, 7, 1800),
	}
}

func TestDatasetKeyStable(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(
		t,
		DatasetKey(cacheTestRecords(), opts),
		DatasetKey(cacheTestRecords(), opts),
	)
}

func TestDatasetKeyChangesWithOptions(t *testing.T) {
	records := cacheTestRecords()
	base := DatasetKey(records, DefaultOptions())

	opts := DefaultOptions()
	opts.MinOccurrences = 3
	assert.NotEqual(t, base, DatasetKey(records, opts))

	opts = DefaultOptions()
	opts.CustomStopWords = []string{"cheap"}
	assert.NotEqual(t, base, DatasetKey(records, opts))

	opts = DefaultOptions()
	opts.Sizes = []int{1, 2}
	assert.NotEqual(t, base, DatasetKey(records, opts))
}

func TestDatasetKeyChangesWithRecords(t *testing.T) {
	records := cacheTestRecords()
	base := DatasetKey(records, DefaultOptions())
	changed := cacheTestRecords()
	changed[0].Cost += 0.01
	assert.NotEqual(t, base, DatasetKey(changed, DefaultOptions()))

	noImpr := cacheTestRecords()
	noImpr[0].Impressions = nil
	assert.NotEqual(t, base, DatasetKey(noImpr, DefaultOptions()))
}

func TestAnalyzeCachedHitMatchesMiss(t *testing.T) {
	cache := NewCache()
	opts := Options{Sizes: []int{2}, MinOccurrences: 1, SortMetric: MetricCost}
	miss, err := AnalyzeCached(cache, cacheTestRecords(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	hit, err := AnalyzeCached(cache, cacheTestRecords(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	require.Equal(t, miss.Sizes, hit.Sizes)
	for _, n := range miss.Sizes {
		require.Equal(t, len(miss.Tables[n]), len(hit.Tables[n]))
		for i := range miss.Tables[n] {
			assert.Equal(t, *miss.Tables[n][i], *hit.Tables[n][i])
		}
	}
}

func TestAnalyzeCachedNilCache(t *testing.T) {
	rs, err := AnalyzeCached(nil, cacheTestRecords(), Options{Sizes: []int{1}, MinOccurrences: 1, SortMetric: MetricCost})
	require.NoError(t, err)
	assert.NotZero(t, rs.NumRows())
}
