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
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache memoizes whole analysis passes keyed by a digest of the input
// dataset and the effective options. It must be passed in explicitly; the
// pipeline itself stays cache-free so a hit and a miss are guaranteed to
// yield identical tables. There is no eviction - one analysis session holds
// a handful of parameter combinations at most.
type Cache struct {
	entries map[string][]byte
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

// Len reports the number of memoized result sets.
func (c *Cache) Len() int {
	return len(c.entries)
}

// DatasetKey produces the idempotent digest identifying one
// (records, options) combination. Any change to a record, a requested size,
// the stop-word set or a threshold produces a different key.
func DatasetKey(records []QueryRecord, opts Options) string {
	sum := sha1.New()
	fmt.Fprintf(sum, "sizes=%v#minOcc=%d#stops=%t#sort=%s#", opts.Sizes, opts.MinOccurrences, opts.UseStopWords, opts.SortMetric)
	custom := make([]string, len(opts.CustomStopWords))
	copy(custom, opts.CustomStopWords)
	sort.Strings(custom)
	fmt.Fprintf(sum, "custom=%v#", custom)
	for _, rec := range records {
		if rec.HasImpressions() {
			fmt.Fprintf(sum, "%s#%d#%f#%f#%d\n", rec.Query, rec.Clicks, rec.Cost, rec.Conversions, *rec.Impressions)

		} else {
			fmt.Fprintf(sum, "%s#%d#%f#%f#-\n", rec.Query, rec.Clicks, rec.Cost, rec.Conversions)
		}
	}
	return hex.EncodeToString(sum.Sum(nil))
}

// AnalyzeCached behaves exactly like Analyze but reuses a previously
// computed result set when the cache already holds one for the same input.
func AnalyzeCached(cache *Cache, records []QueryRecord, opts Options) (*ResultSet, error) {
	if cache == nil {
		return Analyze(records, opts)
	}
	key := DatasetKey(records, opts)
	if raw, ok := cache.entries[key]; ok {
		var ans ResultSet
		if err := msgpack.Unmarshal(raw, &ans); err != nil {
			return nil, fmt.Errorf("failed to decode cached result set: %w", err)
		}
		return &ans, nil
	}
	ans, err := Analyze(records, opts)
	if err != nil {
		return nil, err
	}
	raw, err := msgpack.Marshal(ans)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result set for caching: %w", err)
	}
	cache.entries[key] = raw
	return ans, nil
}
