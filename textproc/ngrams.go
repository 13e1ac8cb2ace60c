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

package textproc

import (
	"fmt"
	"strings"
)

// MaxNgramSize is the largest supported window size.
const MaxNgramSize = 4

// Key is the canonical form of an n-gram: cleaned tokens joined by a single
// space, order preserved. "cheap remortgage" and "remortgage cheap" are
// different keys.
type Key string

// KeyOf builds a Key from an ordered token window.
func KeyOf(tokens []string) Key {
	return Key(strings.Join(tokens, " "))
}

// Tokens splits the key back into its tokens.
func (k Key) Tokens() []string {
	return strings.Fields(string(k))
}

// Size returns the number of tokens in the key.
func (k Key) Size() int {
	return len(k.Tokens())
}

// ValidateSize rejects window sizes outside 1..MaxNgramSize.
func ValidateSize(n int) error {
	if n < 1 || n > MaxNgramSize {
		return fmt.Errorf("invalid n-gram size %d (supported range: 1..%d)", n, MaxNgramSize)
	}
	return nil
}

// ExtractNgrams returns all contiguous n-token windows of tokens in
// left-to-right order. Fewer than n tokens produce no windows - there is
// no padding and no wraparound. The size must be validated by the caller.
func ExtractNgrams(tokens []string, n int) []Key {
	if len(tokens) < n {
		return nil
	}
	ans := make([]Key, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		ans = append(ans, KeyOf(tokens[i:i+n]))
	}
	return ans
}

// DistinctNgrams returns the distinct n-gram keys of tokens in first-seen
// order. A query repeating the same window still yields the key once, which
// is what keeps one query from contributing its spend twice to a single key.
func DistinctNgrams(tokens []string, n int) []Key {
	all := ExtractNgrams(tokens, n)
	if len(all) < 2 {
		return all
	}
	seen := make(map[Key]struct{}, len(all))
	ans := make([]Key, 0, len(all))
	for _, k := range all {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ans = append(ans, k)
	}
	return ans
}
