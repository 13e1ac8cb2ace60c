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
	"strings"
	"unicode"
)

// Tokenizer normalizes raw search queries into cleaned word tokens.
// A zero-value Tokenizer performs no stop-word filtering.
type Tokenizer struct {
	stopWords map[string]struct{}
}

// NewTokenizer creates a tokenizer. With useStopWords enabled, the default
// English stop-word list plus customStopWords is applied (case-insensitive).
func NewTokenizer(useStopWords bool, customStopWords []string) *Tokenizer {
	t := &Tokenizer{stopWords: make(map[string]struct{})}
	if useStopWords {
		for _, w := range defaultStopWords {
			t.stopWords[w] = struct{}{}
		}
		for _, w := range customStopWords {
			t.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
	return t
}

// AddStopWord extends the active stop-word set.
func (t *Tokenizer) AddStopWord(word string) {
	t.stopWords[strings.ToLower(word)] = struct{}{}
}

// Clean lowercases a query, replaces any character which is not a letter,
// a digit or an underscore with a space and splits the rest on whitespace.
// Hyphens act as separators, i.e. "e-bike" produces tokens "e", "bike".
// Stop words are removed only after splitting so dropping one never glues
// its neighbours into a new contiguous pair.
func (t *Tokenizer) Clean(query string) []string {
	var norm strings.Builder
	norm.Grow(len(query))
	for _, r := range query {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			norm.WriteRune(unicode.ToLower(r))

		} else {
			norm.WriteByte(' ')
		}
	}
	words := strings.Fields(norm.String())
	if len(t.stopWords) == 0 {
		return words
	}
	ans := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := t.stopWords[w]; !ok {
			ans = append(ans, w)
		}
	}
	return ans
}
