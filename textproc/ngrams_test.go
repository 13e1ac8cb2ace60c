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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNgramsThreeTokenBoundaries(t *testing.T) {
	tokens := []string{"cheap", "remortgage", "calculator"}
	assert.Equal(
		t,
		[]Key{"cheap", "remortgage", "calculator"},
		ExtractNgrams(tokens, 1),
	)
	assert.Equal(
		t,
		[]Key{"cheap remortgage", "remortgage calculator"},
		ExtractNgrams(tokens, 2),
	)
	assert.Equal(
		t,
		[]Key{"cheap remortgage calculator"},
		ExtractNgrams(tokens, 3),
	)
	assert.Empty(t, ExtractNgrams(tokens, 4))
}

func TestExtractNgramsShortInput(t *testing.T) {
	assert.Empty(t, ExtractNgrams([]string{"test"}, 2))
	assert.Empty(t, ExtractNgrams(nil, 1))
}

func TestExtractNgramsPreservesTokenOrder(t *testing.T) {
	assert.Equal(
		t,
		[]Key{"rates remortgage"},
		ExtractNgrams([]string{"rates", "remortgage"}, 2),
	)
}

func TestDistinctNgramsDeduplicatesRepeatedWindows(t *testing.T) {
	// "loan for loan" style repetition: the unigram appears twice
	tokens := []string{"loan", "company", "loan"}
	assert.Equal(t, []Key{"loan", "company"}, DistinctNgrams(tokens, 1))
	assert.Equal(
		t,
		[]Key{"loan company", "company loan"},
		DistinctNgrams(tokens, 2),
	)
}

func TestKeyRoundtrip(t *testing.T) {
	k := KeyOf([]string{"cheap", "remortgage"})
	assert.Equal(t, Key("cheap remortgage"), k)
	assert.Equal(t, []string{"cheap", "remortgage"}, k.Tokens())
	assert.Equal(t, 2, k.Size())
}

func TestValidateSize(t *testing.T) {
	for n := 1; n <= MaxNgramSize; n++ {
		assert.NoError(t, ValidateSize(n))
	}
	assert.Error(t, ValidateSize(0))
	assert.Error(t, ValidateSize(5))
	assert.Error(t, ValidateSize(-1))
}
