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

func TestCleanLowercasesAndStripsPunctuation(t *testing.T) {
	tok := NewTokenizer(false, nil)
	assert.Equal(
		t,
		[]string{"best", "remortgage", "deals"},
		tok.Clean("Best Remortgage Deals!"),
	)
}

func TestCleanHyphensActAsSeparators(t *testing.T) {
	tok := NewTokenizer(false, nil)
	assert.Equal(t, []string{"e", "bike", "hire"}, tok.Clean("e-bike hire"))
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	tok := NewTokenizer(false, nil)
	assert.Equal(t, []string{"cheap", "loans"}, tok.Clean("  cheap \t  loans  "))
}

func TestCleanKeepsUnderscoreAndDigits(t *testing.T) {
	tok := NewTokenizer(false, nil)
	assert.Equal(t, []string{"my_brand", "24", "7"}, tok.Clean("my_brand 24/7"))
}

func TestCleanEmptyResult(t *testing.T) {
	tok := NewTokenizer(false, nil)
	assert.Empty(t, tok.Clean("!!! ???"))
	assert.Empty(t, tok.Clean(""))
}

func TestCleanRemovesDefaultStopWords(t *testing.T) {
	tok := NewTokenizer(true, nil)
	assert.Equal(
		t,
		[]string{"remortgage", "rates"},
		tok.Clean("remortgage for the rates"),
	)
}

func TestCleanCustomStopWordsAreCaseNormalized(t *testing.T) {
	tok := NewTokenizer(true, []string{"CHEAP"})
	assert.Equal(t, []string{"loans"}, tok.Clean("cheap loans"))
}

func TestCleanNoFilteringWhenDisabled(t *testing.T) {
	tok := NewTokenizer(false, []string{"cheap"})
	assert.Equal(t, []string{"cheap", "loans", "for", "me"}, tok.Clean("cheap loans for me"))
}

func TestAddStopWord(t *testing.T) {
	tok := NewTokenizer(true, nil)
	tok.AddStopWord("Loans")
	assert.Equal(t, []string{"cheap"}, tok.Clean("cheap loans"))
}
