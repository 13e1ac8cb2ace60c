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

package apiserver

import (
	"testing"

	"github.com/blievens89/ngram/cnf"
	"github.com/stretchr/testify/assert"
)

func testAPIServer() *apiServer {
	return &apiServer{
		conf: &cnf.Conf{
			Analysis: cnf.AnalysisConf{
				Sizes:           []int{1, 2, 3},
				MinOccurrences:  2,
				CustomStopWords: []string{"brand"},
				SortMetric:      "cost",
			},
		},
	}
}

func TestResolveOptionsNilRequest(t *testing.T) {
	api := testAPIServer()
	opts := api.resolveOptions(nil)
	assert.Equal(t, api.conf.Analysis.ToOptions(), opts)
}

func TestResolveOptionsPartialKeepsConfiguredStopWords(t *testing.T) {
	api := testAPIServer()
	opts := api.resolveOptions(&requestOptions{Sizes: []int{2}})
	assert.Equal(t, []int{2}, opts.Sizes)
	assert.True(t, opts.UseStopWords)
	assert.Equal(t, []string{"brand"}, opts.CustomStopWords)
	assert.Equal(t, 2, opts.MinOccurrences)
}

func TestResolveOptionsExplicitOverrides(t *testing.T) {
	api := testAPIServer()
	noStops := false
	minOcc := 5
	custom := []string{}
	opts := api.resolveOptions(&requestOptions{
		MinOccurrences:  &minOcc,
		UseStopWords:    &noStops,
		CustomStopWords: &custom,
		SortMetric:      "clicks",
	})
	assert.Equal(t, []int{1, 2, 3}, opts.Sizes)
	assert.False(t, opts.UseStopWords)
	assert.Empty(t, opts.CustomStopWords)
	assert.Equal(t, 5, opts.MinOccurrences)
	assert.Equal(t, "clicks", string(opts.SortMetric))
}
