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

package main

import (
	"testing"

	"github.com/blievens89/ngram/analysis"
	"github.com/stretchr/testify/assert"
)

func TestTakeTop(t *testing.T) {
	rows := []*analysis.Aggregate{
		{Key: "a"}, {Key: "b"}, {Key: "c"},
	}
	assert.Len(t, takeTop(rows, 2), 2)
	assert.Len(t, takeTop(rows, 10), 3)
	assert.Empty(t, takeTop(rows, 0))
	assert.Empty(t, takeTop(rows, -1))
	assert.Empty(t, takeTop(nil, 5))
}

func TestNearestKeys(t *testing.T) {
	rows := []*analysis.Aggregate{
		{Key: "remortgage rates"},
		{Key: "remortgage deals"},
		{Key: "bridging loans"},
	}
	sugg := nearestKeys("remortgage rate", rows, 3)
	assert.NotEmpty(t, sugg)
	assert.Equal(t, "remortgage rates", string(sugg[0]))
	assert.Empty(t, nearestKeys("zzz", rows, 3))
}
