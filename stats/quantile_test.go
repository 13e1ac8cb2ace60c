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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantileLinearInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	// h = 3 * 0.75 = 2.25 => 3 + 0.25 * (4 - 3)
	v, err := Quantile(values, 0.75)
	assert.NoError(t, err)
	assert.InDelta(t, 3.25, v, 1e-9)

	v, err = Quantile(values, 0.25)
	assert.NoError(t, err)
	assert.InDelta(t, 1.75, v, 1e-9)
}

func TestQuantileBoundaries(t *testing.T) {
	values := []float64{7, 1, 5}
	v, err := Quantile(values, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = Quantile(values, 1)
	assert.NoError(t, err)
	assert.Equal(t, 7.0, v)

	v, err = Quantile(values, 0.5)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestQuantileSingleValue(t *testing.T) {
	v, err := Quantile([]float64{42}, 0.75)
	assert.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestQuantileAllEqual(t *testing.T) {
	v, err := Quantile([]float64{3, 3, 3, 3}, 0.25)
	assert.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestQuantileDoesNotModifyInput(t *testing.T) {
	values := []float64{9, 1, 5}
	_, err := Quantile(values, 0.5)
	assert.NoError(t, err)
	assert.Equal(t, []float64{9, 1, 5}, values)
}

func TestQuantileErrors(t *testing.T) {
	_, err := Quantile(nil, 0.5)
	assert.Error(t, err)
	_, err = Quantile([]float64{1}, -0.1)
	assert.Error(t, err)
	_, err = Quantile([]float64{1}, 1.1)
	assert.Error(t, err)
}

func TestPercentile(t *testing.T) {
	v, err := Percentile([]float64{1, 2, 3, 4}, 75)
	assert.NoError(t, err)
	assert.InDelta(t, 3.25, v, 1e-9)

	_, err = Percentile([]float64{1}, 101)
	assert.Error(t, err)
}

func TestMax(t *testing.T) {
	assert.Equal(t, 9.0, Max([]float64{3, 9, 1}))
	assert.Equal(t, -1.0, Max([]float64{-4, -1}))
	assert.Equal(t, 0.0, Max(nil))
}
