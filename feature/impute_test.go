// Copyright 2024 riskbench Project Authors
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

package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskbench-io/riskbench/dataset"
)

func newSparseTable() *dataset.Table {
	t := dataset.NewTable()
	t.SetColumn("A", dataset.NewNumericSeries([]float64{1, math.NaN(), 3, 5}))
	t.SetColumn("B", dataset.NewNumericSeries([]float64{10, 10, math.NaN(), 30}))
	t.SetColumn("C", dataset.NewStringSeries([]string{"x", "y", "x", "y"}))
	return t
}

func TestImputeMedian(t *testing.T) {
	table := newSparseTable()
	imputed, err := Impute(table, StrategyMedian, nil)
	require.NoError(t, err)
	// filled with the per-column median of non-missing values
	assert.Equal(t, []float64{1, 3, 3, 5}, imputed.Column("A").Floats)
	assert.Equal(t, []float64{10, 10, 10, 30}, imputed.Column("B").Floats)
	// non-missing values and the input table are untouched
	assert.True(t, math.IsNaN(table.Column("A").Floats[1]))
	for _, name := range []string{"A", "B"} {
		column := imputed.Column(name)
		for i := 0; i < column.Len(); i++ {
			assert.False(t, column.Missing(i))
		}
	}
}

func TestImputeMean(t *testing.T) {
	table := newSparseTable()
	imputed, err := Impute(table, StrategyMean, []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 3, 5}, imputed.Column("A").Floats)
	// untargeted column keeps its missing value
	assert.True(t, imputed.Column("B").Missing(2))
}

func TestImputeMode(t *testing.T) {
	table := newSparseTable()
	imputed, err := Impute(table, StrategyMode, []string{"B"})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 10, 10, 30}, imputed.Column("B").Floats)
	// mode of an all-missing column falls back to zero
	empty := dataset.NewTable()
	empty.SetColumn("A", dataset.NewNumericSeries([]float64{math.NaN(), math.NaN()}))
	imputed, err = Impute(empty, StrategyMode, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, imputed.Column("A").Floats)
}

func TestImputeDrop(t *testing.T) {
	table := newSparseTable()
	dropped, err := Impute(table, StrategyDrop, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped.NumRows())
	assert.Equal(t, []float64{1, 5}, dropped.Column("A").Floats)
	assert.Equal(t, []string{"x", "y"}, dropped.Column("C").Strings)
}

func TestImputeRejectsInvalidInput(t *testing.T) {
	table := newSparseTable()
	_, err := Impute(table, Strategy(42), nil)
	assert.Error(t, err)
	_, err = Impute(table, StrategyMedian, []string{"C"})
	assert.Error(t, err)
	_, err = Impute(table, StrategyMedian, []string{"Unknown"})
	assert.Error(t, err)
}

func TestParseStrategy(t *testing.T) {
	strategy, err := ParseStrategy("median")
	require.NoError(t, err)
	assert.Equal(t, StrategyMedian, strategy)
	assert.Equal(t, "median", strategy.String())
	_, err = ParseStrategy("bogus")
	assert.Error(t, err)
}
