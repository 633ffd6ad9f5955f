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

func TestOneHot(t *testing.T) {
	table := dataset.NewTable()
	table.SetColumn("Gender", dataset.NewStringSeries([]string{"M", "F", "M", ""}))
	table.SetColumn("Premium", dataset.NewNumericSeries([]float64{1, 2, 3, 4}))
	encoded, err := OneHot(table, nil)
	require.NoError(t, err)
	assert.False(t, encoded.Has("Gender"))
	assert.Equal(t, []float64{0, 1, 0, 0}, encoded.Column("Gender_F").Floats)
	assert.Equal(t, []float64{1, 0, 1, 0}, encoded.Column("Gender_M").Floats)
	// numeric columns pass through untouched
	assert.Equal(t, []float64{1, 2, 3, 4}, encoded.Column("Premium").Floats)
	// input table is not mutated
	assert.True(t, table.Has("Gender"))
}

func TestOneHotRejectsNumericColumn(t *testing.T) {
	table := dataset.NewTable()
	table.SetColumn("Premium", dataset.NewNumericSeries([]float64{1}))
	_, err := OneHot(table, []string{"Premium"})
	assert.Error(t, err)
}

func TestLabelEncoderStableAcrossCalls(t *testing.T) {
	encoder := NewLabelEncoder()

	first := dataset.NewTable()
	first.SetColumn("Province", dataset.NewStringSeries([]string{"Gauteng", "Limpopo", "Gauteng"}))
	encoded, err := encoder.Transform(first, nil)
	require.NoError(t, err)
	require.Equal(t, dataset.Numeric, encoded.Column("Province").Kind)
	assert.Equal(t, []float64{0, 1, 0}, encoded.Column("Province").Floats)

	// a later call with the same encoder keeps earlier codes and appends
	// codes for unseen categories
	second := dataset.NewTable()
	second.SetColumn("Province", dataset.NewStringSeries([]string{"Eastern Cape", "Gauteng"}))
	encoded, err = encoder.Transform(second, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0}, encoded.Column("Province").Floats)
	assert.Equal(t, map[string]int{"Gauteng": 0, "Limpopo": 1, "Eastern Cape": 2}, encoder.Classes("Province"))
}

func TestPrepareForModeling(t *testing.T) {
	table := dataset.NewTable()
	table.SetColumn("PolicyID", dataset.NewNumericSeries([]float64{1, 2, 3}))
	table.SetColumn(ColTransactionMonth, dataset.NewStringSeries([]string{"2015-01-01", "2015-02-01", "2015-03-01"}))
	table.SetColumn("VehicleAge", dataset.NewNumericSeries([]float64{5, math.NaN(), 9}))
	table.SetColumn("Province", dataset.NewStringSeries([]string{"a", "b", "c"}))
	table.SetColumn(ColTotalClaims, dataset.NewNumericSeries([]float64{0, 100, 50}))

	x, y, err := PrepareForModeling(table, ColTotalClaims, nil, StrategyMedian)
	require.NoError(t, err)
	// only numeric non-identifier features remain, median imputed
	assert.Equal(t, []string{"VehicleAge"}, x.Names())
	assert.Equal(t, []float64{5, 7, 9}, x.Column("VehicleAge").Floats)
	assert.Equal(t, []float64{0, 100, 50}, y)
	assert.Equal(t, x.NumRows(), len(y))
}

func TestPrepareForModelingStrategies(t *testing.T) {
	newTable := func() *dataset.Table {
		table := dataset.NewTable()
		table.SetColumn("VehicleAge", dataset.NewNumericSeries([]float64{2, math.NaN(), 10}))
		table.SetColumn(ColTotalClaims, dataset.NewNumericSeries([]float64{0, 100, 50}))
		return table
	}
	// mean fills with the column mean instead of the median
	x, y, err := PrepareForModeling(newTable(), ColTotalClaims, nil, StrategyMean)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 6, 10}, x.Column("VehicleAge").Floats)
	assert.Equal(t, []float64{0, 100, 50}, y)
	// drop removes incomplete rows from features and target alike
	x, y, err = PrepareForModeling(newTable(), ColTotalClaims, nil, StrategyDrop)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 10}, x.Column("VehicleAge").Floats)
	assert.Equal(t, []float64{0, 50}, y)
	assert.Equal(t, x.NumRows(), len(y))
}

func TestPrepareForModelingMissingTarget(t *testing.T) {
	table := dataset.NewTable()
	table.SetColumn("VehicleAge", dataset.NewNumericSeries([]float64{1}))
	_, _, err := PrepareForModeling(table, ColTotalClaims, nil, StrategyMedian)
	assert.Error(t, err)
}
