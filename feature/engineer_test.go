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

func newClaimsTable() *dataset.Table {
	t := dataset.NewTable()
	t.SetColumn(ColTransactionMonth, dataset.NewStringSeries([]string{
		"2014-06-01", "2015-03-01", "not a date", "",
	}))
	t.SetColumn(ColRegistrationYear, dataset.NewNumericSeries([]float64{
		2010, 2020, 2005, math.NaN(),
	}))
	t.SetColumn(ColTotalClaims, dataset.NewNumericSeries([]float64{0, 100, 30, math.NaN()}))
	t.SetColumn(ColTotalPremium, dataset.NewNumericSeries([]float64{100, 0, 60, 40}))
	return t
}

// assertSameFloats compares series treating NaN as equal to NaN.
func assertSameFloats(t *testing.T, expected, actual []float64) {
	t.Helper()
	require.Equal(t, len(expected), len(actual))
	for i := range expected {
		if math.IsNaN(expected[i]) {
			assert.True(t, math.IsNaN(actual[i]), "row %d", i)
		} else {
			assert.InDelta(t, expected[i], actual[i], 1e-12, "row %d", i)
		}
	}
}

func TestEngineerCalendar(t *testing.T) {
	engineered := Engineer(newClaimsTable())
	assertSameFloats(t, []float64{2014, 2015, math.NaN(), math.NaN()}, engineered.Column("Year").Floats)
	assertSameFloats(t, []float64{6, 3, math.NaN(), math.NaN()}, engineered.Column("Month").Floats)
	assertSameFloats(t, []float64{2, 1, math.NaN(), math.NaN()}, engineered.Column("Quarter").Floats)
}

func TestEngineerVehicleAge(t *testing.T) {
	engineered := Engineer(newClaimsTable())
	// reference year is the maximum parsed transaction year (2015) and
	// negative ages clip to zero
	assertSameFloats(t, []float64{5, 0, 10, math.NaN()}, engineered.Column("VehicleAge").Floats)
	for i, age := range engineered.Column("VehicleAge").Floats {
		if !math.IsNaN(age) {
			assert.GreaterOrEqual(t, age, 0.0, "row %d", i)
		}
	}
}

func TestEngineerVehicleAgeFallbackYear(t *testing.T) {
	table := dataset.NewTable()
	table.SetColumn(ColRegistrationYear, dataset.NewNumericSeries([]float64{2010}))
	engineered := Engineer(table)
	assert.Equal(t, []float64{5}, engineered.Column("VehicleAge").Floats)
}

func TestEngineerRatios(t *testing.T) {
	engineered := Engineer(newClaimsTable())
	// LossRatio is missing exactly when TotalPremium == 0
	assertSameFloats(t, []float64{0, math.NaN(), 0.5, math.NaN()}, engineered.Column("LossRatio").Floats)
	assertSameFloats(t, []float64{100, -100, 30, math.NaN()}, engineered.Column("Margin").Floats)
	// HasClaim is 1 iff TotalClaims > 0 and never missing
	assert.Equal(t, []float64{0, 1, 1, 0}, engineered.Column("HasClaim").Floats)
}

func TestEngineerDoesNotMutateInput(t *testing.T) {
	table := newClaimsTable()
	before := table.NumCols()
	Engineer(table)
	assert.Equal(t, before, table.NumCols())
}

func TestEngineerIdempotent(t *testing.T) {
	once := Engineer(newClaimsTable())
	twice := Engineer(once)
	assert.Equal(t, once.Names(), twice.Names())
	for _, name := range []string{"Year", "Month", "Quarter", "VehicleAge", "LossRatio", "Margin", "HasClaim"} {
		assertSameFloats(t, once.Column(name).Floats, twice.Column(name).Floats)
	}
}

func TestEngineerSkipsMissingPrerequisites(t *testing.T) {
	table := dataset.NewTable()
	table.SetColumn("Province", dataset.NewStringSeries([]string{"Gauteng"}))
	engineered := Engineer(table)
	assert.False(t, engineered.Has("Year"))
	assert.False(t, engineered.Has("LossRatio"))
	assert.False(t, engineered.Has("HasClaim"))
	assert.False(t, engineered.Has("VehicleAge"))
}
