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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComparator() *Comparator {
	comparator := NewComparator()
	comparator.Add(NewLinearRegression())
	forest := NewRandomForest()
	forest.NumTrees = 10
	forest.MaxDepth = 4
	comparator.Add(forest)
	return comparator
}

func TestComparatorEvaluateAll(t *testing.T) {
	x, y := newLineTable()
	comparator := newComparator()
	require.NoError(t, comparator.TrainAll(x, y))

	results, err := comparator.EvaluateAll(x, y)
	require.NoError(t, err)
	// exactly one row per registered model, in registration order
	require.Len(t, results, 2)
	assert.Equal(t, "Linear Regression", results[0].Model)
	assert.Equal(t, "Random Forest", results[1].Model)

	// the latest score is retrievable by name
	scores := comparator.Scores()
	require.Len(t, scores, 2)
	assert.Equal(t, results[0].Score, scores["Linear Regression"])
	assert.Equal(t, results[1].Score, scores["Random Forest"])
}

func TestComparatorDeterministic(t *testing.T) {
	x, y := newLineTable()

	run := func() []Result {
		comparator := newComparator()
		require.NoError(t, comparator.TrainAll(x, y))
		results, err := comparator.EvaluateAll(x, y)
		require.NoError(t, err)
		return results
	}
	first, second := run(), run()
	for i := range first {
		assert.Equal(t, first[i].Model, second[i].Model)
		assert.InDelta(t, first[i].RMSE, second[i].RMSE, 1e-12)
		assert.InDelta(t, first[i].MAE, second[i].MAE, 1e-12)
		assert.InDelta(t, first[i].R2, second[i].R2, 1e-12)
		assert.InDelta(t, first[i].MeanError, second[i].MeanError, 1e-12)
	}
}

func TestComparatorFeatureImportance(t *testing.T) {
	x, y := newLineTable()
	comparator := newComparator()
	// models without a computed importance are omitted
	comparator.Add(&constantRegressor{value: 1})
	require.NoError(t, comparator.TrainAll(x, y))

	importances := comparator.FeatureImportance(1)
	assert.Len(t, importances, 2)
	assert.NotContains(t, importances, "Constant")
	assert.Len(t, importances["Linear Regression"], 1)
	assert.Equal(t, "Premium", importances["Linear Regression"][0].Feature)
}

func TestComparatorTrainAllFailure(t *testing.T) {
	x, y := newLineTable()
	comparator := newComparator()
	assert.Error(t, comparator.TrainAll(x, y[:3]))
}
