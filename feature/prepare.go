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
	"github.com/juju/errors"
	"github.com/samber/lo"

	"github.com/riskbench-io/riskbench/dataset"
)

// DefaultExcludeColumns are identifier and date columns never used as
// features.
var DefaultExcludeColumns = []string{"PolicyID", "UnderwrittenCoverID", ColTransactionMonth}

// PrepareForModeling splits a table into a numeric feature table and a
// target vector. exclude defaults to DefaultExcludeColumns. Missing feature
// values are handled by the given strategy; the drop strategy removes
// incomplete rows from the features and the target alike, so the feature
// row count always equals the target length.
func PrepareForModeling(t *dataset.Table, target string, exclude []string, strategy Strategy) (*dataset.Table, []float64, error) {
	if exclude == nil {
		exclude = DefaultExcludeColumns
	}
	targetColumn := t.Column(target)
	if targetColumn == nil {
		return nil, nil, errors.NotFoundf("target column %s", target)
	}
	if targetColumn.Kind != dataset.Numeric {
		return nil, nil, errors.NotValidf("non-numeric target column %s", target)
	}
	featureCols := lo.Filter(t.NumericNames(), func(name string, _ int) bool {
		return name != target && !lo.Contains(exclude, name)
	})
	x, err := t.Select(featureCols)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	y := make([]float64, targetColumn.Len())
	copy(y, targetColumn.Floats)
	if strategy == StrategyDrop {
		var indices []int
		for i := 0; i < x.NumRows(); i++ {
			complete := true
			for _, name := range featureCols {
				if x.Column(name).Missing(i) {
					complete = false
					break
				}
			}
			if complete {
				indices = append(indices, i)
			}
		}
		kept := make([]float64, len(indices))
		for i, index := range indices {
			kept[i] = y[index]
		}
		return x.SubSet(indices), kept, nil
	}
	x, err = Impute(x, strategy, nil)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	return x, y, nil
}
