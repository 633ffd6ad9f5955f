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
	"math/rand"

	"github.com/juju/errors"

	"github.com/riskbench-io/riskbench/common/parallel"
	"github.com/riskbench-io/riskbench/dataset"
)

// RandomForest averages bagged regression trees. Trees are grown from
// bootstrap samples with deterministic per-tree seeds, so fits with the same
// RandomState are reproducible regardless of Jobs. Feature importance is the
// normalized impurity reduction accumulated over all trees.
type RandomForest struct {
	BaseModel
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	// MaxFeatures is the number of candidate features per split; 0 uses
	// all features.
	MaxFeatures int
	RandomState int64
	Jobs        int
	trees       []*treeNode
}

// NewRandomForest creates an untrained random forest with default
// hyper-parameters.
func NewRandomForest() *RandomForest {
	return &RandomForest{
		BaseModel:       BaseModel{name: "Random Forest"},
		NumTrees:        100,
		MaxDepth:        10,
		MinSamplesSplit: 2,
		RandomState:     42,
		Jobs:            1,
	}
}

func (rf *RandomForest) Fit(x *dataset.Table, y []float64) error {
	features, err := checkFit(x, y)
	if err != nil {
		return errors.Trace(err)
	}
	rows, err := x.Matrix(features)
	if err != nil {
		return errors.Trace(err)
	}
	trees := make([]*treeNode, rf.NumTrees)
	treeGains := make([][]float64, rf.NumTrees)
	parallel.For(rf.NumTrees, rf.Jobs, func(t int) {
		rng := rand.New(rand.NewSource(rf.RandomState + int64(t)))
		// bootstrap sample
		indices := make([]int, len(y))
		for i := range indices {
			indices[i] = rng.Intn(len(y))
		}
		sampleX, sampleY := gatherRows(rows, y, indices)
		cfg := &treeConfig{
			maxDepth:        rf.MaxDepth,
			minSamplesSplit: rf.MinSamplesSplit,
			maxFeatures:     rf.MaxFeatures,
			rng:             rng,
			gains:           make([]float64, len(features)),
		}
		trees[t] = buildTree(sampleX, sampleY, 0, cfg)
		treeGains[t] = cfg.gains
	})
	gains := make([]float64, len(features))
	for _, tg := range treeGains {
		for i, gain := range tg {
			gains[i] += gain
		}
	}
	rf.trees = trees
	rf.setFitted(features, importanceFromGains(features, gains))
	return nil
}

func (rf *RandomForest) Predict(x *dataset.Table) ([]float64, error) {
	if !rf.IsFitted() {
		return nil, errors.Trace(ErrNotFitted)
	}
	rows, err := x.Matrix(rf.Features())
	if err != nil {
		return nil, errors.Trace(err)
	}
	predictions := make([]float64, len(rows))
	for i, row := range rows {
		sum := 0.0
		for _, tree := range rf.trees {
			sum += predictTree(tree, row)
		}
		predictions[i] = sum / float64(len(rf.trees))
	}
	return predictions, nil
}
