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

package dataset

import (
	"math/rand"

	"github.com/juju/errors"
)

// Split shuffles rows with the given seed and splits features and target
// into train and test partitions. testRatio is the fraction of rows held
// out for testing.
func Split(x *Table, y []float64, testRatio float64, seed int64) (trainX, testX *Table, trainY, testY []float64, err error) {
	if x.NumRows() != len(y) {
		return nil, nil, nil, nil, errors.NotValidf("feature rows %d != target rows %d", x.NumRows(), len(y))
	}
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, nil, nil, errors.NotValidf("test ratio %f", testRatio)
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(x.NumRows())
	testSize := int(float64(x.NumRows()) * testRatio)
	testIndex := perm[:testSize]
	trainIndex := perm[testSize:]
	trainX = x.SubSet(trainIndex)
	testX = x.SubSet(testIndex)
	trainY = make([]float64, len(trainIndex))
	for i, index := range trainIndex {
		trainY[i] = y[index]
	}
	testY = make([]float64, len(testIndex))
	for i, index := range testIndex {
		testY[i] = y[index]
	}
	return trainX, testX, trainY, testY, nil
}
