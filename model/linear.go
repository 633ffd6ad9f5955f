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
	"math"

	"github.com/juju/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/riskbench-io/riskbench/dataset"
)

// LinearRegression fits an ordinary least squares model through the thin
// singular value decomposition. Underdetermined and rank-deficient systems
// receive the minimum-norm solution instead of an error. Feature importance
// is the absolute coefficient magnitude.
type LinearRegression struct {
	BaseModel
	coefficients []float64
	intercept    float64
}

// NewLinearRegression creates an untrained linear regression model.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{BaseModel: BaseModel{name: "Linear Regression"}}
}

func (lr *LinearRegression) Fit(x *dataset.Table, y []float64) error {
	features, err := checkFit(x, y)
	if err != nil {
		return errors.Trace(err)
	}
	rows, err := x.Matrix(features)
	if err != nil {
		return errors.Trace(err)
	}
	n, p := len(rows), len(features)
	if n == 0 {
		return errors.NotValidf("empty training set")
	}
	// design matrix with intercept column
	a := mat.NewDense(n, p+1, nil)
	b := mat.NewVecDense(n, nil)
	for i, row := range rows {
		a.Set(i, 0, 1)
		for j, value := range row {
			if math.IsNaN(value) {
				return errors.NotValidf("missing value in feature %s", features[j])
			}
			a.Set(i, j+1, value)
		}
		b.SetVec(i, y[i])
	}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return errors.Errorf("singular value decomposition failed")
	}
	singular := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	// beta = V * diag(1/s) * U^T * b, truncating singular values below the
	// numeric rank tolerance
	larger := n
	if p+1 > larger {
		larger = p + 1
	}
	eps := math.Nextafter(1, 2) - 1
	tolerance := float64(larger) * singular[0] * eps
	beta := make([]float64, p+1)
	for k, s := range singular {
		if s <= tolerance {
			continue
		}
		c := 0.0
		for i := 0; i < n; i++ {
			c += u.At(i, k) * b.AtVec(i)
		}
		c /= s
		for j := range beta {
			beta[j] += v.At(j, k) * c
		}
	}
	lr.intercept = beta[0]
	lr.coefficients = make([]float64, p)
	importance := make([]Importance, p)
	for j := 0; j < p; j++ {
		lr.coefficients[j] = beta[j+1]
		importance[j] = Importance{Feature: features[j], Score: math.Abs(lr.coefficients[j])}
	}
	lr.setFitted(features, sortImportance(importance))
	return nil
}

func (lr *LinearRegression) Predict(x *dataset.Table) ([]float64, error) {
	if !lr.IsFitted() {
		return nil, errors.Trace(ErrNotFitted)
	}
	rows, err := x.Matrix(lr.Features())
	if err != nil {
		return nil, errors.Trace(err)
	}
	predictions := make([]float64, len(rows))
	for i, row := range rows {
		sum := lr.intercept
		for j, value := range row {
			sum += lr.coefficients[j] * value
		}
		predictions[i] = sum
	}
	return predictions, nil
}

// Coefficients returns the fitted slope per feature, in feature order.
func (lr *LinearRegression) Coefficients() []float64 {
	return lr.coefficients
}

// Intercept returns the fitted intercept.
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}
