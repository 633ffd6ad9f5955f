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

// Package model implements regression models over feature tables behind a
// shared train/predict contract, plus evaluation and model comparison.
package model

import (
	"math"
	"sort"

	"github.com/juju/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/riskbench-io/riskbench/dataset"
)

// ErrNotFitted is returned when Predict or Evaluate is called before Fit.
var ErrNotFitted = errors.New("model not trained")

// Regressor is the contract shared by all model variants. A regressor is
// constructed untrained, trained by Fit, and queried by Predict any number
// of times afterwards. Refitting is permitted and overwrites prior state.
type Regressor interface {
	// Name returns the human-readable model name.
	Name() string
	// Fit trains the model. The feature table must be numeric with one
	// target value per row.
	Fit(x *dataset.Table, y []float64) error
	// Predict returns one prediction per input row. It fails with
	// ErrNotFitted before training.
	Predict(x *dataset.Table) ([]float64, error)
	// FeatureImportance returns per-feature scores captured at training
	// time, sorted descending, or nil for untrained models.
	FeatureImportance() []Importance
}

// Importance is a nonnegative per-feature contribution score.
type Importance struct {
	Feature string
	Score   float64
}

// Score is the fixed evaluation metric set for regression models. MeanError
// is mean(y_true - y_pred) and indicates systematic over or under
// prediction.
type Score struct {
	RMSE      float64
	MAE       float64
	R2        float64
	MeanError float64
}

func (score Score) ZapFields() []zap.Field {
	return []zap.Field{
		zap.Float64("RMSE", score.RMSE),
		zap.Float64("MAE", score.MAE),
		zap.Float64("R2", score.R2),
		zap.Float64("MeanError", score.MeanError),
	}
}

// BaseModel carries the state shared by every regressor: the model name,
// the fitted flag, the training feature set and the importance ranking.
type BaseModel struct {
	name       string
	fitted     bool
	features   []string
	importance []Importance
}

// Name returns the human-readable model name.
func (m *BaseModel) Name() string {
	return m.name
}

// IsFitted reports whether the model has been trained.
func (m *BaseModel) IsFitted() bool {
	return m.fitted
}

// Features returns the feature names seen at training time.
func (m *BaseModel) Features() []string {
	return m.features
}

// FeatureImportance returns the importance ranking captured by the last Fit,
// sorted descending.
func (m *BaseModel) FeatureImportance() []Importance {
	return m.importance
}

// setFitted transitions the model to the trained state, replacing any prior
// feature set and importance ranking.
func (m *BaseModel) setFitted(features []string, importance []Importance) {
	m.fitted = true
	m.features = features
	m.importance = importance
}

// sortImportance orders scores descending, breaking ties by feature name.
func sortImportance(importance []Importance) []Importance {
	sort.SliceStable(importance, func(i, j int) bool {
		if importance[i].Score != importance[j].Score {
			return importance[i].Score > importance[j].Score
		}
		return importance[i].Feature < importance[j].Feature
	})
	return importance
}

// checkFit validates a training set.
func checkFit(x *dataset.Table, y []float64) ([]string, error) {
	if x.NumRows() != len(y) {
		return nil, errors.NotValidf("feature rows %d != target rows %d", x.NumRows(), len(y))
	}
	features := x.NumericNames()
	if len(features) == 0 {
		return nil, errors.NotValidf("training set without numeric features")
	}
	if len(features) != x.NumCols() {
		return nil, errors.NotValidf("training set with non-numeric columns")
	}
	for _, value := range y {
		if math.IsNaN(value) {
			return nil, errors.NotValidf("missing value in target")
		}
	}
	return features, nil
}

// Evaluate computes the metric set of a trained regressor against held-out
// data.
func Evaluate(r Regressor, x *dataset.Table, y []float64) (Score, error) {
	predictions, err := r.Predict(x)
	if err != nil {
		return Score{}, errors.Trace(err)
	}
	if len(predictions) != len(y) {
		return Score{}, errors.NotValidf("%d predictions for %d targets", len(predictions), len(y))
	}
	var squares, absolutes, signed float64
	for i := range y {
		diff := y[i] - predictions[i]
		squares += diff * diff
		absolutes += math.Abs(diff)
		signed += diff
	}
	n := float64(len(y))
	return Score{
		RMSE:      math.Sqrt(squares / n),
		MAE:       absolutes / n,
		R2:        stat.RSquaredFrom(predictions, y, nil),
		MeanError: signed / n,
	}, nil
}
