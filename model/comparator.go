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
	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/riskbench-io/riskbench/base/log"
	"github.com/riskbench-io/riskbench/dataset"
)

// Result is one row of the model comparison table.
type Result struct {
	Model string
	Score
}

// Comparator trains and evaluates a registry of named models against
// identical data.
type Comparator struct {
	names  []string
	models map[string]Regressor
	scores map[string]Score
}

// NewComparator creates an empty comparator.
func NewComparator() *Comparator {
	return &Comparator{
		models: make(map[string]Regressor),
		scores: make(map[string]Score),
	}
}

// Add registers a model under its name. Re-adding a name replaces the model.
func (c *Comparator) Add(r Regressor) {
	if _, exist := c.models[r.Name()]; !exist {
		c.names = append(c.names, r.Name())
	}
	c.models[r.Name()] = r
}

// Models returns the registered model names in registration order.
func (c *Comparator) Models() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// TrainAll trains every registered model against the identical training
// data.
func (c *Comparator) TrainAll(x *dataset.Table, y []float64) error {
	for _, name := range c.names {
		log.Logger().Info("train model", zap.String("model", name),
			zap.Int("rows", x.NumRows()), zap.Int("features", x.NumCols()))
		if err := c.models[name].Fit(x, y); err != nil {
			return errors.Annotatef(err, "train %s", name)
		}
	}
	return nil
}

// EvaluateAll evaluates every registered model against identical held-out
// data, returns one result per model and remembers each model's latest
// score.
func (c *Comparator) EvaluateAll(x *dataset.Table, y []float64) ([]Result, error) {
	results := make([]Result, 0, len(c.names))
	for _, name := range c.names {
		score, err := Evaluate(c.models[name], x, y)
		if err != nil {
			return nil, errors.Annotatef(err, "evaluate %s", name)
		}
		log.Logger().Info("evaluate model", append([]zap.Field{zap.String("model", name)}, score.ZapFields()...)...)
		c.scores[name] = score
		results = append(results, Result{Model: name, Score: score})
	}
	return results, nil
}

// Scores returns the latest evaluation score per model name.
func (c *Comparator) Scores() map[string]Score {
	scores := make(map[string]Score, len(c.scores))
	for name, score := range c.scores {
		scores[name] = score
	}
	return scores
}

// FeatureImportance returns the top-N most important features per model.
// Models without a computed importance are omitted.
func (c *Comparator) FeatureImportance(topN int) map[string][]Importance {
	importances := make(map[string][]Importance)
	for _, name := range c.names {
		importance := c.models[name].FeatureImportance()
		if importance == nil {
			continue
		}
		if len(importance) > topN {
			importance = importance[:topN]
		}
		importances[name] = importance
	}
	return importances
}
