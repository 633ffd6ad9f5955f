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

	"github.com/juju/errors"

	"github.com/riskbench-io/riskbench/dataset"
	"github.com/riskbench-io/riskbench/metrics"
)

// Strategy selects how missing numeric values are handled. It is a closed
// enumeration: values outside the declared constants are rejected at call
// time instead of silently falling back.
type Strategy int

const (
	StrategyMean Strategy = iota
	StrategyMedian
	StrategyMode
	StrategyDrop
)

var strategyNames = map[Strategy]string{
	StrategyMean:   "mean",
	StrategyMedian: "median",
	StrategyMode:   "mode",
	StrategyDrop:   "drop",
}

func (s Strategy) String() string {
	if name, exist := strategyNames[s]; exist {
		return name
	}
	return "unknown"
}

// ParseStrategy converts a strategy tag from configuration into a Strategy.
func ParseStrategy(tag string) (Strategy, error) {
	for strategy, name := range strategyNames {
		if name == tag {
			return strategy, nil
		}
	}
	return 0, errors.NotValidf("imputation strategy %q", tag)
}

// fillers binds each filling strategy to the statistic computed per column
// from its non-missing values.
var fillers = map[Strategy]func([]float64) float64{
	StrategyMean:   metrics.Mean,
	StrategyMedian: metrics.Median,
	StrategyMode: func(values []float64) float64 {
		mode := metrics.Mode(values)
		if math.IsNaN(mode) {
			return 0
		}
		return mode
	},
}

// Impute returns a copy of the table with missing values handled in the
// targeted columns. cols defaults to all numeric columns. Each column is
// filled independently of the others.
func Impute(t *dataset.Table, strategy Strategy, cols []string) (*dataset.Table, error) {
	if cols == nil {
		cols = t.NumericNames()
	}
	for _, name := range cols {
		column := t.Column(name)
		if column == nil {
			return nil, errors.NotFoundf("column %s", name)
		}
		if column.Kind != dataset.Numeric {
			return nil, errors.NotValidf("imputation on non-numeric column %s", name)
		}
	}
	if strategy == StrategyDrop {
		return t.FilterRows(func(i int) bool {
			for _, name := range cols {
				if t.Column(name).Missing(i) {
					return false
				}
			}
			return true
		}), nil
	}
	filler, exist := fillers[strategy]
	if !exist {
		return nil, errors.NotValidf("imputation strategy %d", strategy)
	}
	out := t.Clone()
	for _, name := range cols {
		column := out.Column(name)
		fill := filler(column.Floats)
		for i, value := range column.Floats {
			if math.IsNaN(value) {
				column.Floats[i] = fill
			}
		}
	}
	return out, nil
}
