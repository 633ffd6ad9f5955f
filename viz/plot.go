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

// Package viz renders presentation figures. It carries no modeling logic.
package viz

import (
	"math"

	"github.com/juju/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Histogram saves a histogram of the non-missing values to a PNG file.
func Histogram(values []float64, title, path string) error {
	kept := make(plotter.Values, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return errors.NotValidf("histogram of all-missing values")
	}
	p := plot.New()
	p.Title.Text = title
	h, err := plotter.NewHist(kept, 30)
	if err != nil {
		return errors.Trace(err)
	}
	p.Add(h)
	return errors.Trace(p.Save(6*vg.Inch, 4*vg.Inch, path))
}

// Bars saves a bar chart with one bar per name to a PNG file.
func Bars(names []string, values []float64, title, path string) error {
	if len(names) != len(values) {
		return errors.NotValidf("%d names for %d values", len(names), len(values))
	}
	p := plot.New()
	p.Title.Text = title
	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(24))
	if err != nil {
		return errors.Trace(err)
	}
	p.Add(bars)
	p.NominalX(names...)
	return errors.Trace(p.Save(6*vg.Inch, 4*vg.Inch, path))
}
