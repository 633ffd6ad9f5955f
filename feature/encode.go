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
	"sort"

	"github.com/juju/errors"

	"github.com/riskbench-io/riskbench/dataset"
)

// OneHot expands each categorical column into one indicator column per
// observed category, named {column}_{category}, and removes the original.
// cols defaults to all categorical columns. Missing values produce all-zero
// indicators.
func OneHot(t *dataset.Table, cols []string) (*dataset.Table, error) {
	if cols == nil {
		cols = t.CategoricalNames()
	}
	out := t.Clone()
	for _, name := range cols {
		column := out.Column(name)
		if column == nil {
			return nil, errors.NotFoundf("column %s", name)
		}
		if column.Kind != dataset.String {
			return nil, errors.NotValidf("one-hot encoding on numeric column %s", name)
		}
		categories := out.Distinct(name)
		sort.Strings(categories)
		for _, category := range categories {
			indicator := make([]float64, column.Len())
			for i := range column.Strings {
				if column.Strings[i] == category {
					indicator[i] = 1
				}
			}
			out.SetColumn(name+"_"+category, dataset.NewNumericSeries(indicator))
		}
		out.DropColumn(name)
	}
	return out, nil
}

// LabelEncoder maps categories to small integers, one mapping per column.
// The state is explicit and caller-owned: the same encoder instance yields
// stable codes across repeated invocations, and categories first seen on a
// later call extend the mapping instead of reshuffling it.
type LabelEncoder struct {
	classes map[string]map[string]int
}

// NewLabelEncoder creates an encoder with no column mappings.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{classes: make(map[string]map[string]int)}
}

// Classes returns the code mapping for a column, or nil before the column
// was ever encoded.
func (e *LabelEncoder) Classes(col string) map[string]int {
	return e.classes[col]
}

// Transform returns a copy of the table with the targeted categorical
// columns replaced by their integer codes. cols defaults to all categorical
// columns.
func (e *LabelEncoder) Transform(t *dataset.Table, cols []string) (*dataset.Table, error) {
	if cols == nil {
		cols = t.CategoricalNames()
	}
	out := t.Clone()
	for _, name := range cols {
		column := out.Column(name)
		if column == nil {
			return nil, errors.NotFoundf("column %s", name)
		}
		if column.Kind != dataset.String {
			return nil, errors.NotValidf("label encoding on numeric column %s", name)
		}
		mapping, exist := e.classes[name]
		if !exist {
			mapping = make(map[string]int)
			e.classes[name] = mapping
		}
		// assign codes to unseen categories in sorted order
		var unseen []string
		seen := make(map[string]struct{})
		for _, value := range column.Strings {
			if _, assigned := mapping[value]; assigned {
				continue
			}
			if _, dup := seen[value]; !dup {
				seen[value] = struct{}{}
				unseen = append(unseen, value)
			}
		}
		sort.Strings(unseen)
		for _, value := range unseen {
			mapping[value] = len(mapping)
		}
		codes := make([]float64, len(column.Strings))
		for i, value := range column.Strings {
			codes[i] = float64(mapping[value])
		}
		out.SetColumn(name, dataset.NewNumericSeries(codes))
	}
	return out, nil
}
