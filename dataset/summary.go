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

// ColumnSummary describes one column of a table.
type ColumnSummary struct {
	Name     string
	Kind     Kind
	NonNull  int
	Null     int
	NullPct  float64
	Distinct int
}

// Summarize returns per-column statistics: null counts, null percentage and
// the number of distinct non-missing values.
func (t *Table) Summarize() []ColumnSummary {
	summaries := make([]ColumnSummary, 0, len(t.names))
	for _, name := range t.names {
		column := t.columns[name]
		summary := ColumnSummary{Name: name, Kind: column.Kind}
		for i := 0; i < column.Len(); i++ {
			if column.Missing(i) {
				summary.Null++
			} else {
				summary.NonNull++
			}
		}
		if column.Len() > 0 {
			summary.NullPct = float64(summary.Null) / float64(column.Len()) * 100
		}
		summary.Distinct = len(t.Distinct(name))
		summaries = append(summaries, summary)
	}
	return summaries
}
