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
	"math"
	"strconv"

	"github.com/juju/errors"
)

// Kind is the type of values held by a Series.
type Kind int

const (
	// Numeric series hold float64 values. Missing values are NaN.
	Numeric Kind = iota
	// String series hold categorical values. Missing values are empty strings.
	String
)

// Series is a single named column of a Table.
type Series struct {
	Kind    Kind
	Floats  []float64
	Strings []string
}

// NewNumericSeries creates a numeric series from values.
func NewNumericSeries(values []float64) *Series {
	return &Series{Kind: Numeric, Floats: values}
}

// NewStringSeries creates a categorical series from values.
func NewStringSeries(values []string) *Series {
	return &Series{Kind: String, Strings: values}
}

func (s *Series) Len() int {
	if s.Kind == Numeric {
		return len(s.Floats)
	}
	return len(s.Strings)
}

// Missing reports whether the i-th value is missing.
func (s *Series) Missing(i int) bool {
	if s.Kind == Numeric {
		return math.IsNaN(s.Floats[i])
	}
	return s.Strings[i] == ""
}

// Value returns the text representation of the i-th value. Integral floats
// render without a fraction so numeric keys round-trip as stable strings.
func (s *Series) Value(i int) string {
	if s.Kind == Numeric {
		if math.IsNaN(s.Floats[i]) {
			return ""
		}
		return strconv.FormatFloat(s.Floats[i], 'f', -1, 64)
	}
	return s.Strings[i]
}

// Clone returns a deep copy of the series.
func (s *Series) Clone() *Series {
	clone := &Series{Kind: s.Kind}
	if s.Kind == Numeric {
		clone.Floats = make([]float64, len(s.Floats))
		copy(clone.Floats, s.Floats)
	} else {
		clone.Strings = make([]string, len(s.Strings))
		copy(clone.Strings, s.Strings)
	}
	return clone
}

// SubSet returns a copy of the series restricted to the given row indices.
func (s *Series) SubSet(indices []int) *Series {
	sub := &Series{Kind: s.Kind}
	if s.Kind == Numeric {
		sub.Floats = make([]float64, len(indices))
		for i, index := range indices {
			sub.Floats[i] = s.Floats[index]
		}
	} else {
		sub.Strings = make([]string, len(indices))
		for i, index := range indices {
			sub.Strings[i] = s.Strings[index]
		}
	}
	return sub
}

// Table is an ordered collection of named columns. Row order carries no
// meaning for aggregates; all operations are column-wise or group-wise.
type Table struct {
	names   []string
	columns map[string]*Series
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{columns: make(map[string]*Series)}
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.names) == 0 {
		return 0
	}
	return t.columns[t.names[0]].Len()
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.names)
}

// Names returns column names in insertion order.
func (t *Table) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	_, exist := t.columns[name]
	return exist
}

// Column returns the named column or nil.
func (t *Table) Column(name string) *Series {
	return t.columns[name]
}

// SetColumn appends or replaces a column. The series length must equal the
// table's row count unless the table is empty.
func (t *Table) SetColumn(name string, s *Series) {
	if _, exist := t.columns[name]; !exist {
		t.names = append(t.names, name)
	}
	t.columns[name] = s
}

// DropColumn removes the named column if present.
func (t *Table) DropColumn(name string) {
	if _, exist := t.columns[name]; !exist {
		return
	}
	delete(t.columns, name)
	for i, n := range t.names {
		if n == name {
			t.names = append(t.names[:i], t.names[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	clone := NewTable()
	for _, name := range t.names {
		clone.SetColumn(name, t.columns[name].Clone())
	}
	return clone
}

// NumericNames returns the names of numeric columns in order.
func (t *Table) NumericNames() []string {
	var names []string
	for _, name := range t.names {
		if t.columns[name].Kind == Numeric {
			names = append(names, name)
		}
	}
	return names
}

// CategoricalNames returns the names of string columns in order.
func (t *Table) CategoricalNames() []string {
	var names []string
	for _, name := range t.names {
		if t.columns[name].Kind == String {
			names = append(names, name)
		}
	}
	return names
}

// Select returns a new table containing copies of the named columns.
func (t *Table) Select(names []string) (*Table, error) {
	selected := NewTable()
	for _, name := range names {
		column, exist := t.columns[name]
		if !exist {
			return nil, errors.NotFoundf("column %s", name)
		}
		selected.SetColumn(name, column.Clone())
	}
	return selected, nil
}

// SubSet returns a new table restricted to the given row indices.
func (t *Table) SubSet(indices []int) *Table {
	sub := NewTable()
	for _, name := range t.names {
		sub.SetColumn(name, t.columns[name].SubSet(indices))
	}
	return sub
}

// FilterRows returns a new table containing rows where pred is true.
func (t *Table) FilterRows(pred func(i int) bool) *Table {
	var indices []int
	for i := 0; i < t.NumRows(); i++ {
		if pred(i) {
			indices = append(indices, i)
		}
	}
	return t.SubSet(indices)
}

// Distinct returns the distinct text values of the named column in first
// appearance order. Missing values are skipped.
func (t *Table) Distinct(name string) []string {
	column := t.columns[name]
	if column == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var values []string
	for i := 0; i < column.Len(); i++ {
		if column.Missing(i) {
			continue
		}
		value := column.Value(i)
		if _, exist := seen[value]; !exist {
			seen[value] = struct{}{}
			values = append(values, value)
		}
	}
	return values
}

// Matrix extracts the named numeric columns as a row-major design matrix.
func (t *Table) Matrix(cols []string) ([][]float64, error) {
	series := make([]*Series, len(cols))
	for i, name := range cols {
		column, exist := t.columns[name]
		if !exist {
			return nil, errors.NotFoundf("column %s", name)
		}
		if column.Kind != Numeric {
			return nil, errors.NotValidf("non-numeric column %s", name)
		}
		series[i] = column
	}
	rows := make([][]float64, t.NumRows())
	for i := range rows {
		rows[i] = make([]float64, len(cols))
		for j, column := range series {
			rows[i][j] = column.Floats[i]
		}
	}
	return rows, nil
}
