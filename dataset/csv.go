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
	"encoding/csv"
	"math"
	"os"
	"strings"

	"github.com/juju/errors"

	"github.com/riskbench-io/riskbench/common/util"
)

// missingToken reports whether a raw CSV cell denotes a missing value.
func missingToken(cell string) bool {
	switch strings.TrimSpace(cell) {
	case "", "NA", "NaN", "nan", "null":
		return true
	}
	return false
}

// LoadCSV reads a delimited file with a header row into a Table. A column is
// numeric when every non-missing cell parses as a float, otherwise it is
// categorical.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(records) < 1 {
		return nil, errors.NotValidf("file %s without header", path)
	}
	header := records[0]
	rows := records[1:]
	table := NewTable()
	for j, name := range header {
		numeric := true
		for _, row := range rows {
			if missingToken(row[j]) {
				continue
			}
			if _, err := util.ParseFloat[float64](strings.TrimSpace(row[j])); err != nil {
				numeric = false
				break
			}
		}
		if numeric {
			values := make([]float64, len(rows))
			for i, row := range rows {
				if missingToken(row[j]) {
					values[i] = math.NaN()
				} else {
					values[i], _ = util.ParseFloat[float64](strings.TrimSpace(row[j]))
				}
			}
			table.SetColumn(name, NewNumericSeries(values))
		} else {
			values := make([]string, len(rows))
			for i, row := range rows {
				if missingToken(row[j]) {
					values[i] = ""
				} else {
					values[i] = strings.TrimSpace(row[j])
				}
			}
			table.SetColumn(name, NewStringSeries(values))
		}
	}
	return table, nil
}
