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

// Package feature derives modeling features from raw claims records and
// prepares tables for training: calendar decomposition, risk ratios,
// missing-value imputation and categorical encoding.
package feature

import (
	"math"

	"github.com/araddon/dateparse"

	"github.com/riskbench-io/riskbench/dataset"
	"github.com/riskbench-io/riskbench/metrics"
)

// Column names recognized by Engineer.
const (
	ColTransactionMonth = "TransactionMonth"
	ColRegistrationYear = "RegistrationYear"
	ColTotalClaims      = "TotalClaims"
	ColTotalPremium     = "TotalPremium"
	ColPostalCode       = "PostalCode"
	ColProvince         = "Province"
)

// fallbackReferenceYear is used for vehicle age when no transaction date
// parses.
const fallbackReferenceYear = 2015

// Engineer returns a copy of the table with derived columns appended. Each
// derivation applies independently and only when its prerequisite columns
// exist; unparsable dates and zero premiums become missing values.
// Re-engineering an already engineered table yields identical values.
func Engineer(t *dataset.Table) *dataset.Table {
	out := t.Clone()
	rows := out.NumRows()

	// calendar decomposition
	referenceYear := float64(fallbackReferenceYear)
	if month := out.Column(ColTransactionMonth); month != nil {
		years := make([]float64, rows)
		months := make([]float64, rows)
		quarters := make([]float64, rows)
		maxYear := math.NaN()
		for i := 0; i < rows; i++ {
			years[i], months[i], quarters[i] = math.NaN(), math.NaN(), math.NaN()
			if month.Missing(i) {
				continue
			}
			when, err := dateparse.ParseAny(month.Value(i))
			if err != nil {
				continue
			}
			years[i] = float64(when.Year())
			months[i] = float64(when.Month())
			quarters[i] = float64((when.Month()-1)/3 + 1)
			if math.IsNaN(maxYear) || years[i] > maxYear {
				maxYear = years[i]
			}
		}
		out.SetColumn("Year", dataset.NewNumericSeries(years))
		out.SetColumn("Month", dataset.NewNumericSeries(months))
		out.SetColumn("Quarter", dataset.NewNumericSeries(quarters))
		if !math.IsNaN(maxYear) {
			referenceYear = maxYear
		}
	}

	// vehicle age, clipped at zero
	if registration := out.Column(ColRegistrationYear); registration != nil && registration.Kind == dataset.Numeric {
		ages := make([]float64, rows)
		for i := 0; i < rows; i++ {
			age := referenceYear - registration.Floats[i]
			if age < 0 {
				age = 0
			}
			ages[i] = age
		}
		out.SetColumn("VehicleAge", dataset.NewNumericSeries(ages))
	}

	claims := out.Column(ColTotalClaims)
	premiums := out.Column(ColTotalPremium)
	if claims != nil && claims.Kind == dataset.Numeric && premiums != nil && premiums.Kind == dataset.Numeric {
		out.SetColumn("LossRatio", dataset.NewNumericSeries(metrics.LossRatio(claims.Floats, premiums.Floats)))
		out.SetColumn("Margin", dataset.NewNumericSeries(metrics.Margin(premiums.Floats, claims.Floats)))
	}

	// claim indicator, never missing
	if claims != nil && claims.Kind == dataset.Numeric {
		indicator := make([]float64, rows)
		for i, claim := range claims.Floats {
			if claim > 0 {
				indicator[i] = 1
			}
		}
		out.SetColumn("HasClaim", dataset.NewNumericSeries(indicator))
	}

	return out
}
