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

// Package metrics provides pure functions over numeric series: underwriting
// ratios, claim statistics and outlier detection. Missing values are NaN and
// propagate through row-wise results; aggregates skip them.
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// LossRatio returns claims divided by premiums element-wise. A zero premium
// yields NaN instead of an infinite ratio.
func LossRatio(claims, premiums []float64) []float64 {
	ratios := make([]float64, len(claims))
	for i := range claims {
		if premiums[i] == 0 {
			ratios[i] = math.NaN()
		} else {
			ratios[i] = claims[i] / premiums[i]
		}
	}
	return ratios
}

// Margin returns premiums minus claims element-wise.
func Margin(premiums, claims []float64) []float64 {
	margins := make([]float64, len(premiums))
	for i := range premiums {
		margins[i] = premiums[i] - claims[i]
	}
	return margins
}

// ClaimFrequency returns the fraction of policies with at least one nonzero
// claim.
func ClaimFrequency(claims []float64) float64 {
	if len(claims) == 0 {
		return 0
	}
	count := 0
	for _, claim := range claims {
		if claim > 0 {
			count++
		}
	}
	return float64(count) / float64(len(claims))
}

// ClaimSeverity returns the average claim amount among policies that had a
// claim, or 0 when no policy did.
func ClaimSeverity(claims []float64) float64 {
	sum, count := 0.0, 0
	for _, claim := range claims {
		if claim > 0 {
			sum += claim
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// dropNaN returns the non-missing values of a series.
func dropNaN(values []float64) []float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

// Mean returns the mean of non-missing values, or NaN when all are missing.
func Mean(values []float64) float64 {
	kept := dropNaN(values)
	if len(kept) == 0 {
		return math.NaN()
	}
	return stat.Mean(kept, nil)
}

// Quantile returns the p-quantile of non-missing values, or NaN when all are
// missing.
func Quantile(values []float64, p float64) float64 {
	kept := dropNaN(values)
	if len(kept) == 0 {
		return math.NaN()
	}
	sort.Float64s(kept)
	return stat.Quantile(p, stat.Empirical, kept, nil)
}

// Median returns the median of non-missing values, interpolating between
// the two middle values for even counts, or NaN when all are missing.
func Median(values []float64) float64 {
	kept := dropNaN(values)
	if len(kept) == 0 {
		return math.NaN()
	}
	sort.Float64s(kept)
	mid := len(kept) / 2
	if len(kept)%2 == 1 {
		return kept[mid]
	}
	return (kept[mid-1] + kept[mid]) / 2
}

// Mode returns the most frequent non-missing value, or NaN when all are
// missing. Ties break toward the smaller value.
func Mode(values []float64) float64 {
	kept := dropNaN(values)
	if len(kept) == 0 {
		return math.NaN()
	}
	sort.Float64s(kept)
	mode, best := kept[0], 0
	for i := 0; i < len(kept); {
		j := i
		for j < len(kept) && kept[j] == kept[i] {
			j++
		}
		if j-i > best {
			best = j - i
			mode = kept[i]
		}
		i = j
	}
	return mode
}

// GroupMeans returns, per distinct key in first appearance order, the mean
// of the non-missing values sharing that key. Rows with a missing key or a
// missing value are skipped.
func GroupMeans(keys []string, values []float64) ([]string, []float64) {
	var names []string
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, key := range keys {
		if key == "" || math.IsNaN(values[i]) {
			continue
		}
		if _, exist := counts[key]; !exist {
			names = append(names, key)
		}
		sums[key] += values[i]
		counts[key]++
	}
	means := make([]float64, len(names))
	for i, name := range names {
		means[i] = sums[name] / float64(counts[name])
	}
	return names, means
}

// OutliersIQR flags values outside [Q1 - factor*IQR, Q3 + factor*IQR].
// Missing values are never flagged.
func OutliersIQR(values []float64, factor float64) []bool {
	q1 := Quantile(values, 0.25)
	q3 := Quantile(values, 0.75)
	iqr := q3 - q1
	lower := q1 - factor*iqr
	upper := q3 + factor*iqr
	flags := make([]bool, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		flags[i] = v < lower || v > upper
	}
	return flags
}
