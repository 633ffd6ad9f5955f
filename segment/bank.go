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

// Package segment partitions records by postal code and fits an independent
// linear model per segment.
package segment

import (
	"context"
	"sync"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/riskbench-io/riskbench/base/log"
	"github.com/riskbench-io/riskbench/common/parallel"
	"github.com/riskbench-io/riskbench/dataset"
	"github.com/riskbench-io/riskbench/feature"
	"github.com/riskbench-io/riskbench/model"
)

// Options controls how the per-segment model bank is built.
type Options struct {
	// Target is the predicted column. Default TotalClaims.
	Target string
	// FeatureCols overrides the shared feature set. When empty, the set is
	// computed once from the full table (numeric columns minus target,
	// segment key and identifiers) and reused for every segment.
	FeatureCols []string
	// MinRows is the minimum segment size. Default 10.
	MinRows int
	// Jobs is the number of parallel segment fits. Default 1. Segment fits
	// never share state, so only the bank insertion is serialized.
	Jobs int
}

func (opts Options) withDefaults() Options {
	if opts.Target == "" {
		opts.Target = feature.ColTotalClaims
	}
	if opts.MinRows <= 0 {
		opts.MinRows = 10
	}
	if opts.Jobs <= 0 {
		opts.Jobs = 1
	}
	return opts
}

// identifierColumns are never used as segment features.
var identifierColumns = []string{"PolicyID", "UnderwrittenCoverID"}

// Build fits one linear model per distinct postal code. Segments with fewer
// than MinRows rows, without usable feature columns, or whose fit fails are
// skipped and absent from the returned bank. A missing PostalCode column is
// a fatal error raised before any segment processing.
func Build(ctx context.Context, t *dataset.Table, opts Options) (map[string]*model.LinearRegression, error) {
	opts = opts.withDefaults()
	postal := t.Column(feature.ColPostalCode)
	if postal == nil {
		return nil, errors.NotFoundf("column %s", feature.ColPostalCode)
	}
	if target := t.Column(opts.Target); target == nil {
		return nil, errors.NotFoundf("target column %s", opts.Target)
	}

	// group row indices by postal code
	var codes []string
	groups := make(map[string][]int)
	for i := 0; i < postal.Len(); i++ {
		if postal.Missing(i) {
			continue
		}
		code := postal.Value(i)
		if _, exist := groups[code]; !exist {
			codes = append(codes, code)
		}
		groups[code] = append(groups[code], i)
	}

	// the shared feature set is computed once and reused for all segments
	featureCols := opts.FeatureCols
	if len(featureCols) == 0 {
		featureCols = lo.Filter(t.NumericNames(), func(name string, _ int) bool {
			return name != opts.Target && name != feature.ColPostalCode && !lo.Contains(identifierColumns, name)
		})
	}

	var mu sync.Mutex
	bank := make(map[string]*model.LinearRegression)
	err := parallel.Parallel(ctx, len(codes), opts.Jobs, func(_, jobId int) error {
		code := codes[jobId]
		indices := groups[code]
		if len(indices) < opts.MinRows {
			log.Logger().Debug("skip segment with too few rows",
				zap.String("postal_code", code), zap.Int("rows", len(indices)))
			return nil
		}
		sub := t.SubSet(indices)
		// drop feature columns that are entirely missing in this segment
		kept := lo.Filter(featureCols, func(name string, _ int) bool {
			column := sub.Column(name)
			for i := 0; i < column.Len(); i++ {
				if !column.Missing(i) {
					return true
				}
			}
			return false
		})
		if len(kept) == 0 {
			log.Logger().Debug("skip segment without usable features",
				zap.String("postal_code", code))
			return nil
		}
		x, err := sub.Select(kept)
		if err != nil {
			return errors.Trace(err)
		}
		x, err = feature.Impute(x, feature.StrategyMedian, nil)
		if err != nil {
			return errors.Trace(err)
		}
		y := sub.Column(opts.Target).Floats
		lr := model.NewLinearRegression()
		if err := lr.Fit(x, y); err != nil {
			// fit failures are segment-local; keep building the bank
			log.Logger().Warn("skip segment with failed fit",
				zap.String("postal_code", code), zap.Error(err))
			return nil
		}
		mu.Lock()
		bank[code] = lr
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("built segment model bank",
		zap.Int("segments", len(codes)), zap.Int("models", len(bank)))
	return bank, nil
}
