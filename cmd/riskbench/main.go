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

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/riskbench-io/riskbench/base/log"
	"github.com/riskbench-io/riskbench/config"
	"github.com/riskbench-io/riskbench/dataset"
	"github.com/riskbench-io/riskbench/feature"
	"github.com/riskbench-io/riskbench/metrics"
	"github.com/riskbench-io/riskbench/model"
	"github.com/riskbench-io/riskbench/report"
	"github.com/riskbench-io/riskbench/segment"
	"github.com/riskbench-io/riskbench/viz"
)

var riskbenchCommand = &cobra.Command{
	Use:   "riskbench",
	Short: "Exploratory risk analytics over insurance claims and premium records.",
	Run: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debug)
		configPath, _ := cmd.PersistentFlags().GetString("config")
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.String("path", configPath), zap.Error(err))
		}
		if err := runPipeline(cmd.Context(), conf); err != nil {
			log.Logger().Fatal("pipeline failed", zap.Error(err))
		}
	},
}

func init() {
	riskbenchCommand.PersistentFlags().String("config", "config.toml", "configuration file path")
	riskbenchCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	log.AddFlags(riskbenchCommand.PersistentFlags())
}

func runPipeline(ctx context.Context, conf *config.Config) error {
	bar := progressbar.Default(6, "analyzing")

	// load
	table, err := dataset.LoadCSV(conf.Data.Path)
	if err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("loaded records",
		zap.String("path", conf.Data.Path),
		zap.Int("rows", table.NumRows()), zap.Int("columns", table.NumCols()))
	_ = bar.Add(1)

	// feature engineering
	engineered := feature.Engineer(table)
	_ = bar.Add(1)

	// portfolio metrics
	data := &report.Data{
		Rows:    engineered.NumRows(),
		Summary: engineered.Summarize(),
	}
	if claims := engineered.Column(feature.ColTotalClaims); claims != nil && claims.Kind == dataset.Numeric {
		data.ClaimFrequency = metrics.ClaimFrequency(claims.Floats)
		data.ClaimSeverity = metrics.ClaimSeverity(claims.Floats)
	}
	if ratio := engineered.Column("LossRatio"); ratio != nil {
		data.AvgLossRatio = metrics.Mean(ratio.Floats)
	}
	if margin := engineered.Column("Margin"); margin != nil {
		data.TotalMargin = metrics.Mean(margin.Floats) * float64(engineered.NumRows())
	}
	_ = bar.Add(1)

	// model comparison on a single train/test split
	strategy, err := feature.ParseStrategy(conf.Data.ImputeStrategy)
	if err != nil {
		return errors.Trace(err)
	}
	x, y, err := feature.PrepareForModeling(engineered, conf.Data.Target, conf.Data.ExcludeColumns, strategy)
	if err != nil {
		return errors.Trace(err)
	}
	trainX, testX, trainY, testY, err := dataset.Split(x, y, conf.Data.TestRatio, conf.Data.Seed)
	if err != nil {
		return errors.Trace(err)
	}
	comparator := model.NewComparator()
	comparator.Add(model.NewLinearRegression())
	forest := model.NewRandomForest()
	forest.NumTrees = conf.Model.NumTrees
	forest.MaxDepth = conf.Model.MaxDepth
	forest.RandomState = conf.Model.RandomState
	forest.Jobs = conf.Model.Jobs
	comparator.Add(forest)
	boosting := model.NewGradientBoosting()
	boosting.NumTrees = conf.Model.NumTrees
	boosting.MaxDepth = conf.Model.MaxDepth
	boosting.LearningRate = conf.Model.LearningRate
	comparator.Add(boosting)
	if err := comparator.TrainAll(trainX, trainY); err != nil {
		return errors.Trace(err)
	}
	data.Results, err = comparator.EvaluateAll(testX, testY)
	if err != nil {
		return errors.Trace(err)
	}
	data.Importances = comparator.FeatureImportance(conf.Model.TopFeatures)
	_ = bar.Add(1)

	// per-postal-code model bank
	bank, err := segment.Build(ctx, engineered, segment.Options{
		Target:  conf.Data.Target,
		MinRows: conf.Segment.MinRows,
		Jobs:    conf.Segment.Jobs,
	})
	if err != nil {
		return errors.Trace(err)
	}
	data.SegmentTotal = len(engineered.Distinct(feature.ColPostalCode))
	data.SegmentModeled = len(bank)
	_ = bar.Add(1)

	// report and figures
	if err := os.MkdirAll(conf.Report.OutputDir, 0755); err != nil {
		return errors.Trace(err)
	}
	markdown := report.Build(data)
	if err := os.WriteFile(filepath.Join(conf.Report.OutputDir, "report.md"), []byte(markdown), 0644); err != nil {
		return errors.Trace(err)
	}
	html, err := os.Create(filepath.Join(conf.Report.OutputDir, "report.html"))
	if err != nil {
		return errors.Trace(err)
	}
	defer html.Close()
	if err := report.RenderHTML([]byte(markdown), html); err != nil {
		return errors.Trace(err)
	}
	if ratio := engineered.Column("LossRatio"); ratio != nil {
		if err := viz.Histogram(ratio.Floats, "Loss Ratio",
			filepath.Join(conf.Report.OutputDir, "loss_ratio.png")); err != nil {
			log.Logger().Warn("failed to render loss ratio histogram", zap.Error(err))
		}
		if province := engineered.Column(feature.ColProvince); province != nil && province.Kind == dataset.String {
			names, means := metrics.GroupMeans(province.Strings, ratio.Floats)
			if len(names) > 0 {
				if err := viz.Bars(names, means, "Loss Ratio by Province",
					filepath.Join(conf.Report.OutputDir, "loss_ratio_by_province.png")); err != nil {
					log.Logger().Warn("failed to render province loss ratio chart", zap.Error(err))
				}
			}
		}
	}
	names := make([]string, 0, len(data.Results))
	rmses := make([]float64, 0, len(data.Results))
	for _, result := range data.Results {
		names = append(names, result.Model)
		rmses = append(rmses, result.RMSE)
	}
	if err := viz.Bars(names, rmses, "Test RMSE",
		filepath.Join(conf.Report.OutputDir, "rmse.png")); err != nil {
		log.Logger().Warn("failed to render RMSE chart", zap.Error(err))
	}
	_ = bar.Add(1)

	log.Logger().Info("analysis complete",
		zap.String("output", conf.Report.OutputDir),
		zap.Int("models", len(data.Results)),
		zap.Int("segment_models", len(bank)))
	return nil
}

func main() {
	if err := riskbenchCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute command", zap.Error(err))
	}
}
