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

package config

import (
	"github.com/BurntSushi/toml"
	"github.com/juju/errors"

	"github.com/riskbench-io/riskbench/feature"
)

// Config is the configuration for the analysis pipeline.
type Config struct {
	Data    DataConfig    `toml:"data"`
	Model   ModelConfig   `toml:"model"`
	Segment SegmentConfig `toml:"segment"`
	Report  ReportConfig  `toml:"report"`
}

func (config *Config) LoadDefaultIfNil() *Config {
	if config == nil {
		return &Config{
			Data:    *(*DataConfig)(nil).LoadDefaultIfNil(),
			Model:   *(*ModelConfig)(nil).LoadDefaultIfNil(),
			Segment: *(*SegmentConfig)(nil).LoadDefaultIfNil(),
			Report:  *(*ReportConfig)(nil).LoadDefaultIfNil(),
		}
	}
	return config
}

// DataConfig locates the input table and controls the train/test split.
type DataConfig struct {
	Path      string  `toml:"path"`
	Target    string  `toml:"target"`
	TestRatio float64 `toml:"test_ratio"`
	Seed      int64   `toml:"seed"`
	// ImputeStrategy fills missing feature values before modeling.
	ImputeStrategy string `toml:"impute_strategy"`
	// ExcludeColumns are never used as features. Empty uses the built-in
	// identifier and date columns.
	ExcludeColumns []string `toml:"exclude_columns"`
}

func (c *DataConfig) LoadDefaultIfNil() *DataConfig {
	if c == nil {
		return &DataConfig{
			Target:         "TotalClaims",
			TestRatio:      0.2,
			Seed:           42,
			ImputeStrategy: "median",
		}
	}
	return c
}

// ModelConfig holds hyper-parameters shared by the compared models.
type ModelConfig struct {
	NumTrees     int     `toml:"num_trees"`
	MaxDepth     int     `toml:"max_depth"`
	LearningRate float64 `toml:"learning_rate"`
	RandomState  int64   `toml:"random_state"`
	TopFeatures  int     `toml:"top_features"`
	Jobs         int     `toml:"jobs"`
}

func (c *ModelConfig) LoadDefaultIfNil() *ModelConfig {
	if c == nil {
		return &ModelConfig{
			NumTrees:     100,
			MaxDepth:     6,
			LearningRate: 0.1,
			RandomState:  42,
			TopFeatures:  10,
			Jobs:         1,
		}
	}
	return c
}

// SegmentConfig controls the per-postal-code model bank.
type SegmentConfig struct {
	MinRows int `toml:"min_rows"`
	Jobs    int `toml:"jobs"`
}

func (c *SegmentConfig) LoadDefaultIfNil() *SegmentConfig {
	if c == nil {
		return &SegmentConfig{
			MinRows: 10,
			Jobs:    1,
		}
	}
	return c
}

// ReportConfig controls report and figure output.
type ReportConfig struct {
	OutputDir string `toml:"output_dir"`
}

func (c *ReportConfig) LoadDefaultIfNil() *ReportConfig {
	if c == nil {
		return &ReportConfig{
			OutputDir: "output",
		}
	}
	return c
}

// Validate rejects configurations the pipeline cannot run with.
func (config *Config) Validate() error {
	if config.Data.Path == "" {
		return errors.NotValidf("empty data path")
	}
	if config.Data.TestRatio <= 0 || config.Data.TestRatio >= 1 {
		return errors.NotValidf("test ratio %f", config.Data.TestRatio)
	}
	if _, err := feature.ParseStrategy(config.Data.ImputeStrategy); err != nil {
		return errors.Trace(err)
	}
	return nil
}

// LoadConfig loads the configuration from a TOML file. Absent sections fall
// back to defaults.
func LoadConfig(path string) (*Config, error) {
	config := (*Config)(nil).LoadDefaultIfNil()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, errors.Trace(err)
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return config, nil
}
