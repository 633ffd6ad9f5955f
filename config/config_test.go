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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[data]
path = "claims.csv"
test_ratio = 0.3
impute_strategy = "mean"
exclude_columns = ["PolicyID", "Province"]

[model]
num_trees = 50
`)
	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "claims.csv", conf.Data.Path)
	assert.Equal(t, 0.3, conf.Data.TestRatio)
	assert.Equal(t, "mean", conf.Data.ImputeStrategy)
	assert.Equal(t, []string{"PolicyID", "Province"}, conf.Data.ExcludeColumns)
	assert.Equal(t, 50, conf.Model.NumTrees)
	// absent keys keep their defaults
	assert.Equal(t, "TotalClaims", conf.Data.Target)
	assert.Equal(t, 10, conf.Segment.MinRows)
	assert.Equal(t, "output", conf.Report.OutputDir)
}

func TestLoadConfigInvalid(t *testing.T) {
	// missing data path
	_, err := LoadConfig(writeConfig(t, "[data]\n"))
	assert.Error(t, err)
	// test ratio out of range
	_, err = LoadConfig(writeConfig(t, "[data]\npath = \"claims.csv\"\ntest_ratio = 1.5\n"))
	assert.Error(t, err)
	// unknown imputation strategy
	_, err = LoadConfig(writeConfig(t, "[data]\npath = \"claims.csv\"\nimpute_strategy = \"bogus\"\n"))
	assert.Error(t, err)
}

func TestLoadDefaultIfNil(t *testing.T) {
	conf := (*Config)(nil).LoadDefaultIfNil()
	assert.Equal(t, 0.2, conf.Data.TestRatio)
	assert.Equal(t, "median", conf.Data.ImputeStrategy)
	assert.Equal(t, int64(42), conf.Data.Seed)
	assert.Equal(t, 100, conf.Model.NumTrees)
	assert.Equal(t, 10, conf.Segment.MinRows)
}
