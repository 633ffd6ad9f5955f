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

package parallel

import (
	"context"
	"sync"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallel(t *testing.T) {
	for _, nWorkers := range []int{1, 4} {
		done := make([]bool, 100)
		var mu sync.Mutex
		err := Parallel(context.Background(), len(done), nWorkers, func(workerId, jobId int) error {
			mu.Lock()
			defer mu.Unlock()
			done[jobId] = true
			return nil
		})
		require.NoError(t, err)
		for i := range done {
			assert.True(t, done[i])
		}
	}
}

func TestParallelError(t *testing.T) {
	expected := errors.New("boom")
	err := Parallel(context.Background(), 100, 4, func(workerId, jobId int) error {
		if jobId == 50 {
			return expected
		}
		return nil
	})
	assert.ErrorIs(t, err, expected)
}

func TestParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Parallel(ctx, 100, 4, func(workerId, jobId int) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFor(t *testing.T) {
	for _, nWorkers := range []int{1, 4} {
		done := make([]bool, 100)
		var mu sync.Mutex
		For(len(done), nWorkers, func(jobId int) {
			mu.Lock()
			defer mu.Unlock()
			done[jobId] = true
		})
		for i := range done {
			assert.True(t, done[i])
		}
	}
}
