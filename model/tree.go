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

package model

import (
	"math"
	"math/rand"
	"sort"
)

// treeNode is one node of a regression tree. Leaves have feature == -1.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
}

// treeConfig controls regression tree growth.
type treeConfig struct {
	maxDepth        int
	minSamplesSplit int
	// maxFeatures is the number of candidate features per split;
	// 0 means all.
	maxFeatures int
	rng         *rand.Rand
	// gains accumulates impurity reduction per feature across splits.
	gains []float64
}

func treeMean(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range y {
		sum += v
	}
	return sum / float64(len(y))
}

func treeVariance(y []float64) float64 {
	if len(y) <= 1 {
		return 0
	}
	mean := treeMean(y)
	sum := 0.0
	for _, v := range y {
		diff := v - mean
		sum += diff * diff
	}
	return sum / float64(len(y))
}

// splitCandidates returns the feature indices considered at a split.
func splitCandidates(nFeatures int, cfg *treeConfig) []int {
	if cfg.maxFeatures <= 0 || cfg.maxFeatures >= nFeatures {
		candidates := make([]int, nFeatures)
		for i := range candidates {
			candidates[i] = i
		}
		return candidates
	}
	return cfg.rng.Perm(nFeatures)[:cfg.maxFeatures]
}

// buildTree grows a regression tree by greedy variance reduction.
func buildTree(x [][]float64, y []float64, depth int, cfg *treeConfig) *treeNode {
	if len(y) < cfg.minSamplesSplit || depth >= cfg.maxDepth {
		return &treeNode{feature: -1, value: treeMean(y)}
	}
	nSamples := len(y)
	nFeatures := len(x[0])
	parentScore := float64(nSamples) * treeVariance(y)

	bestFeature := -1
	bestThreshold := 0.0
	bestScore := math.Inf(1)
	var bestLeft, bestRight []int

	for _, f := range splitCandidates(nFeatures, cfg) {
		values := make([]float64, 0, nSamples)
		for i := 0; i < nSamples; i++ {
			values = append(values, x[i][f])
		}
		sort.Float64s(values)
		for i := 0; i < nSamples-1; i++ {
			if values[i] == values[i+1] {
				continue
			}
			threshold := (values[i] + values[i+1]) / 2
			var leftIndex, rightIndex []int
			for j := 0; j < nSamples; j++ {
				if x[j][f] <= threshold {
					leftIndex = append(leftIndex, j)
				} else {
					rightIndex = append(rightIndex, j)
				}
			}
			if len(leftIndex) == 0 || len(rightIndex) == 0 {
				continue
			}
			leftY := gatherFloats(y, leftIndex)
			rightY := gatherFloats(y, rightIndex)
			score := float64(len(leftY))*treeVariance(leftY) + float64(len(rightY))*treeVariance(rightY)
			if score < bestScore {
				bestScore = score
				bestFeature = f
				bestThreshold = threshold
				bestLeft = leftIndex
				bestRight = rightIndex
			}
		}
	}

	if bestFeature == -1 || parentScore-bestScore <= 0 {
		return &treeNode{feature: -1, value: treeMean(y)}
	}
	cfg.gains[bestFeature] += parentScore - bestScore
	leftX, leftY := gatherRows(x, y, bestLeft)
	rightX, rightY := gatherRows(x, y, bestRight)
	return &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      buildTree(leftX, leftY, depth+1, cfg),
		right:     buildTree(rightX, rightY, depth+1, cfg),
		value:     treeMean(y),
	}
}

func predictTree(node *treeNode, row []float64) float64 {
	for node.feature != -1 {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

func gatherFloats(values []float64, indices []int) []float64 {
	out := make([]float64, len(indices))
	for i, index := range indices {
		out[i] = values[index]
	}
	return out
}

func gatherRows(x [][]float64, y []float64, indices []int) ([][]float64, []float64) {
	outX := make([][]float64, len(indices))
	outY := make([]float64, len(indices))
	for i, index := range indices {
		outX[i] = x[index]
		outY[i] = y[index]
	}
	return outX, outY
}

// importanceFromGains normalizes accumulated gains into a descending
// importance ranking. All-zero gains yield zero scores.
func importanceFromGains(features []string, gains []float64) []Importance {
	total := 0.0
	for _, gain := range gains {
		total += gain
	}
	importance := make([]Importance, len(features))
	for i, feature := range features {
		score := 0.0
		if total > 0 {
			score = gains[i] / total
		}
		importance[i] = Importance{Feature: feature, Score: score}
	}
	return sortImportance(importance)
}
