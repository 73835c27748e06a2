// Copyright 2026 gorse Project Authors
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

package splitter

import (
	"math"

	"github.com/gorse-io/gorse-split/base"
	"github.com/samber/lo"
)

// Shuffle returns a permutation of [0, n) determined by seed.
func Shuffle(n int, seed int64) []int {
	rng := base.NewRandomGenerator(seed)
	return rng.Permutation(n)
}

// Quota returns the number of rows sampled per class: ceil(fracVal * n / numClasses).
func Quota(fracVal float64, n, numClasses int) int {
	if numClasses <= 0 || n <= 0 {
		return 0
	}
	return int(math.Ceil(fracVal * float64(n) / float64(numClasses)))
}

// SampleQuota takes the first sfact rows of each class in the order of perm. Classes are visited in the given
// order and the sampled rows are concatenated. A class with fewer rows contributes all of its rows.
func SampleQuota(labels []int, perm []int, classes []int, sfact int) []int {
	byClass := lo.GroupBy(perm, func(i int) int {
		return labels[i]
	})
	sampled := make([]int, 0, sfact*len(classes))
	for _, class := range classes {
		rows := byClass[class]
		sampled = append(sampled, rows[:min(sfact, len(rows))]...)
	}
	return sampled
}
