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
	"sort"

	"github.com/gorse-io/gorse-split/base"
	"github.com/samber/lo"
)

// StratifiedSplit splits rows into two halves keeping class proportions. The test half gets ceil(testSize * n)
// rows. Per-class test counts are floor(count * nTest / n), and the remaining slots go to the classes with the
// largest remainders. Ties, the order of rows within each class and the order of both halves are decided by a
// generator seeded with seed.
func StratifiedSplit(labels []int, rows []int, testSize float64, seed int64) (valid, test []int) {
	n := len(rows)
	if n == 0 {
		return []int{}, []int{}
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	nTest = max(0, min(n, nTest))
	rng := base.NewRandomGenerator(seed)

	// group rows by class
	byClass := lo.GroupBy(rows, func(i int) int {
		return labels[i]
	})
	classes := lo.Keys(byClass)
	sort.Ints(classes)

	// allocate test rows
	allocation := make(map[int]int, len(classes))
	remainders := make(map[int][]int)
	allocated := 0
	for _, class := range classes {
		count := len(byClass[class])
		allocation[class] = count * nTest / n
		allocated += allocation[class]
		if r := count * nTest % n; r > 0 {
			remainders[r] = append(remainders[r], class)
		}
	}
	keys := lo.Keys(remainders)
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	for _, r := range keys {
		if allocated >= nTest {
			break
		}
		for _, class := range rng.Choose(remainders[r], nTest-allocated) {
			allocation[class]++
			allocated++
		}
	}

	// split each class
	valid = make([]int, 0, n-nTest)
	test = make([]int, 0, nTest)
	for _, class := range classes {
		classRows := append([]int(nil), byClass[class]...)
		rng.ShuffleInts(classRows)
		test = append(test, classRows[:allocation[class]]...)
		valid = append(valid, classRows[allocation[class]:]...)
	}
	rng.ShuffleInts(test)
	rng.ShuffleInts(valid)
	return valid, test
}
