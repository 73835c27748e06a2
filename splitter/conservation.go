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
	"github.com/bits-and-blooms/bitset"
	"github.com/juju/errors"
)

const ErrConservation = errors.ConstError("row conservation violated")

// CheckConservation verifies that train, valid and test cover each of total rows exactly once.
func CheckConservation(total int, train, valid, test []int) error {
	partitions := [][]int{train, valid, test}
	sum := 0
	for _, partition := range partitions {
		sum += len(partition)
	}
	if sum != total {
		return errors.Annotatef(ErrConservation, "%d rows in partitions for %d rows", sum, total)
	}
	covered := bitset.New(uint(total))
	for _, partition := range partitions {
		for _, i := range partition {
			if i < 0 || i >= total {
				return errors.Annotatef(ErrConservation, "row %d out of range [0, %d)", i, total)
			}
			if covered.Test(uint(i)) {
				return errors.Annotatef(ErrConservation, "row %d in more than one partition", i)
			}
			covered.Set(uint(i))
		}
	}
	if count := covered.Count(); count != uint(total) {
		return errors.Annotatef(ErrConservation, "%d of %d rows covered", count, total)
	}
	return nil
}
