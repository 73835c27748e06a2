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

import mapset "github.com/deckarep/golang-set/v2"

// Complement returns rows in the order of perm whose identifiers are not among identifiers of sampled rows.
func Complement(ids []string, perm []int, sampled []int) []int {
	excluded := mapset.NewThreadUnsafeSetWithSize[string](len(sampled))
	for _, i := range sampled {
		excluded.Add(ids[i])
	}
	rest := make([]int, 0, len(perm)-excluded.Cardinality())
	for _, i := range perm {
		if !excluded.Contains(ids[i]) {
			rest = append(rest, i)
		}
	}
	return rest
}
