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
	"fmt"
	"strconv"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gorse-io/gorse-split/dataset"
	"github.com/jaswdr/faker"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

// newTable creates a table with counts[c] rows labeled c.
func newTable(t *testing.T, counts ...int) *dataset.Table {
	fake := faker.New()
	table, err := dataset.NewTable([]string{"image", "label", "caption"})
	assert.NoError(t, err)
	i := 0
	for class, count := range counts {
		for j := 0; j < count; j++ {
			err = table.Append([]string{fmt.Sprintf("img_%03d.png", i), strconv.Itoa(class), fake.Lorem().Sentence(5)})
			assert.NoError(t, err)
			i++
		}
	}
	return table
}

func newOptions() Options {
	return Options{
		StratifyColumn:   "label",
		IdentifierColumn: "image",
		Fractions:        Fractions{Train: 0.8, Val: 0.1, Test: 0.1},
		NumClasses:       DefaultNumClasses,
		Seed:             DefaultSeed,
	}
}

func identifiers(t *testing.T, table *dataset.Table) []string {
	ids, err := table.Column("image")
	assert.NoError(t, err)
	return ids
}

func TestFractions_Validate(t *testing.T) {
	assert.NoError(t, Fractions{Train: 0.8, Val: 0.1, Test: 0.1}.Validate())
	assert.NoError(t, Fractions{Train: 0.5, Val: 0.25, Test: 0.25}.Validate())
	assert.NoError(t, Fractions{Train: 1}.Validate())
	err := Fractions{Train: 0.5, Val: 0.3, Test: 0.3}.Validate()
	assert.True(t, errors.Is(err, errors.NotValid))
	err = Fractions{Train: 0.6, Val: 0.2, Test: 0.3}.Validate()
	assert.True(t, errors.Is(err, errors.NotValid))
	err = Fractions{Train: 1.5, Val: -0.25, Test: -0.25}.Validate()
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestOptions_Validate(t *testing.T) {
	table := newTable(t, 5, 5, 5, 5)
	assert.NoError(t, newOptions().Validate(table))

	// fractions are checked first
	opts := newOptions()
	opts.Fractions = Fractions{Train: 0.5, Val: 0.3, Test: 0.3}
	opts.StratifyColumn = "missing"
	err := opts.Validate(table)
	assert.True(t, errors.Is(err, errors.NotValid))
	assert.Contains(t, err.Error(), "fractions")

	// missing columns
	opts = newOptions()
	opts.StratifyColumn = "class"
	err = opts.Validate(table)
	assert.True(t, errors.Is(err, errors.NotValid))
	assert.Contains(t, err.Error(), "class")
	opts = newOptions()
	opts.IdentifierColumn = "id"
	err = opts.Validate(table)
	assert.True(t, errors.Is(err, errors.NotValid))
	assert.Contains(t, err.Error(), "id")

	// negative number of classes
	opts = newOptions()
	opts.NumClasses = -1
	assert.True(t, errors.Is(opts.Validate(table), errors.NotValid))
}

func TestOptions_Validate_Labels(t *testing.T) {
	table, err := dataset.NewTable([]string{"image", "label"})
	assert.NoError(t, err)
	assert.NoError(t, table.Append([]string{"a.png", "0"}))
	assert.NoError(t, table.Append([]string{"b.png", " 1 "}))
	assert.NoError(t, newOptions().Validate(table))
	assert.NoError(t, table.Append([]string{"c.png", "cat"}))
	err = newOptions().Validate(table)
	assert.True(t, errors.Is(err, errors.NotValid))
	assert.Contains(t, err.Error(), "cat")
}

func TestOptions_Validate_Identifiers(t *testing.T) {
	table, err := dataset.NewTable([]string{"image", "label"})
	assert.NoError(t, err)
	assert.NoError(t, table.Append([]string{"a.png", "0"}))
	assert.NoError(t, table.Append([]string{"b.png", "1"}))
	assert.NoError(t, table.Append([]string{"a.png", "2"}))
	err = newOptions().Validate(table)
	assert.True(t, errors.Is(err, errors.NotValid))
	assert.Contains(t, err.Error(), "a.png")
}

func TestOptions_ResolveClasses(t *testing.T) {
	opts := newOptions()
	assert.Equal(t, []int{0, 1, 2, 3}, opts.resolveClasses([]int{5, 6}))
	opts.Classes = []int{7, 2, 7, 5}
	assert.Equal(t, []int{2, 5, 7}, opts.resolveClasses([]int{0}))
	opts = newOptions()
	opts.NumClasses = 0
	assert.Equal(t, []int{1, 3, 5}, opts.resolveClasses([]int{5, 1, 3, 1}))
	assert.Empty(t, opts.resolveClasses(nil))
}

func TestShuffle(t *testing.T) {
	perm := Shuffle(100, DefaultSeed)
	assert.Len(t, perm, 100)
	assert.ElementsMatch(t, lo.Range(100), perm)
	assert.Equal(t, perm, Shuffle(100, DefaultSeed))
	assert.NotEqual(t, perm, Shuffle(100, DefaultSeed+1))
	assert.Empty(t, Shuffle(0, DefaultSeed))
}

func TestQuota(t *testing.T) {
	assert.Equal(t, 3, Quota(0.1, 100, 4))
	assert.Equal(t, 1, Quota(0.1, 10, 4))
	assert.Equal(t, 3, Quota(0.25, 40, 4))
	assert.Equal(t, 0, Quota(0.1, 0, 4))
	assert.Equal(t, 0, Quota(0.1, 100, 0))
	assert.Equal(t, 0, Quota(0, 100, 4))
}

func TestSampleQuota(t *testing.T) {
	labels := []int{0, 1, 0, 1, 2, 0}
	perm := []int{5, 4, 3, 2, 1, 0}
	assert.Equal(t, []int{5, 2, 3, 1, 4}, SampleQuota(labels, perm, []int{0, 1, 2}, 2))
	// classes without rows contribute nothing
	assert.Equal(t, []int{4, 5}, SampleQuota(labels, perm, []int{2, 3, 0}, 1))
	assert.Empty(t, SampleQuota(labels, perm, []int{0, 1, 2}, 0))
}

func TestStratifiedSplit(t *testing.T) {
	labels := []int{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3}
	rows := lo.Range(12)
	valid, test := StratifiedSplit(labels, rows, 0.5, DefaultSeed)
	assert.Len(t, valid, 6)
	assert.Len(t, test, 6)
	assert.ElementsMatch(t, rows, append(append([]int{}, valid...), test...))
	counts := lo.CountValues(lo.Map(test, func(i int, _ int) int { return labels[i] }))
	for class := 0; class < 4; class++ {
		assert.GreaterOrEqual(t, counts[class], 1)
		assert.LessOrEqual(t, counts[class], 2)
	}

	// reproducible
	valid2, test2 := StratifiedSplit(labels, rows, 0.5, DefaultSeed)
	assert.Equal(t, valid, valid2)
	assert.Equal(t, test, test2)
}

func TestStratifiedSplit_Proportion(t *testing.T) {
	labels := make([]int, 0, 20)
	for class, count := range []int{10, 6, 4} {
		for i := 0; i < count; i++ {
			labels = append(labels, class)
		}
	}
	valid, test := StratifiedSplit(labels, lo.Range(20), 0.5, DefaultSeed)
	assert.Len(t, valid, 10)
	assert.Len(t, test, 10)
	counts := lo.CountValues(lo.Map(test, func(i int, _ int) int { return labels[i] }))
	assert.Equal(t, map[int]int{0: 5, 1: 3, 2: 2}, counts)
}

func TestStratifiedSplit_EdgeCases(t *testing.T) {
	valid, test := StratifiedSplit(nil, nil, 0.5, DefaultSeed)
	assert.Empty(t, valid)
	assert.Empty(t, test)

	// a single row goes to test
	valid, test = StratifiedSplit([]int{0}, []int{0}, 0.5, DefaultSeed)
	assert.Empty(t, valid)
	assert.Equal(t, []int{0}, test)

	// singleton classes
	labels := []int{0, 1, 1, 1, 2}
	valid, test = StratifiedSplit(labels, []int{4, 3, 2, 1, 0}, 0.5, DefaultSeed)
	assert.Len(t, valid, 2)
	assert.Len(t, test, 3)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, append(append([]int{}, valid...), test...))
}

func TestComplement(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	assert.Equal(t, []int{3, 0}, Complement(ids, []int{3, 1, 0, 2}, []int{1, 2}))
	assert.Equal(t, []int{3, 1, 0, 2}, Complement(ids, []int{3, 1, 0, 2}, nil))
	assert.Empty(t, Complement(ids, []int{3, 1, 0, 2}, []int{0, 1, 2, 3}))
}

func TestCheckConservation(t *testing.T) {
	assert.NoError(t, CheckConservation(5, []int{4, 0}, []int{1, 3}, []int{2}))
	assert.NoError(t, CheckConservation(0, nil, nil, nil))
	// missing row
	assert.ErrorIs(t, CheckConservation(5, []int{4, 0}, []int{1}, []int{2}), ErrConservation)
	// duplicate row
	assert.ErrorIs(t, CheckConservation(5, []int{4, 0}, []int{1, 2}, []int{2}), ErrConservation)
	// out of range
	assert.ErrorIs(t, CheckConservation(3, []int{0}, []int{1}, []int{3}), ErrConservation)
}

func TestSplit(t *testing.T) {
	table := newTable(t, 25, 25, 25, 25)
	result, err := Split(table, newOptions())
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Quota)
	assert.Equal(t, []int{0, 1, 2, 3}, result.Classes)
	assert.Equal(t, 12, result.DevTest.Len())
	assert.Equal(t, 6, result.Valid.Len())
	assert.Equal(t, 6, result.Test.Len())
	assert.Equal(t, 88, result.Train.Len())
	assert.Equal(t, table.Columns(), result.Train.Columns())

	// balanced sample
	counts, err := countClasses(result.DevTest, "label")
	assert.NoError(t, err)
	assert.Equal(t, map[int]int{0: 3, 1: 3, 2: 3, 3: 3}, counts)

	// partitions are disjoint and complete
	train := mapset.NewSet(identifiers(t, result.Train)...)
	valid := mapset.NewSet(identifiers(t, result.Valid)...)
	test := mapset.NewSet(identifiers(t, result.Test)...)
	assert.Zero(t, train.Intersect(valid).Cardinality())
	assert.Zero(t, train.Intersect(test).Cardinality())
	assert.Zero(t, valid.Intersect(test).Cardinality())
	assert.True(t, train.Union(valid).Union(test).Equal(mapset.NewSet(identifiers(t, table)...)))
	assert.True(t, valid.Union(test).Equal(mapset.NewSet(identifiers(t, result.DevTest)...)))
}

func TestSplit_Reproducible(t *testing.T) {
	table := newTable(t, 25, 25, 25, 25)
	a, err := Split(table, newOptions())
	assert.NoError(t, err)
	b, err := Split(table, newOptions())
	assert.NoError(t, err)
	assert.Equal(t, identifiers(t, a.Train), identifiers(t, b.Train))
	assert.Equal(t, identifiers(t, a.Valid), identifiers(t, b.Valid))
	assert.Equal(t, identifiers(t, a.Test), identifiers(t, b.Test))
}

func TestSplit_InsufficientClass(t *testing.T) {
	table := newTable(t, 13, 13, 13, 1)
	opts := newOptions()
	opts.Fractions = Fractions{Train: 0.5, Val: 0.25, Test: 0.25}
	result, err := Split(table, opts)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Quota)
	assert.Equal(t, 10, result.DevTest.Len())
	assert.Equal(t, 5, result.Valid.Len())
	assert.Equal(t, 5, result.Test.Len())
	assert.Equal(t, 30, result.Train.Len())
	counts, err := countClasses(result.DevTest, "label")
	assert.NoError(t, err)
	assert.Equal(t, map[int]int{0: 3, 1: 3, 2: 3, 3: 1}, counts)
}

func TestSplit_DeclaredClasses(t *testing.T) {
	table := newTable(t, 10, 10, 10)
	opts := newOptions()
	opts.Classes = []int{2, 0}
	result, err := Split(table, opts)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 2}, result.Classes)
	// ceil(0.1 * 30 / 2) rows per declared class
	assert.Equal(t, 2, result.Quota)
	counts, err := countClasses(result.DevTest, "label")
	assert.NoError(t, err)
	assert.Equal(t, map[int]int{0: 2, 2: 2}, counts)
	counts, err = countClasses(result.Train, "label")
	assert.NoError(t, err)
	assert.Equal(t, 10, counts[1])
}

func TestSplit_DiscoverClasses(t *testing.T) {
	table := newTable(t, 0, 8, 0, 8, 0, 8)
	opts := newOptions()
	opts.NumClasses = 0
	result, err := Split(table, opts)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, result.Classes)
	assert.Equal(t, 1, result.Quota)
	assert.Equal(t, 3, result.DevTest.Len())
	assert.Equal(t, 21, result.Train.Len())
}

func TestSplit_Invalid(t *testing.T) {
	table := newTable(t, 5, 5)
	opts := newOptions()
	opts.StratifyColumn = "missing"
	_, err := Split(table, opts)
	assert.True(t, errors.Is(err, errors.NotValid))
}
