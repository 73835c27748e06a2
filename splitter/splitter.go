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
	"github.com/gorse-io/gorse-split/base/log"
	"github.com/gorse-io/gorse-split/dataset"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Result of splitting a table. Every partition shares columns with the input table.
type Result struct {
	Train *dataset.Table
	Valid *dataset.Table
	Test  *dataset.Table
	// DevTest is the class-balanced sample that is split into Valid and Test.
	DevTest *dataset.Table
	// Quota is the number of rows sampled per class.
	Quota          int
	Classes        []int
	StratifyColumn string
}

// Split partitions a table into train, validation and test. A class-balanced sample of Quota rows per class is
// split in halves for validation and test, and the rest of rows goes to train in shuffled order.
func Split(table *dataset.Table, opts Options) (*Result, error) {
	f, err := opts.inspect(table)
	if err != nil {
		return nil, errors.Trace(err)
	}
	n := table.Len()

	// shuffle rows
	perm := Shuffle(n, opts.Seed)

	// sample quota per class
	sfact := Quota(opts.Fractions.Val, n, len(f.classes))
	log.Logger().Info("sample rows per class",
		zap.Int("n_rows", n),
		zap.Ints("classes", f.classes),
		zap.Int("quota", sfact))
	counts := lo.CountValues(f.labels)
	for _, class := range f.classes {
		if counts[class] < sfact {
			log.Logger().Warn("insufficient rows for class",
				zap.Int("class", class),
				zap.Int("n_rows", counts[class]),
				zap.Int("quota", sfact))
		}
	}
	if outside := n - lo.Sum(lo.Map(f.classes, func(class int, _ int) int { return counts[class] })); outside > 0 {
		log.Logger().Warn("rows with labels outside classes are kept for train", zap.Int("n_rows", outside))
	}
	devTest := SampleQuota(f.labels, perm, f.classes, sfact)

	// split balanced sample
	valid, test := StratifiedSplit(f.labels, devTest, 0.5, opts.Seed)

	// the rest goes to train
	train := Complement(f.ids, perm, devTest)
	if err = CheckConservation(n, train, valid, test); err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("split dataset",
		zap.Int("n_train", len(train)),
		zap.Int("n_valid", len(valid)),
		zap.Int("n_test", len(test)))

	return &Result{
		Train:          table.SubSet(train),
		Valid:          table.SubSet(valid),
		Test:           table.SubSet(test),
		DevTest:        table.SubSet(devTest),
		Quota:          sfact,
		Classes:        f.classes,
		StratifyColumn: opts.StratifyColumn,
	}, nil
}
