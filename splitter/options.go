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
	"sort"
	"strconv"
	"strings"

	"github.com/gorse-io/gorse-split/config"
	"github.com/gorse-io/gorse-split/dataset"
	"github.com/juju/errors"
	"github.com/samber/lo"
)

const (
	DefaultSeed       = config.DefaultSeed
	DefaultNumClasses = config.DefaultNumClasses
)

// Fractions of rows assigned to train, validation and test.
type Fractions struct {
	Train float64
	Val   float64
	Test  float64
}

// Validate checks that fractions sum to exactly 1.0. No tolerance is applied.
func (f Fractions) Validate() error {
	if f.Train < 0 || f.Val < 0 || f.Test < 0 {
		return errors.NotValidf("negative fractions (train=%v, val=%v, test=%v)", f.Train, f.Val, f.Test)
	}
	if sum := f.Train + f.Val + f.Test; sum != 1.0 {
		return errors.NotValidf("fractions (train=%v, val=%v, test=%v) summing to %v", f.Train, f.Val, f.Test, sum)
	}
	return nil
}

type Options struct {
	StratifyColumn   string
	IdentifierColumn string
	Fractions        Fractions
	// NumClasses is the number of classes labeled 0..NumClasses-1. Zero means classes are discovered from data.
	NumClasses int
	// Classes overrides NumClasses if not empty.
	Classes []int
	Seed    int64
}

func NewOptions(cfg *config.SplitConfig) Options {
	return Options{
		StratifyColumn:   cfg.StratifyColumn,
		IdentifierColumn: cfg.IdentifierColumn,
		Fractions: Fractions{
			Train: cfg.FracTrain,
			Val:   cfg.FracVal,
			Test:  cfg.FracTest,
		},
		NumClasses: cfg.NumClasses,
		Classes:    cfg.Classes,
		Seed:       cfg.Seed,
	}
}

// Validate checks options against a table. Fractions are checked before the table is inspected.
func (o Options) Validate(table *dataset.Table) error {
	_, err := o.inspect(table)
	return err
}

// frame holds the columns of a validated table used by splitting.
type frame struct {
	labels  []int
	ids     []string
	classes []int
}

func (o Options) inspect(table *dataset.Table) (*frame, error) {
	if err := o.Fractions.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if o.NumClasses < 0 {
		return nil, errors.NotValidf("negative number of classes %d", o.NumClasses)
	}
	if o.StratifyColumn == "" || o.IdentifierColumn == "" {
		return nil, errors.NotValidf("empty stratify column or identifier column")
	}
	for _, name := range []string{o.StratifyColumn, o.IdentifierColumn} {
		if !table.HasColumn(name) {
			return nil, errors.NotValidf("column %q (columns: %s)", name, strings.Join(table.Columns(), ", "))
		}
	}

	// parse labels
	values, err := table.Column(o.StratifyColumn)
	if err != nil {
		return nil, errors.Trace(err)
	}
	labels := make([]int, len(values))
	for i, value := range values {
		labels[i], err = strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, errors.NotValidf("label %q of row %d in column %q", value, i+1, o.StratifyColumn)
		}
	}

	// identifiers must be unique
	ids, err := table.Column(o.IdentifierColumn)
	if err != nil {
		return nil, errors.Trace(err)
	}
	freq, err := table.Frequencies(o.IdentifierColumn)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if duplicates := freq.Duplicates(); len(duplicates) > 0 {
		return nil, errors.NotValidf("duplicate identifiers %s in column %q",
			strings.Join(lo.Slice(duplicates, 0, 5), ", "), o.IdentifierColumn)
	}

	return &frame{
		labels:  labels,
		ids:     ids,
		classes: o.resolveClasses(labels),
	}, nil
}

// resolveClasses returns ascending distinct classes. Declared classes come first, then 0..NumClasses-1, and
// finally the labels found in data if NumClasses is zero.
func (o Options) resolveClasses(labels []int) []int {
	var classes []int
	switch {
	case len(o.Classes) > 0:
		classes = lo.Uniq(o.Classes)
	case o.NumClasses > 0:
		classes = lo.Range(o.NumClasses)
	default:
		classes = lo.Uniq(labels)
	}
	sort.Ints(classes)
	return classes
}
