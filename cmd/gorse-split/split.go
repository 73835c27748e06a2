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

package main

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/gorse-io/gorse-split/base/log"
	"github.com/gorse-io/gorse-split/config"
	"github.com/gorse-io/gorse-split/dataset"
	"github.com/gorse-io/gorse-split/splitter"
	"github.com/gorse-io/gorse-split/storage/blob"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSplitCommand() *cobra.Command {
	splitCommand := &cobra.Command{
		Use:   "split",
		Short: "Split a table into train, validation and test sets",
		Long: "Split a table into train, validation and test sets. Validation and test receive a class-balanced " +
			"sample of ceil(frac-val * rows / classes) rows per class split in halves, and train receives the rest.",
		Args: cobra.NoArgs,
		RunE: runSplit,
	}
	defaultConfig := config.GetDefaultConfig()
	flags := splitCommand.Flags()
	flags.String("input", "", "input table (local path, s3://, gs:// or azblob://)")
	flags.String("sep", defaultConfig.Split.Separator, "field separator")
	flags.String("stratify-column", "", "column of integer class labels")
	flags.String("id-column", "", "column of unique row identifiers")
	flags.Float64("frac-train", defaultConfig.Split.FracTrain, "fraction of train")
	flags.Float64("frac-val", defaultConfig.Split.FracVal, "fraction of validation")
	flags.Float64("frac-test", defaultConfig.Split.FracTest, "fraction of test")
	flags.String("train-output", "", "train output template")
	flags.String("valid-output", "", "validation output template")
	flags.String("test-output", "", "test output template")
	flags.Int("num-classes", defaultConfig.Split.NumClasses, "number of classes labeled from 0 (0 to discover classes from data)")
	flags.IntSlice("classes", nil, "declared classes (overrides --num-classes)")
	flags.Int64("seed", defaultConfig.Split.Seed, "random seed")
	flags.String("timestamp", "", "run timestamp in output names (default now)")
	return splitCommand
}

func runSplit(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	conf, err := config.LoadConfig(configPath, "split", cmd.Flags())
	if err != nil {
		return errors.Trace(err)
	}
	if err = conf.Split.Validate(); err != nil {
		return errors.Trace(err)
	}
	opts := splitter.NewOptions(&conf.Split)
	if err = opts.Fractions.Validate(); err != nil {
		return errors.Trace(err)
	}

	// resolve output names
	ts := time.Now()
	if conf.Split.Timestamp != "" {
		if ts, err = dateparse.ParseAny(conf.Split.Timestamp); err != nil {
			return errors.NotValidf("timestamp %q (%v)", conf.Split.Timestamp, err)
		}
	}
	paths, err := splitter.OutputNames(conf.Split.TrainOutput, conf.Split.ValidOutput, conf.Split.TestOutput, ts)
	if err != nil {
		return errors.Trace(err)
	}
	open := func(location string) (blob.Store, string, error) {
		return blob.Locate(location, conf.Storage)
	}

	// load and split
	log.Logger().Info("load table", zap.String("input", conf.Split.Input))
	table, err := loadTable(conf.Split.Input, conf.Split.Separator, open)
	if err != nil {
		return errors.Trace(err)
	}
	result, err := splitter.Split(table, opts)
	if err != nil {
		return errors.Trace(err)
	}
	if err = splitter.WriteResult(result, paths, conf.Split.Separator, open); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(splitter.RenderSummary(cmd.OutOrStdout(), result))
}

func loadTable(location, sep string, open splitter.Opener) (*dataset.Table, error) {
	store, name, err := open(location)
	if err != nil {
		return nil, errors.Trace(err)
	}
	r, err := store.Open(name)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to open %s", location)
	}
	defer r.Close()
	table, err := dataset.LoadCSV(r, sep)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to load %s", location)
	}
	return table, nil
}
