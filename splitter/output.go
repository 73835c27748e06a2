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
	"path/filepath"
	"strings"
	"time"

	"github.com/gorse-io/gorse-split/base/log"
	"github.com/gorse-io/gorse-split/dataset"
	"github.com/gorse-io/gorse-split/storage/blob"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// TimestampLayout formats run timestamps as YYYY-MM-DD_HH-MM-SS.
const TimestampLayout = "2006-01-02_15-04-05"

const (
	RoleTrain = "train"
	RoleValid = "valid"
	RoleTest  = "test"
)

// OutputPaths are locations of partitions.
type OutputPaths struct {
	Train string
	Valid string
	Test  string
}

// OutputNames derives output paths from templates by appending the timestamp before the extension. If
// templates would produce the same path, roles are inserted before the timestamp to keep paths distinct.
func OutputNames(train, valid, test string, ts time.Time) (OutputPaths, error) {
	templates := []string{train, valid, test}
	roles := []string{RoleTrain, RoleValid, RoleTest}
	for i, template := range templates {
		if strings.TrimSpace(template) == "" {
			return OutputPaths{}, errors.NotValidf("empty %s output", roles[i])
		}
	}
	stamp := ts.Format(TimestampLayout)
	names := lo.Map(templates, func(template string, _ int) string {
		return outputName(template, "", stamp)
	})
	if duplicates := lo.FindDuplicates(names); len(duplicates) > 0 {
		for i := range names {
			if lo.Contains(duplicates, names[i]) {
				names[i] = outputName(templates[i], roles[i], stamp)
			}
		}
	}
	if len(lo.Uniq(names)) < len(names) {
		for i := range names {
			names[i] = outputName(templates[i], roles[i], stamp)
		}
	}
	return OutputPaths{Train: names[0], Valid: names[1], Test: names[2]}, nil
}

func outputName(template, role, stamp string) string {
	ext := filepath.Ext(template)
	name := strings.TrimSuffix(template, ext) + "_"
	if role != "" {
		name += role + "_"
	}
	return name + stamp + ext
}

// Opener resolves an output location into a store and a blob name.
type Opener func(location string) (blob.Store, string, error)

// WriteResult writes partitions as delimited tables without index column.
func WriteResult(result *Result, paths OutputPaths, sep string, open Opener) error {
	for _, output := range []struct {
		role  string
		path  string
		table *dataset.Table
	}{
		{RoleTrain, paths.Train, result.Train},
		{RoleValid, paths.Valid, result.Valid},
		{RoleTest, paths.Test, result.Test},
	} {
		if err := writeTable(output.table, output.path, sep, open); err != nil {
			return errors.Annotatef(err, "failed to write %s partition", output.role)
		}
		log.Logger().Info("write partition",
			zap.String("role", output.role),
			zap.String("path", output.path),
			zap.Int("n_rows", output.table.Len()))
	}
	return nil
}

func writeTable(table *dataset.Table, location, sep string, open Opener) error {
	store, name, err := open(location)
	if err != nil {
		return errors.Trace(err)
	}
	w, done, err := store.Create(name)
	if err != nil {
		return errors.Trace(err)
	}
	writeErr := table.WriteCSV(w, sep)
	closeErr := w.Close()
	doneErr := <-done
	if writeErr != nil {
		return errors.Trace(writeErr)
	}
	if closeErr != nil {
		return errors.Trace(closeErr)
	}
	return errors.Trace(doneErr)
}
