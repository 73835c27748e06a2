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
	"io"
	"strconv"
	"strings"

	"github.com/gorse-io/gorse-split/dataset"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
)

// RenderSummary prints row counts of each partition per class.
func RenderSummary(w io.Writer, result *Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("partition", "class", "rows")
	for _, partition := range []struct {
		role  string
		table *dataset.Table
	}{
		{RoleTrain, result.Train},
		{RoleValid, result.Valid},
		{RoleTest, result.Test},
	} {
		counts, err := countClasses(partition.table, result.StratifyColumn)
		if err != nil {
			return errors.Trace(err)
		}
		for _, class := range result.Classes {
			if err = table.Append([]string{partition.role, strconv.Itoa(class), strconv.Itoa(counts[class])}); err != nil {
				return errors.Trace(err)
			}
		}
		if err = table.Append([]string{partition.role, "all", strconv.Itoa(partition.table.Len())}); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(table.Render())
}

func countClasses(table *dataset.Table, column string) (map[int]int, error) {
	values, err := table.Column(column)
	if err != nil {
		return nil, errors.Trace(err)
	}
	counts := make(map[int]int)
	for _, value := range values {
		class, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, errors.Trace(err)
		}
		counts[class]++
	}
	return counts, nil
}
