// Copyright 2025 gorse Project Authors
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

package dataset

import (
	"bufio"
	"io"
	"strings"

	"github.com/gorse-io/gorse-split/base"
	"github.com/juju/errors"
)

const maxLineSize = 16 * 1024 * 1024

// Table is an in-memory delimited table. Cells are kept verbatim, so a table written back produces the same
// cells it was loaded from. Rows are shared between a table and its subsets and must not be modified.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

func NewTable(columns []string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, exist := index[name]; exist {
			return nil, errors.NotValidf("duplicate column %q", name)
		}
		index[name] = i
	}
	return &Table{
		columns: columns,
		index:   index,
		rows:    make([][]string, 0),
	}, nil
}

func (t *Table) Columns() []string {
	return t.columns
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Row(i int) []string {
	return t.rows[i]
}

func (t *Table) HasColumn(name string) bool {
	_, exist := t.index[name]
	return exist
}

// Column returns values of a column in row order.
func (t *Table) Column(name string) ([]string, error) {
	j, exist := t.index[name]
	if !exist {
		return nil, errors.NotFoundf("column %q", name)
	}
	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[j]
	}
	return values, nil
}

// Append a row. The row must have a value for every column.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.columns) {
		return errors.NotValidf("row with %d fields for %d columns", len(row), len(t.columns))
	}
	t.rows = append(t.rows, row)
	return nil
}

// SubSet creates a table of selected rows in the order of indices.
func (t *Table) SubSet(indices []int) *Table {
	rows := make([][]string, len(indices))
	for i, index := range indices {
		rows[i] = t.rows[index]
	}
	return &Table{
		columns: t.columns,
		index:   t.index,
		rows:    rows,
	}
}

// Frequencies counts occurrences of each value in a column.
func (t *Table) Frequencies(name string) (*FreqDict, error) {
	values, err := t.Column(name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	dict := NewFreqDict()
	for _, value := range values {
		dict.Id(value)
	}
	return dict, nil
}

// LoadCSV loads a delimited table. The first line is the header. Blank lines are skipped.
func LoadCSV(r io.Reader, sep string) (*Table, error) {
	var (
		table   *Table
		loadErr error
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(base.ScanRawLines)
	err := base.ReadLines(sc, sep, func(line int, fields []string) bool {
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			return true
		}
		if table == nil {
			table, loadErr = NewTable(fields)
			return loadErr == nil
		}
		if loadErr = table.Append(fields); loadErr != nil {
			loadErr = errors.Annotatef(loadErr, "line %d", line+1)
			return false
		}
		return true
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	if loadErr != nil {
		return nil, loadErr
	}
	if table == nil {
		return nil, errors.NotValidf("table without header")
	}
	return table, nil
}

// WriteCSV writes the header and rows of a table.
func (t *Table) WriteCSV(w io.Writer, sep string) error {
	writer := bufio.NewWriter(w)
	writeLine := func(fields []string) error {
		for i, field := range fields {
			if i > 0 {
				if _, err := writer.WriteString(sep); err != nil {
					return err
				}
			}
			if _, err := writer.WriteString(base.Escape(field, sep)); err != nil {
				return err
			}
		}
		return writer.WriteByte('\n')
	}
	if err := writeLine(t.columns); err != nil {
		return errors.Trace(err)
	}
	for _, row := range t.rows {
		if err := writeLine(row); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(writer.Flush())
}
