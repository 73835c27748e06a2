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

package porter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorse-io/gorse-split/base/log"
	"github.com/gorse-io/gorse-split/dataset"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Stats of porting files.
type Stats struct {
	Copied  int
	Skipped int
}

type Options struct {
	// Progress receives the progress bar. Nothing is rendered if it is nil.
	Progress io.Writer
}

// Port copies files named by a column of a table from srcDir to dstDir. Names missing in srcDir and names
// escaping either directory are skipped.
func Port(fs afero.Fs, table *dataset.Table, column, srcDir, dstDir string, opts Options) (Stats, error) {
	for _, dir := range []string{srcDir, dstDir} {
		ok, err := afero.DirExists(fs, dir)
		if err != nil {
			return Stats{}, errors.Trace(err)
		}
		if !ok {
			return Stats{}, errors.NotValidf("directory %s", dir)
		}
	}
	if !table.HasColumn(column) {
		return Stats{}, errors.NotValidf("column %q (columns: %s)", column, strings.Join(table.Columns(), ", "))
	}
	names, err := table.Column(column)
	if err != nil {
		return Stats{}, errors.Trace(err)
	}

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(names),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Porting files"),
		progressbar.OptionShowCount())
	var stats Stats
	for _, name := range names {
		if !filepath.IsLocal(name) {
			stats.Skipped++
			log.Logger().Warn("skip file outside directory", zap.String("name", name))
			_ = bar.Add(1)
			continue
		}
		copied, err := copyFile(fs, filepath.Join(srcDir, name), filepath.Join(dstDir, name))
		if err != nil {
			return stats, errors.Annotatef(err, "failed to copy %s", name)
		}
		if copied {
			stats.Copied++
		} else {
			stats.Skipped++
			log.Logger().Debug("skip missing file", zap.String("name", name))
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	log.Logger().Info("port files",
		zap.String("source_dir", srcDir),
		zap.String("dest_dir", dstDir),
		zap.Int("n_copied", stats.Copied),
		zap.Int("n_skipped", stats.Skipped))
	return stats, nil
}

// copyFile copies a regular file. It returns false if the source is missing or not a regular file.
func copyFile(fs afero.Fs, src, dst string) (bool, error) {
	info, err := fs.Stat(src)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, errors.Trace(err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	if err = fs.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return false, errors.Trace(err)
	}
	in, err := fs.Open(src)
	if err != nil {
		return false, errors.Trace(err)
	}
	defer in.Close()
	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return false, errors.Trace(err)
	}
	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return false, errors.Trace(err)
	}
	return true, errors.Trace(out.Close())
}
