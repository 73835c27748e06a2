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

package blob

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gorse-io/gorse-split/base/log"
	"go.uber.org/zap"
)

type POSIX struct {
	dir string
}

func NewPOSIX(dir string) *POSIX {
	return &POSIX{dir: dir}
}

// Open a file for reading. It returns an io.Reader that can be used to read the file's content.
func (p *POSIX) Open(name string) (io.ReadCloser, error) {
	fullPath := filepath.Join(p.dir, name)
	return os.Open(fullPath)
}

// Create a new file for writing. Missing parent directories are created. It returns an io.WriteCloser that can be used
// to write data to the file. It also returns a done channel that receives the result when the writing is complete.
func (p *POSIX) Create(name string) (io.WriteCloser, chan error, error) {
	fullPath := filepath.Join(p.dir, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return nil, nil, err
	}
	file, err := os.Create(fullPath)
	if err != nil {
		return nil, nil, err
	}
	done := make(chan error, 1)
	pr, pw := io.Pipe()
	go func() {
		defer close(done)
		_, err := io.Copy(file, pr)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			log.Logger().Error("failed to write to file", zap.String("file", fullPath), zap.Error(err))
			_ = pr.CloseWithError(err)
		}
		done <- err
	}()
	return pw, done, nil
}
