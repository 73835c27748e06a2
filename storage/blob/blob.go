// Copyright 2024 gorse Project Authors
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
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/gorse-io/gorse-split/config"
	"github.com/juju/errors"
)

const (
	S3Prefix    = "s3://"
	GCSPrefix   = "gs://"
	GCSAlias    = "gcs://"
	AzurePrefix = "azblob://"
	FilePrefix  = "file://"
)

// Store is a flat namespace of blobs.
type Store interface {
	// Open a blob for reading.
	Open(name string) (io.ReadCloser, error)
	// Create a blob for writing. The returned channel receives the result of the upload after the writer is
	// closed, then it is closed.
	Create(name string) (io.WriteCloser, chan error, error)
}

// Locate resolves a location into a store and the name of a blob in the store. Supported locations:
//
//	s3://bucket/prefix/name
//	gs://bucket/prefix/name (or gcs://)
//	azblob://container/prefix/name
//	file:///dir/name or a local path
func Locate(location string, cfg config.StorageConfig) (Store, string, error) {
	switch {
	case strings.HasPrefix(location, S3Prefix):
		bucket, prefix, name, err := parseBucketURL(location)
		if err != nil {
			return nil, "", errors.Trace(err)
		}
		store, err := NewS3(cfg.S3, bucket, prefix)
		return store, name, errors.Trace(err)
	case strings.HasPrefix(location, GCSPrefix), strings.HasPrefix(location, GCSAlias):
		bucket, prefix, name, err := parseBucketURL(location)
		if err != nil {
			return nil, "", errors.Trace(err)
		}
		store, err := NewGCS(cfg.GCS, bucket, prefix)
		return store, name, errors.Trace(err)
	case strings.HasPrefix(location, AzurePrefix):
		container, prefix, name, err := parseBucketURL(location)
		if err != nil {
			return nil, "", errors.Trace(err)
		}
		store, err := NewAzureBlob(cfg.Azure, container, prefix)
		return store, name, errors.Trace(err)
	default:
		location = strings.TrimPrefix(location, FilePrefix)
		if location == "" {
			return nil, "", errors.NotValidf("empty location")
		}
		dir, name := filepath.Split(location)
		if name == "" {
			return nil, "", errors.NotValidf("location %s without file name", location)
		}
		return NewPOSIX(dir), name, nil
	}
}

func parseBucketURL(location string) (bucket, prefix, name string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", "", errors.Trace(err)
	}
	if u.Host == "" {
		return "", "", "", errors.NotValidf("location %s without bucket", location)
	}
	prefix, name = path.Split(strings.TrimPrefix(u.Path, "/"))
	if name == "" {
		return "", "", "", errors.NotValidf("location %s without object name", location)
	}
	return u.Host, strings.TrimSuffix(prefix, "/"), name, nil
}
