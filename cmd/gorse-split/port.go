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
	"fmt"

	"github.com/gorse-io/gorse-split/config"
	"github.com/gorse-io/gorse-split/porter"
	"github.com/gorse-io/gorse-split/storage/blob"
	"github.com/juju/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newPortCommand() *cobra.Command {
	portCommand := &cobra.Command{
		Use:   "port",
		Short: "Copy files named by a table column into a directory",
		Args:  cobra.NoArgs,
		RunE:  runPort,
	}
	flags := portCommand.Flags()
	flags.String("input", "", "input table (local path, s3://, gs:// or azblob://)")
	flags.String("sep", config.DefaultSeparator, "field separator")
	flags.String("column", "", "column of file names")
	flags.String("source-dir", "", "directory to copy files from")
	flags.String("dest-dir", "", "directory to copy files to")
	return portCommand
}

func runPort(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	conf, err := config.LoadConfig(configPath, "port", cmd.Flags())
	if err != nil {
		return errors.Trace(err)
	}
	if err = conf.Port.Validate(); err != nil {
		return errors.Trace(err)
	}
	table, err := loadTable(conf.Port.Input, conf.Port.Separator, func(location string) (blob.Store, string, error) {
		return blob.Locate(location, conf.Storage)
	})
	if err != nil {
		return errors.Trace(err)
	}
	stats, err := porter.Port(afero.NewOsFs(), table, conf.Port.Column, conf.Port.SourceDir, conf.Port.DestDir,
		porter.Options{Progress: cmd.ErrOrStderr()})
	if err != nil {
		return errors.Trace(err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "copied %d files, skipped %d files\n", stats.Copied, stats.Skipped)
	return nil
}
