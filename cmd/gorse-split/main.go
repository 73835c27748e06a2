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

	"github.com/google/uuid"
	"github.com/gorse-io/gorse-split/base/log"
	"github.com/gorse-io/gorse-split/cmd/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "gorse-split",
		Short:         "Split labeled tables into class-balanced train, validation and test sets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			log.SetLogger(cmd.Flags(), verbose)
			log.With(zap.String("run_id", uuid.NewString()))
		},
	}
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path (TOML, YAML or JSON)")
	rootCommand.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.AddCommand(newSplitCommand(), newPortCommand(), newVersionCommand())
	return rootCommand
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.BuildInfo())
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
	log.CloseLogger()
}
