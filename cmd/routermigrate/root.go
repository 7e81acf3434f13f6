// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/routermigrate/cmd/routermigrate/commands"
	"github.com/walteh/routermigrate/cmd/routermigrate/opts"
	"github.com/walteh/routermigrate/pkg/log"
	"github.com/walteh/routermigrate/pkg/operation"
	"github.com/walteh/routermigrate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd creates the root command. Running it without arguments performs
// the built-in migration in the current directory.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "routermigrate",
		Short: "Rewrite react-router-dom hooks to next/router",
		Long: `routermigrate rewrites a fixed list of front-end files from the
react-router-dom hooks API to next/router using ordered regular expression
rules. It will:
1. Read each listed file
2. Apply every rule in order
3. Write the file back only if it changed
4. Print what still needs a manual review`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), stderr, o.Debug)
			ctx = log.NewContext(ctx, log.New(cmd.OutOrStdout(), *zerolog.Ctx(ctx)))
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd.Context(), o)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewRulesCmd(o),
		commands.NewVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "plan file (.yaml, .json or .hcl) replacing the built-in plan")
	cmd.PersistentFlags().StringVarP(&o.Chdir, "chdir", "C", ".", "directory the listed paths are relative to")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVar(&o.DryRun, "dry-run", false, "show what would change without writing")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// runMigration runs the plan. Per-file failures are reported, not returned.
func runMigration(ctx context.Context, o *opts.RootOpts) error {
	plan, err := o.LoadPlan(ctx)
	if err != nil {
		return err
	}

	m, err := operation.New(operation.Options{
		Plan:   plan,
		Files:  status.NewManager(o.Chdir),
		Logger: log.FromContext(ctx),
		DryRun: o.DryRun,
	})
	if err != nil {
		return errors.Errorf("creating migrator: %w", err)
	}

	m.Run(ctx)
	return nil
}
