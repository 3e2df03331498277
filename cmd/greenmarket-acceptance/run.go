/*
Copyright 2026 the GreenMarket Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/icqmula/greenmarket-api-testing/internal/twin"
	"github.com/icqmula/greenmarket-api-testing/pkg/config"
	"github.com/icqmula/greenmarket-api-testing/pkg/constants"
	"github.com/icqmula/greenmarket-api-testing/pkg/report"
	"github.com/icqmula/greenmarket-api-testing/pkg/scenario"
)

// ErrRunFailed is returned when any case failed or was blocked.
var ErrRunFailed = errors.New("acceptance run failed")

type runFlags struct {
	twin    bool
	verbose bool
}

func newRunCmd(options *config.Options) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the acceptance cases and print a summary",
		Long: `Run every module against the configured API and print a per-module
summary. With --twin the cases run against an in-process GreenMarket twin
instead, which is useful for checking a plan before pointing it at a real
environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cmd.OutOrStdout(), options, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.twin, "twin", false, "Run against an in-process GreenMarket twin.")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "List passed cases too.")

	return cmd
}

func run(ctx context.Context, out io.Writer, options *config.Options, flags runFlags) error {
	logger, sync, err := newLogger(options.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	defer sync()

	logger.Info("service starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	if flags.twin {
		stop, err := startTwin(options, logger)
		if err != nil {
			return err
		}

		defer stop()
	}

	if err := options.Validate(); err != nil {
		return err
	}

	plan, err := loadPlan(options)
	if err != nil {
		return err
	}

	runner := scenario.NewRunner(options.Client(logger.WithName("client")), options.RequestConfig(),
		scenario.WithLogger(logger.WithName("runner")),
		scenario.WithParallel(options.Parallel),
	)

	logger.Info("running plan", "baseURL", options.BaseURL, "modules", len(plan.Modules), "parallel", options.Parallel)

	result, err := runner.Run(ctx, plan)
	if err != nil {
		return err
	}

	if err := report.New(out, report.WithVerbose(flags.verbose)).Print(result); err != nil {
		return err
	}

	if !result.OK() {
		return fmt.Errorf("%w: %d failed, %d blocked", ErrRunFailed, result.Count(scenario.Failed), result.Count(scenario.Blocked))
	}

	return nil
}

// startTwin serves a fresh twin and points the options at it.
func startTwin(options *config.Options, logger logr.Logger) (func(), error) {
	t, err := twin.New(twin.WithLogger(logger.WithName("twin")))
	if err != nil {
		return nil, fmt.Errorf("creating twin: %w", err)
	}

	server := t.Start()
	options.BaseURL = server.URL

	logger.Info("twin started", "url", server.URL)

	return server.Close, nil
}
