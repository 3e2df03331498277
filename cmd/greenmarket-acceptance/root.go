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
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/icqmula/greenmarket-api-testing/pkg/config"
	"github.com/icqmula/greenmarket-api-testing/pkg/scenario"
)

// newRootCmd wires every subcommand to one set of options. The environment
// (and .env) is read first so it provides the flag defaults.
func newRootCmd(options *config.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greenmarket-acceptance",
		Short: "Run the GreenMarket API acceptance cases",
		Long: `greenmarket-acceptance exercises the GreenMarket e-commerce API end to end:
user registration and login, the product catalog and order management.
Cases run in order within a module, artifacts such as the session token
flow from one case to the next, and cases whose inputs were never produced
are reported as blocked rather than failed.`,
		// SilenceUsage is set so a failed run does not print usage.
		SilenceUsage: true,
	}

	options.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(newRunCmd(options))
	cmd.AddCommand(newCasesCmd(options))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

//nolint:gochecknoglobals
var rootCmd = newRootCmd(config.Load(".env"))

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command and exits non-zero on any error, including
// a run with failed or blocked cases.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "greenmarket-acceptance version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// newLogger returns a zap backed logr.Logger, human readable when debugging.
func newLogger(debug bool) (logr.Logger, func(), error) {
	cfg := zap.NewProductionConfig()

	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	z, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, err
	}

	return zapr.NewLogger(z), func() { _ = z.Sync() }, nil
}

// loadPlan returns the YAML plan if one was given, otherwise the built in
// catalog for the configured customer.
func loadPlan(options *config.Options) (*scenario.Plan, error) {
	if options.PlanFile != "" {
		return scenario.LoadPlan(options.PlanFile)
	}

	plan := options.Catalog().Plan()

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

// describe finds a case's module and description for listing.
func describe(plan *scenario.Plan, id string) (string, string) {
	for _, m := range plan.Modules {
		for _, c := range m.Cases {
			if c.ID == id {
				return m.Name, c.Description
			}
		}
	}

	return "", ""
}
