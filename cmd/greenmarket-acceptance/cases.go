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
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/icqmula/greenmarket-api-testing/pkg/config"
)

func newCasesCmd(options *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "List the cases in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := loadPlan(options)
			if err != nil {
				return err
			}

			ids, err := plan.CaseIDs()
			if err != nil {
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("MODULE", "CASE", "DESCRIPTION")

			for _, id := range ids {
				module, description := describe(plan, id)

				t.Row(module, id, description)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())

			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of greenmarket-acceptance",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "greenmarket-acceptance version %s\n", cmd.Root().Version)
		},
	}
}
