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

package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/routermigrate/cmd/routermigrate/opts"
	"github.com/walteh/routermigrate/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the files and rules of the active plan",
		Long: `Rules prints the plan that a run would use, without touching any file.
It will:
1. Load the plan from --config, or the built-in one
2. Print the rules in the order they are applied
3. Print the files in the order they are processed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := o.LoadPlan(cmd.Context())
			if err != nil {
				return err
			}

			out, err := renderPlan(plan)
			if err != nil {
				return errors.Errorf("rendering plan: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	return cmd
}

// rulesTableData returns the rule table, header first
func rulesTableData(plan *config.Plan) pterm.TableData {
	data := pterm.TableData{{"#", "Name", "Pattern", "Replacement", "Files"}}
	for i, r := range plan.Rules {
		files := r.Files
		if files == "" {
			files = "*"
		}
		data = append(data, []string{strconv.Itoa(i + 1), r.Name, r.Pattern, r.Replacement, files})
	}
	return data
}

// filesTableData returns the file table, header first
func filesTableData(plan *config.Plan) pterm.TableData {
	data := pterm.TableData{{"#", "Path"}}
	for i, f := range plan.Files {
		data = append(data, []string{strconv.Itoa(i + 1), f})
	}
	return data
}

func renderPlan(plan *config.Plan) (string, error) {
	rules, err := pterm.DefaultTable.WithHasHeader().WithData(rulesTableData(plan)).Srender()
	if err != nil {
		return "", errors.Errorf("rendering rules: %w", err)
	}

	files, err := pterm.DefaultTable.WithHasHeader().WithData(filesTableData(plan)).Srender()
	if err != nil {
		return "", errors.Errorf("rendering files: %w", err)
	}

	source := "built-in"
	if loc := plan.Location(); loc != "" {
		source = loc
	}

	return "Plan: " + source + "\n" +
		pterm.DefaultSection.Sprint("Rules") + rules + "\n" +
		pterm.DefaultSection.Sprint("Files") + files + "\n", nil
}
