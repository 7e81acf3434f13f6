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

package opts

import (
	"context"

	"github.com/walteh/routermigrate/pkg/config"
	"github.com/walteh/routermigrate/pkg/preset"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string // plan file, empty for the built-in plan
	Chdir      string // directory plan paths are relative to
	Debug      bool
	DryRun     bool
}

// LoadPlan returns the plan from ConfigFile, or the built-in one
func (o *RootOpts) LoadPlan(ctx context.Context) (*config.Plan, error) {
	if o.ConfigFile == "" {
		return preset.NextRouter(), nil
	}

	plan, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading plan: %w", err)
	}
	return plan, nil
}
