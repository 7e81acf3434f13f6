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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// Replacement templates reference capture groups as ${1}, which HCL reads as
// interpolation; write them as $${1} in .hcl plans.
type HCLParser struct{}

type hclRule struct {
	Name        string  `hcl:"name,label"`
	Pattern     string  `hcl:"pattern"`
	Replacement string  `hcl:"replacement"`
	Files       *string `hcl:"files,optional"`
}

type hclPlan struct {
	Files     []string  `hcl:"files"`
	Rules     []hclRule `hcl:"rule,block"`
	Reminders []string  `hcl:"reminders,optional"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the plan from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Plan, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "plan.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var hclCfg hclPlan
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	plan := &Plan{
		Files:     hclCfg.Files,
		Reminders: hclCfg.Reminders,
	}
	for _, r := range hclCfg.Rules {
		rule := Rule{
			Name:        r.Name,
			Pattern:     r.Pattern,
			Replacement: r.Replacement,
		}
		if r.Files != nil {
			rule.Files = *r.Files
		}
		plan.Rules = append(plan.Rules, rule)
	}

	return plan, nil
}
