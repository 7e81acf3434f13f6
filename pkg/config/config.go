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
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/routermigrate/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for plan file parsers
type Parser interface {
	// 📝 Parse parses the plan from bytes
	Parse(ctx context.Context, data []byte) (*Plan, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule is a regular expression replacement as written in a plan file
type Rule struct {
	Name        string `json:"name" yaml:"name"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement"`
	Files       string `json:"files,omitempty" yaml:"files,omitempty"` // optional doublestar glob
}

// 📚 Plan is everything a migration run needs: which files, which rules, and
// what to tell the user afterwards.
type Plan struct {
	Files     []string `json:"files" yaml:"files"`
	Rules     []Rule   `json:"rules" yaml:"rules"`
	Reminders []string `json:"reminders,omitempty" yaml:"reminders,omitempty"`

	location string
}

// 🎯 Load loads a plan from a file. The format is picked by extension.
func Load(ctx context.Context, path string) (*Plan, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading plan")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading plan file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	plan, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing plan: %w", err)
	}

	if err := plan.Validate(); err != nil {
		return nil, errors.Errorf("validating plan: %w", err)
	}

	plan.location = path
	return plan, nil
}

// 🔍 Validate checks if the plan is usable
func (p *Plan) Validate() error {
	if len(p.Files) == 0 {
		return errors.Errorf("files is required")
	}
	for i, f := range p.Files {
		if strings.TrimSpace(f) == "" {
			return errors.Errorf("files[%d]: path is empty", i)
		}
	}
	if len(p.Rules) == 0 {
		return errors.Errorf("rules is required")
	}
	for i, r := range p.Rules {
		if r.Name == "" {
			return errors.Errorf("rules[%d]: name is required", i)
		}
	}

	if err := text.NewRegexpTextReplacer().ValidateRules(p.ReplacementRules()); err != nil {
		return errors.Errorf("validating rules: %w", err)
	}

	return nil
}

// 🔄 ReplacementRules converts the plan rules for the text replacer
func (p *Plan) ReplacementRules() []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(p.Rules))
	for _, r := range p.Rules {
		rules = append(rules, text.ReplacementRule{
			Name:           r.Name,
			Pattern:        r.Pattern,
			Replacement:    r.Replacement,
			FileFilterGlob: r.Files,
		})
	}
	return rules
}

// Location returns the file the plan was loaded from, empty for built-in plans
func (p *Plan) Location() string {
	return p.location
}

// 📝 String returns a short description of the plan
func (p *Plan) String() string {
	source := p.location
	if source == "" {
		source = "built-in"
	}
	return fmt.Sprintf("%s: %d files, %d rules", source, len(p.Files), len(p.Rules))
}
