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

package operation

import (
	"bytes"
	"context"
	"io/fs"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/routermigrate/pkg/config"
	"github.com/walteh/routermigrate/pkg/log"
	"github.com/walteh/routermigrate/pkg/status"
	"github.com/walteh/routermigrate/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the migrator
type Options struct {
	// Plan lists the files, rules and reminders
	Plan *config.Plan
	// Files reads and rewrites the listed files
	Files status.FileManager
	// Logger receives one line per file and the closing banner
	Logger *log.Logger
	// Replacer applies the rules, defaults to a RegexpTextReplacer
	Replacer text.TextReplacer
	// DryRun reports changes and diffs without writing
	DryRun bool
}

// 🎮 Migrator applies a plan's rules to each of its files in turn
type Migrator struct {
	plan     *config.Plan
	rules    []text.ReplacementRule
	files    status.FileManager
	logger   *log.Logger
	replacer text.TextReplacer
	dryRun   bool
}

// 🏭 New creates a new migrator with the given options
func New(opts Options) (*Migrator, error) {
	if opts.Plan == nil {
		return nil, errors.Errorf("plan is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}

	replacer := opts.Replacer
	if replacer == nil {
		replacer = text.NewRegexpTextReplacer()
	}

	rules := opts.Plan.ReplacementRules()
	if err := replacer.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	return &Migrator{
		plan:     opts.Plan,
		rules:    rules,
		files:    opts.Files,
		logger:   opts.Logger,
		replacer: replacer,
		dryRun:   opts.DryRun,
	}, nil
}

// 📄 Process reads one file, applies every rule in order and writes the file
// back if anything changed. It never returns an error: failures are reported
// through the result's Outcome.
func (m *Migrator) Process(ctx context.Context, path string) status.FileResult {
	res := status.FileResult{Path: path}

	fail := func(err error) status.FileResult {
		res.Outcome = status.OutcomeFailed
		res.Err = err
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(errors.Errorf("not started: %w", err))
	}

	content, err := m.files.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Outcome = status.OutcomeNotFound
			res.Err = err
			return res
		}
		return fail(err)
	}
	res.Original = content

	if !utf8.Valid(content) {
		return fail(errors.New("invalid UTF-8 content"))
	}

	result, err := m.replacer.ReplaceText(ctx, path, bytes.NewReader(content), m.rules)
	if err != nil {
		return fail(errors.Errorf("applying rules: %w", err))
	}
	res.Modified = result.ModifiedContent
	res.Replacements = result.ReplacementCount
	res.AppliedRules = result.AppliedRules

	if !result.WasModified {
		res.Outcome = status.OutcomeSkipped
		return res
	}

	if m.dryRun {
		res.Outcome = status.OutcomeSuccess
		res.DryRun = true
		return res
	}

	if err := m.files.WriteFileAtomic(ctx, path, result.ModifiedContent); err != nil {
		return fail(err)
	}

	res.Outcome = status.OutcomeSuccess
	return res
}

// 🏃 Run processes every file of the plan in order, reports each result and
// finishes with the banner. The summary is informational; a run never fails.
func (m *Migrator) Run(ctx context.Context) status.Summary {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("plan", m.plan.String()).Bool("dry_run", m.dryRun).Msg("starting migration")

	tracker := status.NewTracker()
	for _, path := range m.plan.Files {
		res := m.Process(ctx, path)
		tracker.Track(res)

		m.logger.LogFileResult(ctx, res)
		if res.DryRun && res.Outcome == status.OutcomeSuccess {
			m.logger.LogDiff(ctx, path, text.LineDiff(string(res.Original), string(res.Modified)))
		}
	}

	m.logger.Banner(ctx, m.plan.Reminders)

	var unresolved []string
	for _, res := range tracker.Results() {
		if res.Outcome == status.OutcomeFailed || res.Outcome == status.OutcomeNotFound {
			unresolved = append(unresolved, res.Path)
		}
	}

	summary := tracker.Summary()
	logger.Info().
		Strs("unresolved", unresolved).
		Int("total", summary.Total).
		Int("success", summary.Success).
		Int("skipped", summary.Skipped).
		Int("not_found", summary.NotFound).
		Int("failed", summary.Failed).
		Msg("migration summary")

	return summary
}
