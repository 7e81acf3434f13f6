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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/routermigrate/pkg/status"
	"github.com/walteh/routermigrate/pkg/text"
)

// 🎨 Display configuration
const (
	diffIndent = 4 // spaces to indent diff lines
)

// 🎯 Logger prints the per-file report on the console and mirrors every event
// to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileResult formats a file result for display
func formatFileResult(res status.FileResult) string {
	switch res.Outcome {
	case status.OutcomeSuccess:
		if res.DryRun {
			return fmt.Sprintf("🔍 %s (dry run, %d replacements)", color.New(color.FgCyan).Sprint(res.Path), res.Replacements)
		}
		return fmt.Sprintf("✅ %s", color.New(color.FgGreen).Sprint(res.Path))
	case status.OutcomeSkipped:
		return fmt.Sprintf("⏭️  %s (no changes)", color.New(color.Faint).Sprint(res.Path))
	case status.OutcomeNotFound:
		return fmt.Sprintf("❌ %s (not found)", color.New(color.FgRed).Sprint(res.Path))
	default:
		return fmt.Sprintf("❌ %s (error: %v)", color.New(color.FgRed).Sprint(res.Path), res.Err)
	}
}

// 📝 LogFileResult prints the status line for one file
func (l *Logger) LogFileResult(ctx context.Context, res status.FileResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, formatFileResult(res))

	event := l.zlog.Info()
	if res.Outcome == status.OutcomeFailed {
		event = l.zlog.Warn().Err(res.Err)
	}
	event.
		Str("file", res.Path).
		Str("outcome", res.Outcome.String()).
		Int("replacements", res.Replacements).
		Strs("rules", res.AppliedRules).
		Bool("dry_run", res.DryRun).
		Msg("file processed")
}

// 📝 LogDiff prints the changed lines of a file under its status line
func (l *Logger) LogDiff(ctx context.Context, path string, lines []text.DiffLine) {
	l.mu.Lock()
	defer l.mu.Unlock()

	indent := fmt.Sprintf("%*s", diffIndent, "")
	for _, line := range lines {
		switch line.Op {
		case text.DiffInsert:
			fmt.Fprintf(l.console, "%s%s\n", indent, color.New(color.FgGreen).Sprint("+ "+line.Text))
		case text.DiffDelete:
			fmt.Fprintf(l.console, "%s%s\n", indent, color.New(color.FgRed).Sprint("- "+line.Text))
		}
	}

	l.zlog.Debug().Str("file", path).Int("lines", len(lines)).Msg("diff printed")
}

// 📝 Banner prints the closing message and the manual review list
func (l *Logger) Banner(ctx context.Context, reminders []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "\n🎉 %s\n", color.New(color.Bold, color.FgGreen).Sprint("Migration complete!"))

	if len(reminders) > 0 {
		fmt.Fprintf(l.console, "\n⚠️  %s\n", color.New(color.FgYellow).Sprint("REVIEW MANUALLY:"))
		for _, r := range reminders {
			fmt.Fprintf(l.console, "  - %s\n", r)
		}
	}

	l.zlog.Info().Strs("reminders", reminders).Msg("migration complete")
}
