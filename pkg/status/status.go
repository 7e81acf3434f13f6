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

package status

import (
	"sync"
)

// 📊 Outcome classifies what happened to a single file
type Outcome int

const (
	OutcomeUnknown  Outcome = iota
	OutcomeSuccess          // File was rewritten (or would be, in a dry run)
	OutcomeSkipped          // No rule changed the content
	OutcomeNotFound         // File does not exist
	OutcomeFailed           // Any other read, decode or write error
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileResult is the result of processing one file
type FileResult struct {
	Path         string   // Path as listed in the plan
	Outcome      Outcome  // What happened
	Replacements int      // Number of matches replaced
	AppliedRules []string // Rules that matched at least once
	DryRun       bool     // Whether the write was skipped on purpose
	Err          error    // Set for OutcomeFailed and OutcomeNotFound

	Original []byte // Content as read, nil if the read failed
	Modified []byte // Content after replacements
}

// 📈 Summary counts outcomes across a run
type Summary struct {
	Total    int
	Success  int
	Skipped  int
	NotFound int
	Failed   int
}

// Tracker accumulates file results in the order they were produced
type Tracker struct {
	mu      sync.Mutex
	results []FileResult
	summary Summary
}

// 🏭 NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// Track records a result
func (t *Tracker) Track(result FileResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.results = append(t.results, result)
	t.summary.Total++
	switch result.Outcome {
	case OutcomeSuccess:
		t.summary.Success++
	case OutcomeSkipped:
		t.summary.Skipped++
	case OutcomeNotFound:
		t.summary.NotFound++
	case OutcomeFailed:
		t.summary.Failed++
	}
}

// Summary returns the counts so far
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}

// Results returns a copy of the tracked results
func (t *Tracker) Results() []FileResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]FileResult(nil), t.results...)
}
