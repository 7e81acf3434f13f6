package text

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RegexpTextReplacer implements TextReplacer with RE2 regular expressions.
// Compiled patterns are cached for the lifetime of the replacer.
type RegexpTextReplacer struct {
	mu       sync.Mutex
	compiled map[string]*regexp.Regexp
}

// NewRegexpTextReplacer creates a new RegexpTextReplacer
func NewRegexpTextReplacer() *RegexpTextReplacer {
	return &RegexpTextReplacer{
		compiled: make(map[string]*regexp.Regexp),
	}
}

func (r *RegexpTextReplacer) compile(pattern string) (*regexp.Regexp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if re, ok := r.compiled[pattern]; ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	r.compiled[pattern] = re
	return re, nil
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *RegexpTextReplacer) ReplaceText(ctx context.Context, path string, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	original := string(originalContent)
	current := original
	for i, rule := range rules {
		if rule.Pattern == "" {
			continue
		}

		if !matchesFile(rule, path) {
			zerolog.Ctx(ctx).Trace().Str("rule", rule.Name).Str("file", path).Msg("rule filtered out by glob")
			continue
		}

		re, err := r.compile(rule.Pattern)
		if err != nil {
			return nil, errors.Errorf("rule %d (%s): compiling pattern: %w", i, rule.Name, err)
		}

		matches := re.FindAllStringIndex(current, -1)
		if len(matches) == 0 {
			continue
		}

		current = re.ReplaceAllString(current, rule.Replacement)
		result.ReplacementCount += len(matches)
		result.AppliedRules = append(result.AppliedRules, rule.Name)

		zerolog.Ctx(ctx).Debug().
			Str("rule", rule.Name).
			Str("file", path).
			Int("matches", len(matches)).
			Msg("rule applied")
	}

	result.WasModified = current != original
	result.ModifiedContent = []byte(current)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *RegexpTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.Pattern == "" {
			return errors.Errorf("rule %d: pattern is required", i)
		}
		if _, err := r.compile(rule.Pattern); err != nil {
			return errors.Errorf("rule %d: invalid pattern: %w", i, err)
		}
		if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d: invalid file_filter_glob %q", i, rule.FileFilterGlob)
		}
	}
	return nil
}

func matchesFile(rule ReplacementRule, path string) bool {
	if rule.FileFilterGlob == "" {
		return true
	}
	matched, err := doublestar.Match(rule.FileFilterGlob, filepath.ToSlash(path))
	if err != nil {
		return false
	}
	return matched
}
