package text

import (
	"context"
	"io"
)

// ReplacementRule defines a single regular expression replacement
type ReplacementRule struct {
	// Name identifies the rule in logs and listings
	Name string

	// Pattern is an RE2 regular expression, matched against the whole content
	Pattern string

	// Replacement is the template written in place of each match.
	// Capture groups are referenced as ${1}, ${2}, ...
	Replacement string

	// FileFilterGlob restricts the rule to paths matching this doublestar
	// pattern. Empty applies the rule to every file.
	FileFilterGlob string
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if the content differs from the original
	WasModified bool

	// ReplacementCount is the number of matches replaced across all rules
	ReplacementCount int

	// AppliedRules lists the names of the rules that matched at least once
	AppliedRules []string

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies the rules, in order, to the content of the file at path.
	// Each rule sees the output of the previous one.
	ReplaceText(ctx context.Context, path string, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
