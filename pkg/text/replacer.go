package text

import (
	"context"
	"io"
)

// 📝 TextReplacer applies literal replacement rules to content
type TextReplacer interface {
	// ReplaceText applies all rules to the content and reports what changed
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that the rules are well formed before use
	ValidateRules(rules []ReplacementRule) error
}

// 🔧 ReplacementRule describes one literal substitution
type ReplacementRule struct {
	FromText string // Literal text to find
	ToText   string // Text to insert in its place
}

// 📊 ReplacementResult reports the outcome of applying rules
type ReplacementResult struct {
	OriginalContent  []byte // Content before any rules ran
	ModifiedContent  []byte // Content after all rules ran
	WasModified      bool   // Whether any rule matched
	ReplacementCount int    // Total occurrences replaced across all rules
}
