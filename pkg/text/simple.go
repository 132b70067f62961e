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

package text

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔄 SimpleReplacer performs plain string substitution with no pattern matching
type SimpleReplacer struct{}

// 🏭 NewSimpleReplacer creates a replacer for literal text rules
func NewSimpleReplacer() *SimpleReplacer {
	return &SimpleReplacer{}
}

// ReplaceText applies each rule in order with simple string replacement
func (r *SimpleReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	if err := r.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	modified := string(original)
	count := 0
	for _, rule := range rules {
		occurrences := strings.Count(modified, rule.FromText)
		if occurrences == 0 {
			continue
		}
		modified = strings.ReplaceAll(modified, rule.FromText, rule.ToText)
		count += occurrences
	}

	result := &ReplacementResult{
		OriginalContent:  original,
		ModifiedContent:  []byte(modified),
		WasModified:      count > 0,
		ReplacementCount: count,
	}

	zerolog.Ctx(ctx).Debug().
		Int("rules", len(rules)).
		Int("replacements", count).
		Bool("modified", result.WasModified).
		Msg("applied text replacement")

	return result, nil
}

// ValidateRules rejects rules that could never match or would loop
func (r *SimpleReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: FromText is required", i)
		}
		if rule.FromText == rule.ToText {
			return errors.Errorf("rule %d: FromText and ToText are identical", i)
		}
	}

	return nil
}
