package categorizer

import (
	"context"
	"fmt"
	"regexp"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/textutils"
)

// KeywordStrategy categorizes descriptions against the ordered rule table.
// Matching is case-insensitive; the table order is the priority order, so a
// description matching several categories gets the first one declared. That
// ordering is deliberate and documented in the default table, not incidental.
type KeywordStrategy struct {
	rules  []compiledRule
	logger logging.Logger
}

type compiledRule struct {
	category string
	patterns []*regexp.Regexp
}

// NewKeywordStrategy compiles the rule table. Patterns are regular
// expressions matched case-insensitively against the cleaned description; a
// pattern that does not compile fails construction, since a half-loaded table
// would silently shift match priorities.
func NewKeywordStrategy(rules []models.CategoryRule, logger logging.Logger) (*KeywordStrategy, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		cr := compiledRule{category: rule.Name}
		for _, pattern := range rule.Patterns {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q in category %s: %w", pattern, rule.Name, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		compiled = append(compiled, cr)
	}

	return &KeywordStrategy{rules: compiled, logger: logger}, nil
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Classify tests the description against each category's patterns in table
// order. The first category with a matching pattern wins.
func (s *KeywordStrategy) Classify(ctx context.Context, description string) (string, bool, error) {
	cleaned := textutils.CleanDescription(description)
	if cleaned == "" {
		return "", false, nil
	}

	for _, rule := range s.rules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(cleaned) {
				s.logger.WithFields(
					logging.Field{Key: "strategy", Value: s.Name()},
					logging.Field{Key: "pattern", Value: pattern.String()},
					logging.Field{Key: logging.FieldCategory, Value: rule.category},
				).Debug("Description matched a keyword rule")
				return rule.category, true, nil
			}
		}
	}

	return "", false, nil
}

// Categories returns the category names in table order.
func (s *KeywordStrategy) Categories() []string {
	names := make([]string, len(s.rules))
	for i, rule := range s.rules {
		names[i] = rule.category
	}
	return names
}
