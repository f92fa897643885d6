// Package classifier assigns a single category to recognised screenshot text.
//
// Classification is a cascade: an ordered list of rules, each of which may
// claim the input, followed by a terminal keyword-scoring rule that always
// produces a result.
package classifier

import (
	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/logger"
)

// Classifier runs rules in order until one matches.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules    []Rule
	terminal *KeywordRule
}

// New creates a classifier. A nil terminal rule uses the default scorer,
// a minimum score of 0.1 and a note length of 50.
func New(terminal *KeywordRule, rules ...Rule) *Classifier {
	if terminal == nil {
		terminal = NewKeywordRule(nil, 0.1, 50)
	}
	return &Classifier{rules: rules, terminal: terminal}
}

// Classify returns the category and extracted content for a capture.
// It never fails: the terminal rule always produces a result.
func (c *Classifier) Classify(text, qrPayload string, annotations []domain.Annotation) domain.AnalysisResult {
	return c.ClassifyInput(NewInput(text, qrPayload, annotations))
}

// ClassifyInput classifies a prepared input.
func (c *Classifier) ClassifyInput(in *Input) domain.AnalysisResult {
	for _, rule := range c.rules {
		if result, ok := try(rule, in); ok {
			logger.Debug("classifier: rule %s matched as %s", rule.Name(), result.Category)
			return result
		}
	}
	result, _ := c.terminal.Classify(in)
	logger.Debug("classifier: keyword fallback chose %s", result.Category)
	return result
}

// RuleNames returns the configured cascade order, terminal rule last.
func (c *Classifier) RuleNames() []string {
	names := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		names = append(names, r.Name())
	}
	return append(names, c.terminal.Name())
}

// try runs one rule, treating a panic as no match.
func try(rule Rule, in *Input) (result domain.AnalysisResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("classifier: rule %s panicked: %v", rule.Name(), r)
			result, ok = domain.AnalysisResult{}, false
		}
	}()
	return rule.Classify(in)
}
