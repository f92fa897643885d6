package classifier

import (
	"strings"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

const (
	maxScore        = 1.0
	multiMatchBonus = 0.1
)

// Scorer rates text against per-category keyword weights.
// It is immutable after construction and safe for concurrent use.
type Scorer struct {
	weights domain.KeywordWeights
}

// NewScorer creates a scorer over a private, lower-cased copy of weights.
// A nil table uses DefaultKeywords. Negative weights count as zero.
func NewScorer(weights domain.KeywordWeights) *Scorer {
	if weights == nil {
		weights = DefaultKeywords()
	}
	own := make(domain.KeywordWeights, len(weights))
	for c, kws := range weights {
		m := make(map[string]float64, len(kws))
		for kw, w := range kws {
			m[strings.ToLower(kw)] = max(w, 0)
		}
		own[c] = m
	}
	return &Scorer{weights: own}
}

// Score returns the normalised keyword score of text for category c,
// in [0, 1]. Each keyword present as a case-insensitive substring adds its
// weight; the sum is divided by the table size. Matching more than one
// keyword adds 0.1 per match.
func (s *Scorer) Score(text string, c domain.Category) float64 {
	kws := s.weights[c]
	if len(kws) == 0 {
		return 0
	}

	lower := strings.ToLower(text)
	total := 0.0
	matches := 0
	for kw, w := range kws {
		if w > 0 && strings.Contains(lower, kw) {
			total += w
			matches++
		}
	}

	score := total / float64(len(kws))
	if matches > 1 {
		score += multiMatchBonus * float64(matches)
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// Best returns the highest-scoring category. Ties go to the category that
// comes first in domain.ScoredCategories.
func (s *Scorer) Best(text string) (domain.Category, float64) {
	best := domain.CategoryOther
	bestScore := 0.0
	for _, c := range domain.ScoredCategories() {
		if score := s.Score(text, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore
}
