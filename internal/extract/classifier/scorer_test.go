package classifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

func TestScorer_Score(t *testing.T) {
	s := NewScorer(nil)

	tests := []struct {
		name     string
		text     string
		category domain.Category
		expected float64
	}{
		{"empty", "", domain.CategoryBank, 0},
		{"single keyword", "Ngân hàng", domain.CategoryBank, 10.0 / 22.0},
		{"two keywords get bonus", "stk và số dư", domain.CategoryBank, (9.0+6.0)/22.0 + 0.2},
		{"case insensitive", "HOTLINE", domain.CategoryPhone, 9.0 / 10.0},
		{"other has no table", "anything", domain.CategoryOther, 0},
		{"capped", "http https www .com .vn ://", domain.CategoryURL, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, s.Score(tt.text, tt.category), 1e-9)
		})
	}
}

func TestScorer_BoundedAndMonotonic(t *testing.T) {
	s := NewScorer(nil)

	for category, kws := range DefaultKeywords() {
		t.Run(string(category), func(t *testing.T) {
			text := ""
			prev := 0.0
			for kw := range kws {
				text += " " + kw
				score := s.Score(text, category)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 1.0)
				assert.GreaterOrEqual(t, score, prev, "adding %q lowered the score", kw)
				prev = score
			}
		})
	}
}

func TestScorer_OrderIndependent(t *testing.T) {
	s := NewScorer(nil)
	a := s.Score("lịch họp: cuộc họp deadline", domain.CategoryEvent)
	b := s.Score("deadline cuộc họp lịch họp:", domain.CategoryEvent)
	assert.Equal(t, a, b)
}

func TestScorer_Best(t *testing.T) {
	s := NewScorer(nil)

	c, score := s.Best("")
	assert.Equal(t, domain.CategoryOther, c)
	assert.Zero(t, score)

	c, _ = s.Best("Địa chỉ: phường 5, quận 3")
	assert.Equal(t, domain.CategoryMap, c)
}

func TestScorer_BestTieBreak(t *testing.T) {
	s := NewScorer(domain.KeywordWeights{
		domain.CategoryNote:  {"x": 1},
		domain.CategoryURL:   {"x": 1},
		domain.CategoryEvent: {"x": 1},
	})

	c, score := s.Best("x")
	assert.Equal(t, domain.CategoryURL, c)
	assert.Equal(t, 1.0, score)
}

func TestNewScorer_NormalisesWeights(t *testing.T) {
	s := NewScorer(domain.KeywordWeights{
		domain.CategoryNote: {"MEMO": 2, "bad": -5},
	})
	assert.InDelta(t, 1.0, s.Score("memo", domain.CategoryNote), 1e-9)
	assert.Zero(t, s.Score("bad", domain.CategoryNote))
}

func TestMergeKeywords(t *testing.T) {
	base := DefaultKeywords()
	merged, err := MergeKeywords(base, domain.KeywordWeights{
		domain.CategoryPhone: {" Zalo ": 9},
		domain.CategoryBank:  {"bank": 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 9.0, merged[domain.CategoryPhone]["zalo"])
	assert.Equal(t, 1.0, merged[domain.CategoryBank]["bank"])
	assert.Equal(t, 10.0, base[domain.CategoryBank]["bank"], "base is not modified")
}

func TestMergeKeywords_Invalid(t *testing.T) {
	_, err := MergeKeywords(DefaultKeywords(), domain.KeywordWeights{domain.CategoryNote: {"x": -1}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = MergeKeywords(DefaultKeywords(), domain.KeywordWeights{domain.CategoryOther: {"x": 1}})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))

	_, err = MergeKeywords(DefaultKeywords(), domain.KeywordWeights{"email": {"x": 1}})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
}
