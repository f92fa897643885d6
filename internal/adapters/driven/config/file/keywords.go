package file

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

// LoadKeywords reads extra classifier keyword weights from a TOML file.
// Each table names a category and maps keywords to weights:
//
//	[bank]
//	"ví" = 6.0
//	momo = 8
//
// Table names accept the same spellings as domain.ParseCategory.
func LoadKeywords(path string) (domain.KeywordWeights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keywords file: %w", err)
	}

	var raw map[string]map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing keywords file %s: %w", path, err)
	}

	weights := make(domain.KeywordWeights, len(raw))
	for name, table := range raw {
		category, err := domain.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("keywords file %s: %w", path, err)
		}
		kws := make(map[string]float64, len(table))
		for kw, v := range table {
			w, ok := toWeight(v)
			if !ok {
				return nil, fmt.Errorf("keywords file %s: [%s] %q is not a number: %w",
					path, name, kw, domain.ErrInvalidInput)
			}
			kws[strings.ToLower(kw)] = w
		}
		weights[category] = kws
	}
	return weights, nil
}

func toWeight(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
