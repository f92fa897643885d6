package classifier

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

// DefaultKeywords returns a fresh copy of the built-in keyword weights.
func DefaultKeywords() domain.KeywordWeights {
	return domain.KeywordWeights{
		domain.CategoryBank: {
			"ngân hàng":     10,
			"bank":          10,
			"tài khoản":     8,
			"account":       8,
			"stk":           9,
			"số tài khoản":  9,
			"chủ tài khoản": 8,
			"vietqr":        10,
			"napas":         9,
			"chuyển tiền":   7,
			"transfer":      7,
			"số dư":         6,
			"balance":       6,
			"vietcombank":   10,
			"bidv":          10,
			"agribank":      10,
			"techcombank":   10,
			"vietinbank":    10,
			"acb":           10,
			"tpb":           10,
			"mbbank":        10,
			"vpbank":        10,
		},
		domain.CategoryURL: {
			"http":      10,
			"https":     10,
			"www":       8,
			".com":      8,
			".vn":       8,
			".net":      7,
			".org":      7,
			"://":       10,
			"facebook":  5,
			"youtube":   5,
			"instagram": 5,
			"twitter":   5,
		},
		domain.CategoryPhone: {
			"điện thoại":    8,
			"phone":         8,
			"số điện thoại": 9,
			"mobile":        7,
			"call":          7,
			"gọi":           8,
			"liên hệ":       7,
			"contact":       7,
			"hotline":       9,
			"tel":           8,
		},
		domain.CategoryEvent: {
			"ngày":        7,
			"date":        7,
			"thời gian":   8,
			"time":        7,
			"lịch":        9,
			"calendar":    9,
			"event":       9,
			"sự kiện":     9,
			"hẹn":         8,
			"appointment": 8,
			"meeting":     8,
			"cuộc họp":    8,
			"deadline":    7,
			"hạn chót":    7,
			"ngày giờ":    8,
			"datetime":    8,
		},
		domain.CategoryMap: {
			"địa chỉ":     9,
			"address":     9,
			"đường":       7,
			"street":      7,
			"phường":      8,
			"quận":        8,
			"huyện":       8,
			"tỉnh":        8,
			"thành phố":   8,
			"city":        8,
			"province":    7,
			"district":    7,
			"ward":        7,
			"số nhà":      8,
			"location":    9,
			"vị trí":      9,
			"map":         9,
			"bản đồ":      9,
			"google map":  10,
			"maps":        9,
			"gps":         8,
			"coordinates": 7,
			"tọa độ":      7,
		},
		domain.CategoryNote: {
			"ghi chú":   9,
			"note":      9,
			"memo":      8,
			"nhớ":       7,
			"lưu ý":     8,
			"reminder":  8,
			"todo":      8,
			"cần làm":   7,
			"checklist": 8,
			"danh sách": 7,
			"list":      7,
			"idea":      6,
			"ý tưởng":   6,
		},
	}
}

// MergeKeywords overlays extra on base and returns the result as a new
// table. Keywords are lower-cased. Only scored categories are accepted and
// weights must be non-negative.
func MergeKeywords(base, extra domain.KeywordWeights) (domain.KeywordWeights, error) {
	out := base.Clone()
	for c, kws := range extra {
		if !c.IsValid() || c == domain.CategoryOther {
			return nil, fmt.Errorf("keywords for %q: %w", c, domain.ErrUnsupportedType)
		}
		if out[c] == nil {
			out[c] = make(map[string]float64, len(kws))
		}
		for kw, w := range kws {
			if w < 0 {
				return nil, fmt.Errorf("keyword %q weight %v: %w", kw, w, domain.ErrInvalidInput)
			}
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			out[c][kw] = w
		}
	}
	return out, nil
}
