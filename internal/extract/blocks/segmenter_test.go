package blocks

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

func field(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len([]rune(value)), value)
}

func contents(blocks []domain.TextBlock) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Content
	}
	return out
}

func assertUnique(t *testing.T, blocks []domain.TextBlock) {
	t.Helper()
	seen := make(map[string]bool)
	for _, b := range blocks {
		k := strings.ToLower(b.Content)
		assert.False(t, seen[k], "duplicate block %q", b.Content)
		seen[k] = true
	}
}

func TestSegment_URL(t *testing.T) {
	s := New(nil)
	blocks := s.Segment("https://shop.vn/abc... mua ngay", "https://shop.vn/abc", domain.CategoryURL, "")

	require.Len(t, blocks, 2)
	assert.Equal(t, domain.BlockURLLink, blocks[0].Kind)
	assert.Equal(t, "https://shop.vn/abc", blocks[0].Content)
	assert.Equal(t, "shop.vn", blocks[0].Meta(domain.MetaDomain))
	assert.Equal(t, domain.BlockText, blocks[1].Kind)
	assert.Equal(t, "... mua ngay", blocks[1].Content)
}

func TestSegment_Phone(t *testing.T) {
	s := New(nil)
	blocks := s.Segment("Gọi 0987654321 ngay", "0987654321", domain.CategoryPhone, "")

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockPhoneNumber, blocks[0].Kind)
	assert.Equal(t, "0987654321", blocks[0].Content)
	assert.Nil(t, blocks[0].Metadata)
}

func TestSegment_Bank(t *testing.T) {
	s := New(nil)
	merchant := field("00", "A000000727") + field("01", field("00", "970436")+field("01", "0123456789"))
	qr := field("00", "01") + field("38", merchant) + field("54", "250000") + field("59", "NGUYEN VAN A")
	extracted := "Vietcombank (NGUYEN VAN A)\n0123456789"

	blocks := s.Segment("QR chuyển khoản\nVIETQR\nNGUYEN VAN A", extracted, domain.CategoryBank, qr)

	require.Len(t, blocks, 3)
	assert.Equal(t, domain.BlockBankInfo, blocks[0].Kind)
	assert.Equal(t, extracted, blocks[0].Content)
	assert.Equal(t, "0123456789", blocks[0].Meta(domain.MetaAccountNumber))
	assert.Equal(t, "Vietcombank", blocks[0].Meta(domain.MetaBankName))
	assert.Equal(t, "250000", blocks[0].Meta(domain.MetaAmount))

	assert.Equal(t, domain.BlockQRCode, blocks[1].Kind)
	assert.Equal(t, "VIETQR", blocks[1].Meta(domain.MetaFormat))

	assert.Equal(t, domain.BlockText, blocks[2].Kind)
	assert.Equal(t, "QR chuyển khoản\nVIETQR", blocks[2].Content)
}

func TestSegment_BankFromText(t *testing.T) {
	s := New(nil)
	extracted := "Chuyển tiền tới STK: 190312345678 MBBank số tiền 1.500.000 VND"
	blocks := s.Segment(extracted, extracted, domain.CategoryBank, "")

	require.NotEmpty(t, blocks)
	assert.Equal(t, domain.BlockBankInfo, blocks[0].Kind)
	assert.Equal(t, "190312345678", blocks[0].Meta(domain.MetaAccountNumber))
	assert.Equal(t, "MBBank", blocks[0].Meta(domain.MetaBankName))
	assert.Equal(t, "1.500.000", blocks[0].Meta(domain.MetaAmount))
}

func TestSegment_GenericQR(t *testing.T) {
	s := New(nil)
	blocks := s.Segment("", "WIFI:S:home;T:WPA;P:secret;;", domain.CategoryOther, "WIFI:S:home;T:WPA;P:secret;;")

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockQRCode, blocks[0].Kind)
	assert.Equal(t, "QR", blocks[0].Meta(domain.MetaFormat))
}

func TestSegment_Address(t *testing.T) {
	s := New(nil)
	raw := "Giao đến 123 Nguyễn Huệ, Phường Bến Nghé, Quận 1"
	blocks := s.Segment(raw, "123 Nguyễn Huệ, Phường Bến Nghé, Quận", domain.CategoryMap, "")

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockMapLocation, blocks[0].Kind)
}

func TestSegment_MapFromAnnotation(t *testing.T) {
	s := New(nil)
	blocks := s.Segment("Gặp ở nhà văn hóa", "nhà văn hóa", domain.CategoryMap, "")

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockMapLocation, blocks[0].Kind)
	assert.Equal(t, "nhà văn hóa", blocks[0].Content)
}

func TestSegment_Dedup(t *testing.T) {
	s := New(nil)
	raw := "https://a.vn https://a.vn 0987654321 0987654321"

	for i := 0; i < 2; i++ {
		blocks := s.Segment(raw, "https://a.vn", domain.CategoryURL, "")
		assert.Equal(t, []string{"https://a.vn", "0987654321"}, contents(blocks))
		assertUnique(t, blocks)
	}
}

func TestSegment_FrontBlockMatchesExtracted(t *testing.T) {
	s := New(nil)

	tests := []struct {
		name      string
		raw       string
		extracted string
		category  domain.Category
		kind      domain.BlockKind
	}{
		{"event text promoted", "Họp lớp lúc 19h30 15/3 tại nhà hàng", "19h30 15/3", domain.CategoryEvent, domain.BlockText},
		{"phone promoted over url", "0987654321 https://a.vn", "0987654321", domain.CategoryPhone, domain.BlockPhoneNumber},
		{"missing phone synthesized", "xin chào bạn nhé mọi người", "0911111111", domain.CategoryPhone, domain.BlockPhoneNumber},
		{"missing url synthesized", "không có liên kết ở đây", "tiki.vn", domain.CategoryURL, domain.BlockURLLink},
		{"event synthesized as text", "", "THỨ 5 LÚC 14:00", domain.CategoryEvent, domain.BlockText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := s.Segment(tt.raw, tt.extracted, tt.category, "")
			require.NotEmpty(t, blocks)
			assert.Equal(t, tt.kind, blocks[0].Kind)
			assert.Contains(t, strings.ToLower(blocks[0].Content), strings.ToLower(tt.extracted))
			assertUnique(t, blocks)
		})
	}
}

func TestSegment_NoteNotDuplicated(t *testing.T) {
	s := New(nil)
	raw := "Mua sữa\nMua bánh mì cho cả nhà\nNhớ mua trứng"
	blocks := s.Segment(raw, "Mua sữa Mua bánh mì cho cả nhà Nhớ mua trứng", domain.CategoryNote, "")

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockText, blocks[0].Kind)
}

func TestSegment_Empty(t *testing.T) {
	s := New(nil)
	assert.Empty(t, s.Segment("", "", domain.CategoryOther, ""))

	blocks := s.Segment("", "abc", domain.CategoryOther, "")
	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockText, blocks[0].Kind)
	assert.Equal(t, "abc", blocks[0].Content)
}

func TestDomain(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://www.Shop.vn/abc", "shop.vn"},
		{"shop.vn/x", "shop.vn"},
		{"www.google.com", "google.com"},
		{"HTTP://Example.org:8080/p", "example.org"},
		{"http://[::1", "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Domain(tt.input))
		})
	}
}
