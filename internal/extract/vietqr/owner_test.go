package vietqr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

func TestFindOwnerName(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{"simple", "Quét mã\nNGUYEN VAN A\n0123456789", "NGUYEN VAN A", true},
		{"vietnamese diacritics", "TRẦN THỊ BÍCH", "TRẦN THỊ BÍCH", true},
		{"skips boilerplate", "VIETQR\nNAPAS 247\nQUET MA QR\nLE VAN C", "LE VAN C", true},
		{"skips digits", "STK 0123456", "", false},
		{"skips mixed case", "Nguyen Van A", "", false},
		{"skips short", "ABCD", "", false},
		{"skips bank", "MB BANK", "", false},
		{"keeps names containing token letters", "MAI ANH TUAN", "MAI ANH TUAN", true},
		{"keeps names ending in a token", "PHAM THI MAI", "PHAM THI MAI", true},
		{"skips symbols only", "-----", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindOwnerName(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBackfill(t *testing.T) {
	info := domain.BankInfo{BankName: "ACB", AccountNumber: "1", OwnerName: domain.OwnerPlaceholder}

	filled := Backfill(info, "Chuyển khoản\nHOANG VAN E")
	assert.Equal(t, "HOANG VAN E", filled.OwnerName)

	unchanged := Backfill(info, "không có tên")
	assert.Equal(t, domain.OwnerPlaceholder, unchanged.OwnerName)

	named := domain.BankInfo{OwnerName: "KNOWN"}
	assert.Equal(t, "KNOWN", Backfill(named, "OTHER NAME").OwnerName)
}
