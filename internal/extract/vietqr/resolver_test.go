package vietqr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

func field(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len([]rune(value)), value)
}

// payload builds a three-level VietQR payload: 38 -> 01 -> {00 BIN, 01 account}.
func payload(bin, account, owner string) string {
	beneficiary := field("00", bin) + field("01", account)
	merchant := field("00", "A000000727") + field("01", beneficiary) + field("02", "QRIBFTTA")
	p := field("00", "01") + field("01", "12") + field("38", merchant) + field("53", "704") + field("58", "VN")
	if owner != "" {
		p += field("59", owner)
	}
	return p + field("63", "ABCD")
}

func TestResolve_ThreeLevel(t *testing.T) {
	r := NewResolver(nil)
	info, ok := r.Resolve(payload("970436", "0123456789", "nguyen van a"))
	require.True(t, ok)

	assert.Equal(t, "970436", info.BIN)
	assert.Equal(t, "Vietcombank", info.BankName)
	assert.Equal(t, "0123456789", info.AccountNumber)
	assert.Equal(t, "NGUYEN VAN A", info.OwnerName)
	assert.Equal(t, "Vietcombank (NGUYEN VAN A)\n0123456789", info.Format())
}

func TestResolve_EveryKnownBIN(t *testing.T) {
	r := NewResolver(nil)
	dir := DefaultDirectory()
	require.Equal(t, 33, dir.Len())

	for _, bin := range dir.BINs() {
		t.Run(bin, func(t *testing.T) {
			// Single level: 38 -> {00 BIN, 01 account}.
			merchant := field("00", bin) + field("01", "1903123456")
			text, ok := r.ResolveText(field("00", "01") + field("38", merchant))
			require.True(t, ok)

			name, _ := dir.Lookup(bin)
			assert.Contains(t, text, name)
			assert.Contains(t, text, "1903123456")
		})
	}
}

func TestResolve_UnknownBIN(t *testing.T) {
	r := NewResolver(nil)
	text, ok := r.ResolveText(payload("999999", "111222333", "TRAN B"))
	require.True(t, ok)
	assert.Equal(t, "Ngân hàng (999999) (TRAN B)\n111222333", text)
}

func TestResolve_NoBIN(t *testing.T) {
	r := NewResolver(nil)
	merchant := field("01", "55556666")
	info, ok := r.Resolve(field("00", "01") + field("38", merchant))
	require.True(t, ok)

	assert.Empty(t, info.BankName)
	assert.Equal(t, domain.OwnerPlaceholder, info.OwnerName)
	assert.Equal(t, "CHỦ TÀI KHOẢN\n55556666", info.Format())
}

func TestResolve_AmountAndMessage(t *testing.T) {
	r := NewResolver(nil)
	p := payload("970422", "0001112223", "LE C") + field("54", "150000") + field("62", field("08", "tra no"))
	info, ok := r.Resolve(p)
	require.True(t, ok)

	assert.Equal(t, "MBBank", info.BankName)
	assert.Equal(t, "150000", info.Amount)
	assert.Equal(t, "tra no", info.Message)
}

func TestResolve_Whitespace(t *testing.T) {
	r := NewResolver(nil)
	p := payload("970418", "9988776655", "PHAM D")

	withBreaks := p[:10] + "\n" + p[10:30] + "\r\n" + p[30:] + "  \n"
	info, ok := r.Resolve(withBreaks)
	require.True(t, ok)
	assert.Equal(t, "BIDV", info.BankName)
	assert.Equal(t, "PHAM D", info.OwnerName)

	spaced := p[:8] + " " + p[8:]
	info, ok = r.Resolve(spaced)
	require.True(t, ok)
	assert.Equal(t, "9988776655", info.AccountNumber)
}

func TestResolve_Failures(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not tlv", "hello world"},
		{"url", "https://shop.vn"},
		{"no merchant field", field("00", "01") + field("59", "A B")},
		{"no account", field("38", field("00", "970436"))},
		{"truncated", payload("970436", "0123456789", "A")[:20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := r.Resolve(tt.input)
			assert.False(t, ok)
		})
	}
}

func TestResolve_AccountStartingWithZeroZero(t *testing.T) {
	r := NewResolver(nil)
	merchant := field("00", "970436") + field("01", "0012345678")
	info, ok := r.Resolve(field("38", merchant))
	require.True(t, ok)
	assert.Equal(t, "0012345678", info.AccountNumber)
}

func TestIsNestedTLV(t *testing.T) {
	assert.True(t, IsNestedTLV("0006970436"))
	assert.True(t, IsNestedTLV("000601"))
	assert.False(t, IsNestedTLV("00060"))
	assert.False(t, IsNestedTLV("0123456789"))
	assert.False(t, IsNestedTLV(""))
}

func TestDirectory_Immutable(t *testing.T) {
	src := map[string]string{"123456": "Test Bank"}
	dir := NewDirectory(src)
	src["123456"] = "Changed"

	name, ok := dir.Lookup("123456")
	assert.True(t, ok)
	assert.Equal(t, "Test Bank", name)

	r := NewResolver(dir)
	assert.Same(t, dir, r.Directory())
}
