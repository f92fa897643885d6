package domain

import "fmt"

// OwnerPlaceholder is the owner name used when a VietQR payload carries none.
const OwnerPlaceholder = "CHỦ TÀI KHOẢN"

// BankInfo holds transfer details decoded from a VietQR payload.
type BankInfo struct {
	// BIN is the 6-digit bank identification number. May be empty.
	BIN string

	// BankName is the resolved bank name, or "Ngân hàng (BIN)" when unknown.
	BankName string

	// AccountNumber is the beneficiary account. Always present.
	AccountNumber string

	// OwnerName is the upper-cased beneficiary name or OwnerPlaceholder.
	OwnerName string

	// Amount is the transaction amount if the payload fixes one.
	Amount string

	// Message is the transfer description if the payload carries one.
	Message string
}

// HasOwner returns true if the owner name is known.
func (b BankInfo) HasOwner() bool {
	return b.OwnerName != "" && b.OwnerName != OwnerPlaceholder
}

// Format renders the canonical two-line form:
// "{bank} ({owner})\n{account}", or "{owner}\n{account}" when no bank is known.
func (b BankInfo) Format() string {
	owner := b.OwnerName
	if owner == "" {
		owner = OwnerPlaceholder
	}
	if b.BankName == "" {
		return fmt.Sprintf("%s\n%s", owner, b.AccountNumber)
	}
	return fmt.Sprintf("%s (%s)\n%s", b.BankName, owner, b.AccountNumber)
}
