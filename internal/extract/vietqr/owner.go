package vietqr

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/extract/patterns"
)

// boilerplate tokens printed around QR codes that are never a person's name.
var boilerplate = []string{"VIETQR", "NAPAS", "BANK", "CHUYEN", "TIEN", "QR", "SCAN", "QUET", "MA"}

const minOwnerLength = 4

// FindOwnerName scans OCR text for a line that looks like an account
// holder's name: all upper case, no digits, longer than four characters
// and free of QR boilerplate. The first such line wins.
func FindOwnerName(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if isOwnerCandidate(line) {
			return line, true
		}
	}
	return "", false
}

// Backfill replaces a placeholder owner with a name found in OCR text.
func Backfill(info domain.BankInfo, text string) domain.BankInfo {
	if info.HasOwner() {
		return info
	}
	if name, ok := FindOwnerName(text); ok {
		info.OwnerName = name
	}
	return info
}

func isOwnerCandidate(line string) bool {
	if utf8.RuneCountInString(line) <= minOwnerLength {
		return false
	}
	if line != strings.ToUpper(line) {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsDigit(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	if !hasLetter {
		return false
	}
	for _, token := range boilerplate {
		if patterns.ContainsWord(line, token) {
			return false
		}
	}
	return true
}
