// Package vietqr resolves bank transfer details from VietQR payloads.
package vietqr

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/extract/tlv"
	"github.com/custodia-labs/shotbrain/internal/logger"
)

// EMV tags read by the resolver.
const (
	tagMerchantAccount = "38"
	tagAmount          = "54"
	tagOwnerName       = "59"
	tagAdditionalData  = "62"
	tagPurpose         = "08"
	tagBIN             = "00"
	tagAccount         = "01"
)

// maxNestingDepth bounds the descent into the merchant account field.
const maxNestingDepth = 3

// Resolver decodes VietQR payloads against a bank directory.
type Resolver struct {
	directory *Directory
}

// NewResolver creates a resolver. A nil directory uses the built-in table.
func NewResolver(directory *Directory) *Resolver {
	if directory == nil {
		directory = DefaultDirectory()
	}
	return &Resolver{directory: directory}
}

// Directory returns the bank table the resolver consults.
func (r *Resolver) Directory() *Directory {
	return r.directory
}

// Resolve extracts bank details from a QR payload.
// It returns false when the payload has no merchant account field or the
// account number cannot be found.
//
// Line breaks are always removed. Interior spaces are significant to TLV
// lengths, so the payload is first decoded with them kept and only retried
// with all whitespace stripped when that fails.
func (r *Resolver) Resolve(payload string) (domain.BankInfo, bool) {
	if info, ok := r.resolve(stripLineBreaks(payload)); ok {
		return info, true
	}
	return r.resolve(stripSpace(payload))
}

func (r *Resolver) resolve(payload string) (domain.BankInfo, bool) {
	root := tlv.Decode(payload)
	logger.Debug("vietqr: decoded %d root tags", len(root))

	merchant, ok := root[tagMerchantAccount]
	if !ok {
		return domain.BankInfo{}, false
	}

	account := descend(tlv.Decode(merchant), 1)
	number, ok := account[tagAccount]
	if !ok || number == "" {
		return domain.BankInfo{}, false
	}

	info := domain.BankInfo{
		AccountNumber: number,
		OwnerName:     domain.OwnerPlaceholder,
		Amount:        root[tagAmount],
	}
	if owner := strings.TrimSpace(root[tagOwnerName]); owner != "" {
		info.OwnerName = strings.ToUpper(owner)
	}
	if extra, ok := root[tagAdditionalData]; ok {
		info.Message = tlv.Decode(extra)[tagPurpose]
	}
	if bin := account[tagBIN]; bin != "" {
		info.BIN = bin
		info.BankName = r.bankName(bin)
	}
	return info, true
}

// ResolveText returns the formatted bank line for a payload.
func (r *Resolver) ResolveText(payload string) (string, bool) {
	info, ok := r.Resolve(payload)
	if !ok {
		return "", false
	}
	return info.Format(), true
}

func (r *Resolver) bankName(bin string) string {
	if name, ok := r.directory.Lookup(bin); ok {
		return name
	}
	return fmt.Sprintf("Ngân hàng (%s)", bin)
}

// descend follows tag 01 while its value is itself a TLV block that
// carries an account field.
func descend(fields tlv.Fields, depth int) tlv.Fields {
	next, ok := fields[tagAccount]
	if !ok || depth >= maxNestingDepth || !IsNestedTLV(next) {
		return fields
	}
	nested := tlv.Decode(next)
	if _, ok := nested[tagAccount]; !ok {
		return fields
	}
	return descend(nested, depth+1)
}

// IsNestedTLV reports whether v looks like a TLV block starting with tag 00
// rather than a bare account number.
func IsNestedTLV(v string) bool {
	return strings.HasPrefix(v, tagBIN) && len(v) >= 6
}

func stripLineBreaks(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer("\r", "", "\n", "", "\t", "").Replace(s)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
