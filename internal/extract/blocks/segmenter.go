// Package blocks splits recognised text into typed, actionable blocks.
package blocks

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/extract/patterns"
	"github.com/custodia-labs/shotbrain/internal/extract/vietqr"
)

var (
	accountPattern = regexp.MustCompile(`(?i)STK[\s:]+(\d+)`)
	amountPattern  = regexp.MustCompile(`(?i)(\d{1,3}(?:[.,]\d{3})*)\s*(?:VND|đ|dong)`)
	digitsOnly     = regexp.MustCompile(`^\d{6,}$`)
	whitespace     = regexp.MustCompile(`\s+`)
	fragmentSplit  = regexp.MustCompile(`[\n|]`)
)

// commonBankNames are short names seen in transfer screenshots in addition
// to the directory's display names.
var commonBankNames = []string{
	"Vietcombank", "BIDV", "Agribank", "Techcombank", "Vietinbank",
	"ACB", "TPBank", "MB", "MBBank", "MB Bank", "VPBank",
}

const (
	minRemainingLength = 10
	maxDomainFallback  = 30
	qrFormatVietQR     = "VIETQR"
	qrFormatGeneric    = "QR"
)

// Segmenter builds block lists. It is immutable and safe for concurrent use.
type Segmenter struct {
	resolver  *vietqr.Resolver
	bankNames []string
}

// New creates a segmenter. The resolver identifies VietQR payloads and
// contributes bank names; nil uses the built-in directory.
func New(resolver *vietqr.Resolver) *Segmenter {
	if resolver == nil {
		resolver = vietqr.NewResolver(nil)
	}
	return &Segmenter{resolver: resolver, bankNames: bankNames(resolver.Directory())}
}

// Segment decomposes raw text into ordered blocks. The block matching the
// extracted content is always first and no two blocks share content.
func (s *Segmenter) Segment(raw, extracted string, category domain.Category, qrPayload string) []domain.TextBlock {
	extracted = strings.TrimSpace(extracted)
	list := &blockList{}

	var bank domain.BankInfo
	hasBank := false
	if qr := strings.TrimSpace(qrPayload); qr != "" {
		format := qrFormatGeneric
		if bank, hasBank = s.resolver.Resolve(qr); hasBank {
			format = qrFormatVietQR
		}
		list.add(domain.BlockQRCode, qr, map[string]string{domain.MetaFormat: format})
	}

	if category == domain.CategoryBank && extracted != "" {
		list.add(domain.BlockBankInfo, extracted, s.bankMetadata(extracted, bank, hasBank))
	}

	for _, u := range patterns.FindURLs(raw) {
		list.add(domain.BlockURLLink, u, map[string]string{domain.MetaDomain: Domain(u)})
	}

	for _, p := range patterns.FindPhones(raw) {
		list.add(domain.BlockPhoneNumber, p, nil)
	}

	for _, a := range patterns.FindAddresses(raw) {
		list.add(domain.BlockMapLocation, a, nil)
	}
	if category == domain.CategoryMap && extracted != "" && !list.coversAddress(extracted) {
		list.add(domain.BlockMapLocation, extracted, nil)
	}

	if rest := remaining(raw, list.contents()); utf8.RuneCountInString(rest) > minRemainingLength {
		list.add(domain.BlockText, rest, nil)
	}

	if len(list.blocks) == 0 && extracted != "" {
		list.add(domain.BlockText, extracted, nil)
	}

	if extracted != "" {
		list.promote(extracted, domain.BlockKindFor(category))
	}
	return list.blocks
}

func (s *Segmenter) bankMetadata(content string, info domain.BankInfo, hasInfo bool) map[string]string {
	meta := make(map[string]string)

	if m := accountPattern.FindStringSubmatch(content); m != nil {
		meta[domain.MetaAccountNumber] = m[1]
	} else if hasInfo {
		meta[domain.MetaAccountNumber] = info.AccountNumber
	} else {
		lines := strings.Split(content, "\n")
		if last := strings.TrimSpace(lines[len(lines)-1]); digitsOnly.MatchString(last) {
			meta[domain.MetaAccountNumber] = last
		}
	}

	if name := longestBankName(content, s.bankNames); name != "" {
		meta[domain.MetaBankName] = name
	} else if hasInfo && info.BankName != "" {
		meta[domain.MetaBankName] = info.BankName
	}

	if m := amountPattern.FindStringSubmatch(content); m != nil {
		meta[domain.MetaAmount] = m[1]
	} else if hasInfo && info.Amount != "" {
		meta[domain.MetaAmount] = info.Amount
	}
	return meta
}

// Domain returns a URL's host without "www.", or its first 30 characters
// when it has no parseable host.
func Domain(raw string) string {
	s := raw
	if !strings.HasPrefix(strings.ToLower(s), "http") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return truncate(raw, maxDomainFallback)
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// remaining returns the fragments of raw not already represented by a
// block, with block contents cut out of each fragment.
func remaining(raw string, used []string) string {
	usedKey := key(strings.Join(used, "\n"))

	var kept []string
	for _, frag := range fragmentSplit.Split(raw, -1) {
		for _, u := range used {
			if u != "" {
				frag = strings.ReplaceAll(frag, u, " ")
			}
		}
		frag = strings.TrimSpace(whitespace.ReplaceAllString(frag, " "))
		if frag == "" || strings.Contains(usedKey, key(frag)) {
			continue
		}
		kept = append(kept, frag)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// blockList accumulates blocks, suppressing near-duplicate content.
type blockList struct {
	blocks []domain.TextBlock
	seen   map[string]bool
}

func (l *blockList) add(kind domain.BlockKind, content string, meta map[string]string) {
	content = strings.TrimSpace(content)
	k := key(content)
	if k == "" || l.seen[k] {
		return
	}
	if l.seen == nil {
		l.seen = make(map[string]bool)
	}
	l.seen[k] = true
	if len(meta) == 0 {
		meta = nil
	}
	l.blocks = append(l.blocks, domain.TextBlock{Kind: kind, Content: content, Metadata: meta})
}

func (l *blockList) contents() []string {
	out := make([]string, len(l.blocks))
	for i, b := range l.blocks {
		out[i] = b.Content
	}
	return out
}

func (l *blockList) coversAddress(address string) bool {
	k := key(address)
	for _, b := range l.blocks {
		if b.Kind == domain.BlockMapLocation && strings.Contains(key(b.Content), k) {
			return true
		}
	}
	return false
}

// promote moves the first block overlapping extracted to the front, or
// prepends a new block of kind when none overlaps.
func (l *blockList) promote(extracted string, kind domain.BlockKind) {
	k := key(extracted)
	for i, b := range l.blocks {
		bk := key(b.Content)
		if strings.Contains(bk, k) || strings.Contains(k, bk) {
			if i > 0 {
				copy(l.blocks[1:i+1], l.blocks[:i])
				l.blocks[0] = b
			}
			return
		}
	}
	l.blocks = append([]domain.TextBlock{{Kind: kind, Content: extracted}}, l.blocks...)
}

// key normalises content for duplicate and overlap checks.
func key(s string) string {
	return strings.ToLower(strings.TrimSpace(whitespace.ReplaceAllString(s, " ")))
}

func longestBankName(content string, names []string) string {
	best := ""
	for _, name := range names {
		if len(name) > len(best) && patterns.ContainsWord(content, name) {
			best = name
		}
	}
	return best
}

func bankNames(dir *vietqr.Directory) []string {
	set := make(map[string]bool)
	for _, n := range commonBankNames {
		set[n] = true
	}
	for _, bin := range dir.BINs() {
		if n, ok := dir.Lookup(bin); ok {
			set[n] = true
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
