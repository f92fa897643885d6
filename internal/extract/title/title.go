// Package title derives short display titles for analysed screenshots.
package title

import (
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/extract/patterns"
)

var (
	unknownBankPattern = regexp.MustCompile(`Ngân hàng \(\d+\)`)
	ownerLabelPattern  = regexp.MustCompile(`(?i)CHỦ TÀI KHOẢN[\s:]+([A-ZÀÁẠẢÃÂẦẤẬẨẪĂẰẮẶẲẴÈÉẸẺẼÊỀẾỆỂỄÌÍỊỈĨÒÓỌỎÕÔỒỐỘỔỖƠỜỚỢỞỠÙÚỤỦŨƯỪỨỰỬỮỲÝỴỶỸĐ ]+)`)
	eventDatePattern   = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?`)
	eventTimePattern   = regexp.MustCompile(`(?i)\d{1,2}:\d{2}|\d{1,2}h\d{0,2}`)
	accountLine        = regexp.MustCompile(`^\d{6,}$`)
)

// abbreviations are bank short names that appear on receipts.
var abbreviations = []string{"VCB", "TCB", "CTG", "TPB", "MB Bank", "MB"}

const (
	urlFallbackLength     = 30
	addressLength         = 40
	noteLength            = 50
	defaultLength         = 30
	labelBankInfo         = "Thông tin ngân hàng"
	labelEvent            = "Sự kiện"
	labelNote             = "Ghi chú"
	labelScreenshotFormat = "02/01/2006"
)

// Generator builds titles. It is immutable and safe for concurrent use.
type Generator struct {
	now       func() time.Time
	bankNames []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock used for the dated fallback title.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithBankNames adds names recognised in Bank content.
func WithBankNames(names ...string) Option {
	return func(g *Generator) {
		g.bankNames = append(g.bankNames, names...)
	}
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		now:       time.Now,
		bankNames: append([]string(nil), abbreviations...),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Title returns the display title for content of the given category.
func (g *Generator) Title(content string, category domain.Category) string {
	content = strings.TrimSpace(content)

	switch category {
	case domain.CategoryBank:
		return g.bank(content)
	case domain.CategoryURL:
		return urlTitle(content)
	case domain.CategoryPhone:
		return "Số điện thoại " + content
	case domain.CategoryEvent:
		return eventTitle(content)
	case domain.CategoryMap:
		first, _, _ := strings.Cut(content, ",")
		return truncate(strings.TrimSpace(first), addressLength)
	case domain.CategoryNote:
		if line := firstLine(content); line != "" {
			return truncate(line, noteLength)
		}
		return labelNote
	default:
		if line := firstLine(content); line != "" {
			return truncate(line, defaultLength)
		}
		return "Screenshot " + g.now().Format(labelScreenshotFormat)
	}
}

func (g *Generator) bank(content string) string {
	best := ""
	for _, name := range g.bankNames {
		if len(name) > len(best) && patterns.ContainsWord(content, name) {
			best = name
		}
	}
	if best != "" {
		return "Ngân hàng " + best
	}
	if m := unknownBankPattern.FindString(content); m != "" {
		return m
	}
	if m := ownerLabelPattern.FindStringSubmatch(content); m != nil {
		if owner := strings.TrimSpace(m[1]); owner != "" {
			return "Tài khoản " + owner
		}
	}
	// "{owner}\n{account}" as produced for QR codes without a bank id.
	lines := strings.Split(content, "\n")
	if len(lines) == 2 && accountLine.MatchString(strings.TrimSpace(lines[1])) {
		owner := strings.TrimSpace(lines[0])
		if owner != "" && owner != domain.OwnerPlaceholder {
			return "Tài khoản " + owner
		}
	}
	return labelBankInfo
}

// urlTitle names a link by its registrable domain without the public
// suffix: "https://www.shop.vn/abc" becomes "Shop".
func urlTitle(content string) string {
	s := content
	if !strings.HasPrefix(strings.ToLower(s), "http") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	host := ""
	if err == nil {
		host = strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	}
	if host == "" {
		return truncate(content, urlFallbackLength)
	}

	if net.ParseIP(host) != nil {
		return host
	}
	name := host
	if site, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		suffix, _ := publicsuffix.PublicSuffix(site)
		name = strings.TrimSuffix(strings.TrimSuffix(site, suffix), ".")
	}
	if name == "" {
		name = host
	}
	return capitalise(name)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

func capitalise(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// eventTitle labels an event with its date, or its time when no date is
// written.
func eventTitle(content string) string {
	for _, re := range []*regexp.Regexp{eventDatePattern, eventTimePattern} {
		if m := re.FindString(content); m != "" {
			return labelEvent + " " + m
		}
	}
	return labelEvent
}
