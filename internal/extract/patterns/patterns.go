// Package patterns holds the regular expressions shared by the classifier
// and the block segmenter, with helpers that apply the same post-match
// filtering in both places.
package patterns

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// URL matches explicit http(s) links, www. hosts and bare domains on
	// common TLDs.
	URL = regexp.MustCompile(`(?i)\b(?:https?://[^\s<>"']+|www\.[^\s<>"']+|[a-z0-9](?:[a-z0-9-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]*[a-z0-9])?)*\.(?:com|net|org|vn|io|info|biz|edu|gov|me|app|dev|co|xyz|shop|online|site)\b(?:/[^\s<>"']*)?)`)

	// Phone matches a Vietnamese mobile number: a carrier prefix and 8 digits.
	Phone = regexp.MustCompile(`\b(?:03|05|07|08|09)\d{8}\b`)

	// Address matches a house number, a run of capitalised Vietnamese words
	// and a terminating administrative-division keyword.
	Address = regexp.MustCompile(`(?i)\d+\s+[A-ZÀÁẠẢÃÂẦẤẬẨẪĂẰẮẶẲẴÈÉẸẺẼÊỀẾỆỂỄÌÍỊỈĨÒÓỌỎÕÔỒỐỘỔỖƠỜỚỢỞỠÙÚỤỦŨƯỪỨỰỬỮỲÝỴỶỸĐ\s,]+(?:Đường|Phường|Quận|Huyện|Tỉnh|Thành phố|Việt Nam|VN)`)
)

// DivisionKeywords are the administrative-division words an address must carry.
var DivisionKeywords = []string{"Đường", "Phường", "Quận", "Huyện", "Tỉnh", "Thành phố", "Việt Nam"}

const (
	urlTrailing      = ".,;:!?)]}'\"…"
	minAddressLength = 20
)

// FindURLs returns every URL in text with trailing punctuation removed.
func FindURLs(text string) []string {
	var out []string
	for _, m := range URL.FindAllString(text, -1) {
		if u := strings.TrimRight(m, urlTrailing); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// FirstURL returns the first URL in text.
func FirstURL(text string) (string, bool) {
	urls := FindURLs(text)
	if len(urls) == 0 {
		return "", false
	}
	return urls[0], true
}

// FindPhones returns every mobile number in text.
func FindPhones(text string) []string {
	return Phone.FindAllString(text, -1)
}

// FirstPhone returns the first mobile number in text.
func FirstPhone(text string) (string, bool) {
	m := Phone.FindString(text)
	return m, m != ""
}

// LooksLikePhone reports whether s is, or contains, a mobile number.
func LooksLikePhone(s string) bool {
	return Phone.MatchString(s)
}

// FindAddresses returns address matches longer than 20 characters that
// contain a division keyword.
func FindAddresses(text string) []string {
	var out []string
	for _, m := range Address.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		if utf8.RuneCountInString(m) > minAddressLength && ContainsDivision(m) {
			out = append(out, m)
		}
	}
	return out
}

// FirstAddress returns the first qualifying address in text.
func FirstAddress(text string) (string, bool) {
	addrs := FindAddresses(text)
	if len(addrs) == 0 {
		return "", false
	}
	return addrs[0], true
}

// ContainsDivision reports whether s mentions an administrative division.
func ContainsDivision(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range DivisionKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// ContainsWord reports whether word occurs in s, case-insensitively, with
// no letter or digit immediately before or after it.
func ContainsWord(s, word string) bool {
	if word == "" {
		return false
	}
	hay := strings.ToUpper(s)
	needle := strings.ToUpper(word)

	for offset := 0; offset <= len(hay)-len(needle); {
		i := strings.Index(hay[offset:], needle)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(needle)
		if isBoundaryBefore(hay, start) && isBoundaryAfter(hay, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(hay[start:])
		offset = start + size
	}
	return false
}

func isBoundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func isBoundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
