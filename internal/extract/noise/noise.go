// Package noise removes phone status-bar artefacts from OCR text.
//
// Screenshots carry the device chrome: clock, battery percentage, signal
// bars and status icons. Filter strips those while keeping lines that are
// meaningful in context, such as addresses and event times.
package noise

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/shotbrain/internal/extract/patterns"
)

var (
	adminTokens = []string{"ĐƯỜNG", "PHƯỜNG", "QUẬN", "HUYỆN", "TỈNH", "THÀNH PHỐ", "VIỆT NAM"}

	cityNames = []string{
		"PHAN THIẾT", "BÌNH THUẬN", "BÌNH HƯNG", "TUYÊN QUANG",
		"HÀ NỘI", "HỒ CHÍ MINH", "ĐÀ NẴNG", "HẢI PHÒNG", "CẦN THƠ",
	}

	prepositions = []string{"LÚC", "AT", "VÀO"}

	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}:\d{2}`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
		regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{2,4}`),
	}

	batteryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Battery.*\d+%`),
		regexp.MustCompile(`\d{1,3}%`),
	}

	signalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+\s*(?:dBm|bars?)`),
		regexp.MustCompile(`(?i)Signal.*\d+`),
	}

	keywords = []string{
		"AM", "PM",
		"Wi-Fi", "Wifi", "WiFi",
		"Bluetooth",
		"GPS", "Location",
		"Do Not Disturb", "DND",
		"Airplane Mode",
		"Silent", "Vibrate",
		"Battery", "Charging",
		"Signal", "No Service",
		"Roaming",
		"VPN",
		"Hotspot",
	}

	bullets    = regexp.MustCompile(`[•●○◉◯]`)
	whitespace = regexp.MustCompile(`\s+`)
)

const (
	shortLineLength = 20
	minLineLength   = 3
	maxRepeat       = 3
)

// Filter strips status-bar noise from text and returns the surviving
// content as a single whitespace-normalised line.
func Filter(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if !isImportant(line) {
			line = stripNoise(line)
			if isNoiseKeyword(line) {
				continue
			}
		}
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}

	out := strings.Join(kept, "\n")
	out = bullets.ReplaceAllString(out, "")
	out = whitespace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Clean runs Filter, drops lines shorter than three characters and
// collapses any character repeated four or more times down to three.
func Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	filtered := Filter(text)

	var lines []string
	for _, line := range strings.Split(filtered, "\n") {
		if utf8.RuneCountInString(strings.TrimSpace(line)) >= minLineLength {
			lines = append(lines, line)
		}
	}

	return strings.TrimSpace(collapseRepeats(strings.Join(lines, "\n"), maxRepeat))
}

func isImportant(line string) bool {
	upper := strings.ToUpper(strings.TrimSpace(line))
	for _, token := range adminTokens {
		if strings.Contains(upper, token) {
			return true
		}
	}
	for _, city := range cityNames {
		if strings.Contains(upper, city) {
			return true
		}
	}
	return hasPreposition(line) && hasTime(line)
}

func stripNoise(line string) string {
	if !hasPreposition(line) {
		for _, p := range timePatterns {
			line = p.ReplaceAllString(line, "")
		}
	}
	for _, p := range batteryPatterns {
		line = p.ReplaceAllString(line, "")
	}
	for _, p := range signalPatterns {
		line = p.ReplaceAllString(line, "")
	}
	return line
}

// isNoiseKeyword reports whether a stripped line is a status-bar label:
// exactly a keyword, or a short line containing one as a whole word.
func isNoiseKeyword(line string) bool {
	upper := strings.ToUpper(strings.TrimSpace(line))
	short := utf8.RuneCountInString(upper) < shortLineLength
	for _, kw := range keywords {
		kw = strings.ToUpper(kw)
		if upper == kw || (short && patterns.ContainsWord(upper, kw)) {
			return true
		}
	}
	return false
}

func hasPreposition(line string) bool {
	for _, p := range prepositions {
		if patterns.ContainsWord(line, p) {
			return true
		}
	}
	return false
}

func hasTime(line string) bool {
	for _, p := range timePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// collapseRepeats shortens every run of one character longer than max.
func collapseRepeats(s string, max int) string {
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	run := 0
	for i, r := range s {
		if i > 0 && r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run <= max {
			b.WriteRune(r)
		}
	}
	return b.String()
}
