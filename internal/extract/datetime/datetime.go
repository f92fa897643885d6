// Package datetime extracts a calendar instant from free text written in
// Vietnamese or English screenshot conventions ("19h30 15/3", "THỨ 5 LÚC
// 14:00", "15/03/2025 08:00").
//
// Day/month order is always D/M. Dates without a year roll forward to the
// next year when they have already passed; bare times roll to tomorrow.
package datetime

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// family is one pattern shape and the way its submatches become an instant.
type family struct {
	name    string
	re      *regexp.Regexp
	resolve func(p *Parser, m []string, now time.Time) (time.Time, bool)

	// event reports whether a match is specific enough to classify text as an event.
	event bool
}

var families = []family{
	{
		name:    "hour-h date",
		re:      regexp.MustCompile(`(?i)(\d{1,2})h(\d{0,2})\s+(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`),
		resolve: func(p *Parser, m []string, now time.Time) (time.Time, bool) { return p.dated(now, m[3], m[4], m[5], m[1], m[2]) },
		event:   true,
	},
	{
		name:    "weekday at time",
		re:      regexp.MustCompile(`(?i)TH(?:Ứ)?\s*\d+\s+LÚC\s+(\d{1,2}):(\d{2})`),
		resolve: func(p *Parser, m []string, now time.Time) (time.Time, bool) { return p.timeOnly(now, m[1], m[2]) },
		event:   true,
	},
	{
		name:    "date then time",
		re:      regexp.MustCompile(`(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\s+(\d{1,2}):(\d{2})`),
		resolve: func(p *Parser, m []string, now time.Time) (time.Time, bool) { return p.dated(now, m[1], m[2], m[3], m[4], m[5]) },
		event:   true,
	},
	{
		name:    "time then date",
		re:      regexp.MustCompile(`(\d{1,2}):(\d{2})\s+(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`),
		resolve: func(p *Parser, m []string, now time.Time) (time.Time, bool) { return p.dated(now, m[3], m[4], m[5], m[1], m[2]) },
		event:   true,
	},
	{
		name: "bare time",
		re:   regexp.MustCompile(`(?i)(\d{1,2})h(\d{0,2})|(\d{1,2}):(\d{2})`),
		resolve: func(p *Parser, m []string, now time.Time) (time.Time, bool) {
			if m[1] != "" {
				return p.timeOnly(now, m[1], m[2])
			}
			return p.timeOnly(now, m[3], m[4])
		},
	},
	{
		name:    "bare date",
		re:      regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`),
		resolve: func(p *Parser, m []string, now time.Time) (time.Time, bool) { return p.dated(now, m[1], m[2], m[3], "0", "0") },
	},
}

// Parser resolves date/time expressions relative to a clock.
// It holds no mutable state and is safe for concurrent use.
type Parser struct {
	now func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the function used as "now". Results are produced in the
// location of the returned time.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a parser using the system clock.
func New(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse resolves text with the first pattern family, in priority order,
// that matches it. Out-of-range fields in that match yield none; lower
// families are not consulted.
func (p *Parser) Parse(text string) (time.Time, bool) {
	now := p.now()
	for _, f := range families {
		if m := f.re.FindStringSubmatch(text); m != nil {
			return f.resolve(p, m, now)
		}
	}
	return time.Time{}, false
}

// FindAndParse looks for the most specific expression first: the
// hour-h date form anywhere in text, then each line on its own, then the
// whole text.
func (p *Parser) FindAndParse(text string) (time.Time, bool) {
	if span := families[0].re.FindString(text); span != "" {
		if t, ok := p.Parse(span); ok {
			return t, true
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if t, ok := p.Parse(strings.TrimSpace(line)); ok {
			return t, true
		}
	}
	return p.Parse(strings.TrimSpace(text))
}

// FindEventSpan returns the first substring that combines a date or weekday
// with a time, trying the event families in priority order.
func (p *Parser) FindEventSpan(text string) (string, bool) {
	for _, f := range families {
		if !f.event {
			continue
		}
		if span := f.re.FindString(text); span != "" {
			return span, true
		}
	}
	return "", false
}

// dated builds an instant from day, month, optional year, hour and minute.
// A missing year means the next occurrence of that date, today included.
func (p *Parser) dated(now time.Time, day, month, year, hour, minute string) (time.Time, bool) {
	d, ok1 := atoi(day)
	mo, ok2 := atoi(month)
	h, ok3 := atoi(hour)
	mi, ok4 := atoiDefault(minute, 0)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return time.Time{}, false
	}

	y := now.Year()
	if year != "" {
		var ok bool
		if y, ok = parseYear(year); !ok {
			return time.Time{}, false
		}
	}

	t, ok := build(y, mo, d, h, mi, now.Location())
	if !ok {
		return time.Time{}, false
	}
	if year == "" && dateOnly(t).Before(dateOnly(now)) {
		return build(y+1, mo, d, h, mi, now.Location())
	}
	return t, true
}

// timeOnly builds today's instant at hour:minute, or tomorrow's if it has passed.
func (p *Parser) timeOnly(now time.Time, hour, minute string) (time.Time, bool) {
	h, ok1 := atoi(hour)
	mi, ok2 := atoiDefault(minute, 0)
	if !ok1 || !ok2 {
		return time.Time{}, false
	}
	t, ok := build(now.Year(), int(now.Month()), now.Day(), h, mi, now.Location())
	if !ok {
		return time.Time{}, false
	}
	if t.Before(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t, true
}

// build validates ranges and rejects dates that time.Date would normalise,
// such as 31/2.
func build(year, month, day, hour, minute int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parseYear expands two-digit years into the 2000s.
func parseYear(s string) (int, bool) {
	y, ok := atoi(s)
	if !ok {
		return 0, false
	}
	switch len(s) {
	case 2:
		return 2000 + y, true
	case 4:
		return y, true
	default:
		return 0, false
	}
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil && n >= 0
}

func atoiDefault(s string, def int) (int, bool) {
	if s == "" {
		return def, true
	}
	return atoi(s)
}
