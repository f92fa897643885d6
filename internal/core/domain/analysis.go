package domain

import (
	"time"
	"unicode/utf8"
)

// AnalysisResult is the outcome of classifying one screenshot.
type AnalysisResult struct {
	// Category is the single category assigned to the content.
	Category Category `json:"category"`

	// ExtractedContent is the most useful text for the category:
	// the URL, the phone number, the formatted bank info, the address.
	ExtractedContent string `json:"extracted_content"`

	// ExtraTimestamp is an event instant in milliseconds since the Unix epoch.
	// Only present for Event results.
	ExtraTimestamp *int64 `json:"extra_timestamp,omitempty"`
}

// NewResult creates a result without a timestamp.
func NewResult(c Category, content string) AnalysisResult {
	return AnalysisResult{Category: c, ExtractedContent: content}
}

// NewEventResult creates an Event result carrying the given instant.
func NewEventResult(content string, at time.Time) AnalysisResult {
	ms := at.UnixMilli()
	return AnalysisResult{
		Category:         CategoryEvent,
		ExtractedContent: content,
		ExtraTimestamp:   &ms,
	}
}

// EventTime returns the event instant if one was extracted.
func (r AnalysisResult) EventTime() (time.Time, bool) {
	if r.ExtraTimestamp == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*r.ExtraTimestamp), true
}

// AnnotationKind identifies what an entity annotation marks.
type AnnotationKind string

// Available annotation kinds.
const (
	AnnotationDateTime AnnotationKind = "datetime"
	AnnotationAddress  AnnotationKind = "address"
	AnnotationPhone    AnnotationKind = "phone"
	AnnotationURL      AnnotationKind = "url"
	AnnotationEmail    AnnotationKind = "email"
	AnnotationOther    AnnotationKind = "other"
)

// Annotation is an externally supplied entity span over the raw text.
// Offsets count characters (runes), not bytes.
type Annotation struct {
	SpanStart int            `json:"start"`
	SpanEnd   int            `json:"end"`
	Kind      AnnotationKind `json:"kind"`

	// TimestampMillis is the resolved instant for DateTime annotations.
	TimestampMillis *int64 `json:"timestamp_ms,omitempty"`
}

// Span returns the annotated substring of text.
// It returns false when the span does not satisfy 0 <= start < end <= len(text).
func (a Annotation) Span(text string) (string, bool) {
	if a.SpanStart < 0 || a.SpanStart >= a.SpanEnd {
		return "", false
	}
	if a.SpanEnd > utf8.RuneCountInString(text) {
		return "", false
	}
	runes := []rune(text)
	return string(runes[a.SpanStart:a.SpanEnd]), true
}

// Analysis bundles the classification with its segmented blocks and title.
type Analysis struct {
	Result AnalysisResult `json:"result"`
	Blocks []TextBlock    `json:"blocks"`
	Title  string         `json:"title"`
}
