package domain

import (
	"strings"
	"time"
)

// Capture is a persisted screenshot analysis.
type Capture struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`

	// ImagePath is the source screenshot, or its vault copy. Empty for text input.
	ImagePath string `json:"image_path,omitempty"`

	// RawText is the recognised text exactly as supplied.
	RawText string `json:"raw_text"`

	// QRPayload is the decoded QR string, if any.
	QRPayload string `json:"qr_payload,omitempty"`

	// Annotations are the entity spans supplied with the text.
	Annotations []Annotation `json:"annotations,omitempty"`

	// Category is the assigned category.
	Category Category `json:"category"`

	// ExtractedContent is the category-specific content.
	ExtractedContent string `json:"extracted_content"`

	// EventTime is set for Event captures with a resolved instant.
	EventTime *time.Time `json:"event_time,omitempty"`

	// Title is the generated display title.
	Title string `json:"title"`

	// Blocks are the segmented content blocks, front block first.
	Blocks []TextBlock `json:"blocks"`

	// CapturedAt is when the screenshot was taken.
	CapturedAt time.Time `json:"captured_at"`

	// CreatedAt is when the capture was analysed.
	CreatedAt time.Time `json:"created_at"`
}

// Result returns the capture's classification as an AnalysisResult.
func (c *Capture) Result() AnalysisResult {
	r := NewResult(c.Category, c.ExtractedContent)
	if c.EventTime != nil {
		ms := c.EventTime.UnixMilli()
		r.ExtraTimestamp = &ms
	}
	return r
}

// CaptureInput is the raw material for one analysis.
type CaptureInput struct {
	Text        string
	QRPayload   string
	Annotations []Annotation
	ImagePath   string

	// CapturedAt defaults to the analysis time when zero.
	CapturedAt time.Time
}

// IsEmpty returns true if the input carries nothing to analyse.
func (in CaptureInput) IsEmpty() bool {
	return strings.TrimSpace(in.Text) == "" && strings.TrimSpace(in.QRPayload) == ""
}

// CaptureFilter narrows a capture listing.
type CaptureFilter struct {
	// Category restricts results to one category when set.
	Category *Category

	// Query matches raw or extracted text, case-insensitively.
	Query string

	// IncludeSensitive lists sensitive categories without selecting them.
	IncludeSensitive bool

	// Limit caps the number of results. Zero means unlimited.
	Limit int
}

// Matches reports whether a capture passes the filter.
func (f CaptureFilter) Matches(c *Capture) bool {
	if f.Category != nil {
		if c.Category != *f.Category {
			return false
		}
	} else if c.Category.IsSensitive() && !f.IncludeSensitive {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(c.RawText), q) &&
			!strings.Contains(strings.ToLower(c.ExtractedContent), q) &&
			!strings.Contains(strings.ToLower(c.Title), q) {
			return false
		}
	}
	return true
}
