package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// Category is the single content category assigned to a screenshot.
type Category string

// Available categories.
const (
	// CategoryURL is a web link.
	CategoryURL Category = "url"

	// CategoryPhone is a Vietnamese mobile number.
	CategoryPhone Category = "phone"

	// CategoryBank is bank transfer information, usually from a VietQR code.
	CategoryBank Category = "bank"

	// CategoryEvent is a date and time worth adding to a calendar.
	CategoryEvent Category = "event"

	// CategoryMap is a postal address.
	CategoryMap Category = "map"

	// CategoryNote is free text long enough to keep.
	CategoryNote Category = "note"

	// CategoryOther is everything else.
	CategoryOther Category = "other"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryURL,
		CategoryPhone,
		CategoryBank,
		CategoryEvent,
		CategoryMap,
		CategoryNote,
		CategoryOther,
	}
}

// ScoredCategories returns the categories the keyword scorer competes over.
// The order is the tie-break order: earlier wins on equal score.
func ScoredCategories() []Category {
	return []Category{
		CategoryBank,
		CategoryURL,
		CategoryPhone,
		CategoryEvent,
		CategoryMap,
		CategoryNote,
	}
}

// IsValid returns true if the category is recognised.
func (c Category) IsValid() bool {
	switch c {
	case CategoryURL, CategoryPhone, CategoryBank, CategoryEvent,
		CategoryMap, CategoryNote, CategoryOther:
		return true
	default:
		return false
	}
}

// IsSensitive returns true if captures of this category are hidden
// from unfiltered listings.
func (c Category) IsSensitive() bool {
	return c == CategoryBank
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Description returns a human-readable label for the category.
func (c Category) Description() string {
	switch c {
	case CategoryURL:
		return "Link"
	case CategoryPhone:
		return "Phone number"
	case CategoryBank:
		return "Bank transfer"
	case CategoryEvent:
		return "Event"
	case CategoryMap:
		return "Address"
	case CategoryNote:
		return "Note"
	case CategoryOther:
		return "Other"
	default:
		return unknownDescription
	}
}

// ParseCategory parses a category name case-insensitively.
// The legacy "TYPE_" prefix is accepted.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "type_")
	c := Category(name)
	if !c.IsValid() {
		return "", fmt.Errorf("category %q: %w", s, ErrUnsupportedType)
	}
	return c, nil
}
