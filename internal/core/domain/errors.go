package domain

import "errors"

// Sentinel errors. Adapters wrap them with context; callers test with
// errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType is an unknown category, rule or block kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNoContent means the input had no text, QR payload or image.
	ErrNoContent = errors.New("no content to analyse")

	// ErrRecognizerUnavailable means image analysis has no OCR engine to
	// call. Text and sidecar input are unaffected.
	ErrRecognizerUnavailable = errors.New("text recognizer unavailable")

	// ErrNoAction means a block has nothing to open or copy.
	ErrNoAction = errors.New("no action available")
)
