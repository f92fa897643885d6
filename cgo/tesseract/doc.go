// Package tesseract provides Tesseract OCR bindings via gosseract.
// It implements the driven.TextRecognizer interface.
//
// Build requires:
//   - libtesseract and leptonica headers
//   - trained data for the configured languages (e.g. vie, eng)
//   - the "tesseract" build tag
//
// Without the tag a stub is compiled that reports the recognizer as
// unavailable.
package tesseract
