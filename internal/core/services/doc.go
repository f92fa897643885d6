// Package services wires the classification engine to storage and the
// operating system.
//
// AnalysisService turns recognised text (or an image, via the OCR and QR
// adapters) into a persisted Capture. CaptureService lists and removes
// captures, ActionService maps blocks to dial, open, navigate, calendar
// and copy actions, and SettingsService reads and validates config.toml.
package services
