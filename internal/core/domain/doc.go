// Package domain defines the core business entities for Shotbrain.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Category: The single content category assigned to a screenshot
//   - AnalysisResult: Category, extracted content and optional event time
//   - TextBlock: A typed, actionable segment of recognised text
//   - Capture: A persisted screenshot analysis
//   - BankInfo: Bank transfer details decoded from a VietQR payload
package domain
