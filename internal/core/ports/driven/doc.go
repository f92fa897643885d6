// Package driven lists what the core needs from the outside world.
//
// CaptureStore and ConfigStore are required. The image ports are optional
// and each missing one narrows what analysis can do:
//
//   - without ImagePreprocessor, AnalyseImage fails
//   - without TextRecognizer, images yield only their QR payload and sidecar text
//   - without QRDecoder, QR payloads must arrive with the input
//   - without ImageVault, sensitive screenshots stay where they were taken
//
// This package imports domain and nothing else.
package driven
