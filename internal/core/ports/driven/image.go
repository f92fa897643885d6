package driven

import (
	"context"
	"image"
)

// ImagePreprocessor loads screenshots and prepares them for recognition.
type ImagePreprocessor interface {
	// Load decodes the image at path.
	Load(path string) (image.Image, error)

	// Prepare removes the status bar strip and downscales the image.
	// The result is suitable for both OCR and QR decoding.
	Prepare(img image.Image) image.Image
}

// TextRecognizer extracts text from an image (OCR).
type TextRecognizer interface {
	// Recognize returns the text found in img. An image without text
	// returns an empty string and no error.
	Recognize(ctx context.Context, img image.Image) (string, error)

	// Close releases the recognition engine.
	Close() error
}

// QRDecoder reads QR codes from images.
type QRDecoder interface {
	// Decode returns the payload of the QR code in img.
	// Returns domain.ErrNotFound when the image carries no QR code.
	Decode(ctx context.Context, img image.Image) (string, error)
}

// ImageVault keeps private copies of sensitive screenshots.
type ImageVault interface {
	// Store copies the image at srcPath into the vault under id and returns
	// the path of the copy.
	Store(ctx context.Context, id, srcPath string) (string, error)

	// Remove deletes the vault copy at path. Paths outside the vault are ignored.
	Remove(ctx context.Context, path string) error
}
