// Package preprocess prepares screenshots for text recognition.
package preprocess

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
)

// Ensure Preprocessor implements the interface.
var _ driven.ImagePreprocessor = (*Preprocessor)(nil)

// Preprocessor crops, downscales and greys screenshots.
type Preprocessor struct {
	cropTop      int
	maxDimension int
}

// New creates a preprocessor from OCR settings. Non-positive values
// disable the corresponding step.
func New(cfg domain.OCRSettings) *Preprocessor {
	return &Preprocessor{
		cropTop:      cfg.CropTop,
		maxDimension: cfg.MaxDimension,
	}
}

// Load decodes the image at path, honouring EXIF orientation.
func (p *Preprocessor) Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	return img, nil
}

// Prepare removes the status bar strip, fits the image inside the maximum
// dimension and converts it to greyscale.
func (p *Preprocessor) Prepare(img image.Image) image.Image {
	b := img.Bounds()

	// Images too short to hold content below the status bar are left whole.
	if p.cropTop > 0 && b.Dy() > 2*p.cropTop {
		img = imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y+p.cropTop, b.Max.X, b.Max.Y))
	}

	if p.maxDimension > 0 {
		b = img.Bounds()
		if b.Dx() > p.maxDimension || b.Dy() > p.maxDimension {
			img = imaging.Fit(img, p.maxDimension, p.maxDimension, imaging.Lanczos)
		}
	}

	return imaging.Grayscale(img)
}
