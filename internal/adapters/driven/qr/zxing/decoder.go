// Package zxing decodes QR codes with the gozxing port of ZXing.
package zxing

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
)

const (
	// inkThreshold is the luma below which a pixel counts as content.
	inkThreshold = 128

	// downscaleWidth is the width of the last-resort resized attempt.
	downscaleWidth = 640
)

// Ensure Decoder implements the interface.
var _ driven.QRDecoder = (*Decoder)(nil)

// Decoder reads QR codes from images.
type Decoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

// New creates a QR decoder. tryHarder trades speed for accuracy on
// busy screenshots.
func New(tryHarder bool) *Decoder {
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_CHARACTER_SET: "UTF-8",
	}
	if tryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}
	return &Decoder{hints: hints}
}

// attempt is one way of turning the screenshot into a bitmap.
type attempt struct {
	name string
	img  func(image.Image) image.Image
	bin  func(gozxing.LuminanceSource) gozxing.Binarizer
}

var attempts = []attempt{
	{"hybrid", same, gozxing.NewHybridBinarizer},
	{"global", same, gozxing.NewGlobalHistgramBinarizer},
	{"cropped", cropToInk, gozxing.NewHybridBinarizer},
	{"downscaled", downscale, gozxing.NewHybridBinarizer},
}

// Decode returns the payload of the first QR code found in img. Codes
// sitting inside a larger screenshot are retried on a crop around the
// content and on a downscaled copy.
func (d *Decoder) Decode(ctx context.Context, img image.Image) (string, error) {
	if img == nil || img.Bounds().Empty() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "", domain.ErrNotFound
	}

	var firstErr error
	for _, a := range attempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		src := a.img(img)
		if src == nil {
			continue
		}
		text, err := d.decode(src, a.bin)
		if err == nil {
			return text, nil
		}
		if firstErr == nil && !errors.Is(err, domain.ErrNotFound) {
			firstErr = fmt.Errorf("decoding qr (%s): %w", a.name, err)
		}
	}
	if firstErr != nil {
		return "", firstErr
	}
	return "", domain.ErrNotFound
}

func (d *Decoder) decode(img image.Image, binarizer func(gozxing.LuminanceSource) gozxing.Binarizer) (string, error) {
	bmp, err := gozxing.NewBinaryBitmap(binarizer(gozxing.NewLuminanceSourceFromImage(img)))
	if err != nil {
		return "", err
	}

	// Readers are not safe for concurrent use.
	result, err := qrcode.NewQRCodeReader().Decode(bmp, d.hints)
	if err != nil {
		var notFound gozxing.NotFoundException
		if errors.As(err, &notFound) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return result.GetText(), nil
}

func same(img image.Image) image.Image { return img }

// cropToInk crops to the bounding box of dark pixels plus a quiet zone.
// It returns nil when the image has no ink or the box is the whole image.
func cropToInk(img image.Image) image.Image {
	b := img.Bounds()
	box := image.Rectangle{Min: b.Max, Max: b.Min}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y >= inkThreshold {
				continue
			}
			box.Min.X = min(box.Min.X, x)
			box.Min.Y = min(box.Min.Y, y)
			box.Max.X = max(box.Max.X, x+1)
			box.Max.Y = max(box.Max.Y, y+1)
		}
	}
	if box.Empty() || box == b {
		return nil
	}

	margin := max(box.Dx(), box.Dy()) / 4
	padded := image.Rect(box.Min.X-margin, box.Min.Y-margin, box.Max.X+margin, box.Max.Y+margin)
	canvas := imaging.New(padded.Dx(), padded.Dy(), color.White)
	return imaging.Paste(canvas, imaging.Crop(img, box), image.Pt(margin, margin))
}

// downscale shrinks wide screenshots; it returns nil for narrow ones.
func downscale(img image.Image) image.Image {
	if img.Bounds().Dx() <= downscaleWidth {
		return nil
	}
	return imaging.Resize(img, downscaleWidth, 0, imaging.Box)
}
