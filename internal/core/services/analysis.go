package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driving"
	"github.com/custodia-labs/shotbrain/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// Engine is the extraction pipeline run on every capture.
type Engine interface {
	Analyse(text, qrPayload string, annotations []domain.Annotation) domain.Analysis
	Rules() []string
}

// ImageAdapters are the optional collaborators used for image analysis.
// Any field may be nil.
type ImageAdapters struct {
	Preprocessor driven.ImagePreprocessor
	Recognizer   driven.TextRecognizer
	QRDecoder    driven.QRDecoder
	Vault        driven.ImageVault
}

// AnalysisService runs the extraction engine and persists captures.
type AnalysisService struct {
	engine Engine
	store  driven.CaptureStore
	images ImageAdapters
	now    func() time.Time
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(engine Engine, store driven.CaptureStore, images ImageAdapters) *AnalysisService {
	return &AnalysisService{
		engine: engine,
		store:  store,
		images: images,
		now:    time.Now,
	}
}

// Analyse classifies, segments and titles the input and persists the capture.
func (s *AnalysisService) Analyse(ctx context.Context, input domain.CaptureInput) (*domain.Capture, error) {
	capture, err := s.Preview(ctx, input)
	if err != nil {
		return nil, err
	}

	if s.images.Vault != nil && capture.ImagePath != "" && keepsPrivateCopy(capture.Category) {
		path, err := s.images.Vault.Store(ctx, capture.ID, capture.ImagePath)
		if err != nil {
			logger.Warn("capture %s: vault copy failed: %v", capture.ID, err)
		} else {
			capture.ImagePath = path
		}
	}

	if err := s.store.Save(ctx, capture); err != nil {
		return nil, fmt.Errorf("saving capture: %w", err)
	}
	logger.Info("capture %s: %s %q", capture.ID, capture.Category, capture.Title)
	return capture, nil
}

// Preview runs the analysis without persisting.
func (s *AnalysisService) Preview(_ context.Context, input domain.CaptureInput) (*domain.Capture, error) {
	if input.IsEmpty() {
		return nil, domain.ErrNoContent
	}

	analysis := s.engine.Analyse(input.Text, input.QRPayload, input.Annotations)

	now := s.now()
	capturedAt := input.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = now
	}

	capture := &domain.Capture{
		ID:               uuid.NewString(),
		ImagePath:        input.ImagePath,
		RawText:          input.Text,
		QRPayload:        strings.TrimSpace(input.QRPayload),
		Annotations:      input.Annotations,
		Category:         analysis.Result.Category,
		ExtractedContent: analysis.Result.ExtractedContent,
		Title:            analysis.Title,
		Blocks:           analysis.Blocks,
		CapturedAt:       capturedAt,
		CreatedAt:        now,
	}
	if at, ok := analysis.Result.EventTime(); ok {
		capture.EventTime = &at
	}
	return capture, nil
}

// AnalyseImage recognises the image at path and analyses the result.
// Text and QR payload already present in input are not recognised again.
func (s *AnalysisService) AnalyseImage(ctx context.Context, path string, input domain.CaptureInput) (*domain.Capture, error) {
	defer logger.Timed("analyse image")()

	input.ImagePath = path
	needText := strings.TrimSpace(input.Text) == ""
	needQR := strings.TrimSpace(input.QRPayload) == ""

	if needText || needQR {
		if s.images.Preprocessor == nil {
			if input.IsEmpty() {
				return nil, fmt.Errorf("no image preprocessor: %w", domain.ErrRecognizerUnavailable)
			}
		} else if err := s.recognise(ctx, path, &input, needText, needQR); err != nil {
			return nil, err
		}
	}

	return s.Analyse(ctx, input)
}

// recognise runs OCR and QR decoding concurrently and fills the gaps in input.
func (s *AnalysisService) recognise(ctx context.Context, path string, input *domain.CaptureInput, needText, needQR bool) error {
	img, err := s.images.Preprocessor.Load(path)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}

	var (
		wg            sync.WaitGroup
		text, qr      string
		ocrErr, qrErr error
	)

	if needText && s.images.Recognizer != nil {
		prepared := s.images.Preprocessor.Prepare(img)
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, ocrErr = s.images.Recognizer.Recognize(ctx, prepared)
		}()
	}
	if needQR && s.images.QRDecoder != nil {
		wg.Add(1)
		go func(img image.Image) {
			defer wg.Done()
			qr, qrErr = s.images.QRDecoder.Decode(ctx, img)
		}(img)
	}
	wg.Wait()

	if qrErr != nil && !errors.Is(qrErr, domain.ErrNotFound) {
		logger.Warn("%s: qr decoding failed: %v", path, qrErr)
	}
	if qrErr == nil && qr != "" {
		input.QRPayload = qr
	}

	if ocrErr != nil {
		if input.IsEmpty() {
			return fmt.Errorf("recognising text: %w", ocrErr)
		}
		logger.Warn("%s: text recognition failed: %v", path, ocrErr)
	}
	if ocrErr == nil && text != "" {
		input.Text = text
	}

	if input.IsEmpty() && needText && s.images.Recognizer == nil {
		return fmt.Errorf("no text recognizer: %w", domain.ErrRecognizerUnavailable)
	}
	return nil
}

// Rules returns the active classifier cascade order.
func (s *AnalysisService) Rules() []string {
	return s.engine.Rules()
}

// keepsPrivateCopy reports whether screenshots of a category are copied
// into the vault.
func keepsPrivateCopy(c domain.Category) bool {
	return c == domain.CategoryBank || c == domain.CategoryNote
}
