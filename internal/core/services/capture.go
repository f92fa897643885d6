package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driving"
	"github.com/custodia-labs/shotbrain/internal/logger"
)

// Ensure CaptureService implements the interface.
var _ driving.CaptureService = (*CaptureService)(nil)

// CaptureService manages stored captures.
type CaptureService struct {
	store driven.CaptureStore
	vault driven.ImageVault
}

// NewCaptureService creates a new capture service. vault may be nil.
func NewCaptureService(store driven.CaptureStore, vault driven.ImageVault) *CaptureService {
	return &CaptureService{
		store: store,
		vault: vault,
	}
}

// List returns captures passing the filter, newest first.
func (s *CaptureService) List(ctx context.Context, filter domain.CaptureFilter) ([]domain.Capture, error) {
	captures, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing captures: %w", err)
	}
	return captures, nil
}

// Get retrieves a capture by ID. A unique ID prefix is also accepted.
func (s *CaptureService) Get(ctx context.Context, id string) (*domain.Capture, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("capture id: %w", domain.ErrInvalidInput)
	}

	capture, err := s.store.Get(ctx, id)
	if err == nil {
		return capture, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("getting capture: %w", err)
	}

	all, err := s.store.List(ctx, domain.CaptureFilter{IncludeSensitive: true})
	if err != nil {
		return nil, fmt.Errorf("listing captures: %w", err)
	}
	var match *domain.Capture
	for i := range all {
		if !strings.HasPrefix(all[i].ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("capture id %q is ambiguous: %w", id, domain.ErrInvalidInput)
		}
		match = &all[i]
	}
	if match == nil {
		return nil, fmt.Errorf("capture %q: %w", id, domain.ErrNotFound)
	}
	return match, nil
}

// Delete removes a capture and its vault image.
func (s *CaptureService) Delete(ctx context.Context, id string) error {
	capture, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, capture.ID); err != nil {
		return fmt.Errorf("deleting capture: %w", err)
	}
	if s.vault != nil && capture.ImagePath != "" {
		if err := s.vault.Remove(ctx, capture.ImagePath); err != nil {
			logger.Warn("capture %s: removing vault image: %v", capture.ID, err)
		}
	}
	return nil
}
