package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
)

// Ensure CaptureStore implements the interface.
var _ driven.CaptureStore = (*CaptureStore)(nil)

// CaptureStore is an in-memory implementation of driven.CaptureStore.
type CaptureStore struct {
	mu       sync.RWMutex
	captures map[string]domain.Capture
}

// NewCaptureStore creates a new in-memory capture store.
func NewCaptureStore() *CaptureStore {
	return &CaptureStore{
		captures: make(map[string]domain.Capture),
	}
}

// Save stores or replaces a capture.
func (s *CaptureStore) Save(_ context.Context, capture *domain.Capture) error {
	if capture == nil || capture.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captures[capture.ID] = *capture
	return nil
}

// Get retrieves a capture by ID.
func (s *CaptureStore) Get(_ context.Context, id string) (*domain.Capture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	capture, ok := s.captures[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &capture, nil
}

// Delete removes a capture.
func (s *CaptureStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.captures[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.captures, id)
	return nil
}

// List returns captures passing the filter, newest CapturedAt first.
func (s *CaptureStore) List(_ context.Context, filter domain.CaptureFilter) ([]domain.Capture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Capture, 0, len(s.captures))
	for _, c := range s.captures {
		if filter.Matches(&c) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CapturedAt.Equal(result[j].CapturedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CapturedAt.After(result[j].CapturedAt)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}
