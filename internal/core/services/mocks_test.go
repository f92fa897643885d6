package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/extract"
)

var fixedNow = func() time.Time { return time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC) }

func newTestEngine(t *testing.T) *extract.Engine {
	t.Helper()
	e, err := extract.New(extract.WithClock(fixedNow))
	require.NoError(t, err)
	return e
}

func tlvField(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len([]rune(value)), value)
}

// vietQRPayload builds a minimal VietQR payload for a Vietcombank account.
func vietQRPayload(account, owner string) string {
	merchant := tlvField("00", "A000000727") + tlvField("01", tlvField("00", "970436")+tlvField("01", account))
	return tlvField("00", "01") + tlvField("38", merchant) + tlvField("59", owner)
}

// mockPreprocessor returns a blank image for any path.
type mockPreprocessor struct {
	loadErr  error
	prepared int
}

func (m *mockPreprocessor) Load(string) (image.Image, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return image.NewGray(image.Rect(0, 0, 10, 10)), nil
}

func (m *mockPreprocessor) Prepare(img image.Image) image.Image {
	m.prepared++
	return img
}

// mockRecognizer returns fixed text.
type mockRecognizer struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (m *mockRecognizer) Recognize(context.Context, image.Image) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.text, m.err
}

func (m *mockRecognizer) Close() error { return nil }

// mockQRDecoder returns a fixed payload, or ErrNotFound when empty.
type mockQRDecoder struct {
	payload string
	err     error
}

func (m *mockQRDecoder) Decode(context.Context, image.Image) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.payload == "" {
		return "", domain.ErrNotFound
	}
	return m.payload, nil
}

// mockVault records stored and removed paths.
type mockVault struct {
	mu      sync.Mutex
	stored  map[string]string
	removed []string
	err     error
}

func newMockVault() *mockVault {
	return &mockVault{stored: make(map[string]string)}
}

func (m *mockVault) Store(_ context.Context, id, src string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.stored[id] = src
	return "/vault/" + id + ".png", nil
}

func (m *mockVault) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, path)
	return nil
}

// failingStore fails every operation.
type failingStore struct{}

var errStore = errors.New("disk full")

func (failingStore) Save(context.Context, *domain.Capture) error { return errStore }

func (failingStore) Get(context.Context, string) (*domain.Capture, error) { return nil, errStore }

func (failingStore) Delete(context.Context, string) error { return errStore }

func (failingStore) List(context.Context, domain.CaptureFilter) ([]domain.Capture, error) {
	return nil, errStore
}
