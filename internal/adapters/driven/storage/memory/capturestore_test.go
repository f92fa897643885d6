package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

var base = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

func seed(t *testing.T, store *CaptureStore) {
	t.Helper()
	ctx := context.Background()
	captures := []domain.Capture{
		{ID: "a", Category: domain.CategoryURL, RawText: "xem https://shop.vn", ExtractedContent: "https://shop.vn", Title: "Shop", CapturedAt: base},
		{ID: "b", Category: domain.CategoryBank, RawText: "STK 0123456789", ExtractedContent: "Vietcombank (A)\n0123456789", CapturedAt: base.Add(time.Minute)},
		{ID: "c", Category: domain.CategoryNote, RawText: "Mua sữa", ExtractedContent: "Mua sữa", Title: "Mua sữa", CapturedAt: base.Add(2 * time.Minute)},
	}
	for i := range captures {
		require.NoError(t, store.Save(ctx, &captures[i]))
	}
}

func ids(captures []domain.Capture) []string {
	out := make([]string, len(captures))
	for i, c := range captures {
		out[i] = c.ID
	}
	return out
}

func TestCaptureStore_SaveAndGet(t *testing.T) {
	store := NewCaptureStore()
	ctx := context.Background()

	err := store.Save(ctx, &domain.Capture{ID: "x", Title: "first"})
	require.NoError(t, err)
	err = store.Save(ctx, &domain.Capture{ID: "x", Title: "second"})
	require.NoError(t, err)

	got, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCaptureStore_SaveInvalid(t *testing.T) {
	store := NewCaptureStore()
	assert.ErrorIs(t, store.Save(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(context.Background(), &domain.Capture{}), domain.ErrInvalidInput)
}

func TestCaptureStore_Delete(t *testing.T) {
	store := NewCaptureStore()
	seed(t, store)
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, "a"))
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "a"), domain.ErrNotFound)
}

func TestCaptureStore_List(t *testing.T) {
	store := NewCaptureStore()
	seed(t, store)
	ctx := context.Background()
	bank := domain.CategoryBank

	tests := []struct {
		name     string
		filter   domain.CaptureFilter
		expected []string
	}{
		{"hides sensitive by default", domain.CaptureFilter{}, []string{"c", "a"}},
		{"include sensitive", domain.CaptureFilter{IncludeSensitive: true}, []string{"c", "b", "a"}},
		{"category selects sensitive", domain.CaptureFilter{Category: &bank}, []string{"b"}},
		{"query raw text", domain.CaptureFilter{Query: "HTTPS"}, []string{"a"}},
		{"query title", domain.CaptureFilter{Query: "sữa"}, []string{"c"}},
		{"limit", domain.CaptureFilter{IncludeSensitive: true, Limit: 2}, []string{"c", "b"}},
		{"no match", domain.CaptureFilter{Query: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestCaptureStore_Concurrent(t *testing.T) {
	store := NewCaptureStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('A' + i))
			_ = store.Save(ctx, &domain.Capture{ID: id, CapturedAt: base})
			_, _ = store.List(ctx, domain.CaptureFilter{})
		}(i)
	}
	wg.Wait()

	all, err := store.List(ctx, domain.CaptureFilter{IncludeSensitive: true})
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
