package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

func TestSettingsService_GetDefaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, svc.GetDefaults(), *settings)
}

func TestSettingsService_SaveAndGet(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Classifier.Rules = []string{domain.RuleURL, domain.RulePhone}
	settings.Classifier.MinScore = 0.3
	settings.Watch.Dir = "/home/me/Pictures"
	settings.Vault.Enabled = false
	settings.OCR.CropTop = 0

	require.NoError(t, svc.Save(&settings))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
	assert.Equal(t, "/home/me/Pictures", store.GetString("watch.dir"))
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{"classifier.rules", "phone, url", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, []string{"phone", "url"}, s.Classifier.Rules)
		}},
		{"classifier.rules", "", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.DefaultRules(), s.Classifier.Rules)
		}},
		{"classifier.min_score", "0.25", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 0.25, s.Classifier.MinScore)
		}},
		{"classifier.note_min_length", "80", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 80, s.Classifier.NoteMinLength)
		}},
		{"classifier.keywords_file", "/etc/kw.toml", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "/etc/kw.toml", s.Classifier.KeywordsFile)
		}},
		{"watch.rate", "0.5", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 0.5, s.Watch.Rate)
		}},
		{"vault.enabled", "false", func(t *testing.T, s *domain.AppSettings) {
			assert.False(t, s.Vault.Enabled)
		}},
		{"ocr.language", "eng", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "eng", s.OCR.Language)
		}},
		{"ocr.crop_top", "0", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 0, s.OCR.CropTop)
		}},
		{"ocr.max_dimension", "2048", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 2048, s.OCR.MaxDimension)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			svc := NewSettingsService(memory.NewConfigStore())
			require.NoError(t, svc.Set(tt.key, tt.value))

			got, err := svc.Get()
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestSettingsService_SetInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"unknown.key", "x"},
		{"classifier.rules", "url,teleport"},
		{"classifier.rules", "url,url"},
		{"classifier.min_score", "high"},
		{"classifier.min_score", "1.5"},
		{"classifier.note_min_length", "-1"},
		{"watch.rate", "0"},
		{"vault.enabled", "maybe"},
		{"ocr.language", ""},
		{"ocr.max_dimension", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			svc := NewSettingsService(memory.NewConfigStore())
			err := svc.Set(tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			got, getErr := svc.Get()
			require.NoError(t, getErr)
			assert.Equal(t, domain.DefaultAppSettings(), *got)
		})
	}
}

func TestSettingsService_Lookup(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	v, err := svc.Lookup("classifier.rules")
	require.NoError(t, err)
	assert.Equal(t, "qr_bank,url,phone,event_pattern,address,annotation", v)

	v, err = svc.Lookup("classifier.min_score")
	require.NoError(t, err)
	assert.Equal(t, "0.1", v)

	require.NoError(t, svc.Set("vault.enabled", "f"))
	v, err = svc.Lookup("vault.enabled")
	require.NoError(t, err)
	assert.Equal(t, "false", v)

	_, err = svc.Lookup("nope")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()
	assert.Len(t, keys, 12)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "watch.pattern")
}
