// Command shotbrain classifies screenshots into actionable content.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/shotbrain/cgo/tesseract"
	configfile "github.com/custodia-labs/shotbrain/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shotbrain/internal/adapters/driven/preprocess"
	"github.com/custodia-labs/shotbrain/internal/adapters/driven/qr/zxing"
	"github.com/custodia-labs/shotbrain/internal/adapters/driven/storage/sqlite"
	vaultfile "github.com/custodia-labs/shotbrain/internal/adapters/driven/vault/file"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/cli"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
	"github.com/custodia-labs/shotbrain/internal/core/services"
	"github.com/custodia-labs/shotbrain/internal/extract"
	"github.com/custodia-labs/shotbrain/internal/logger"
)

// version is set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	home, err := configfile.HomeDir()
	if err != nil {
		return err
	}

	configStore, err := configfile.NewConfigStore(home)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	opts := []extract.Option{extract.WithSettings(settings.Classifier)}
	if path := settings.Classifier.KeywordsFile; path != "" {
		keywords, err := configfile.LoadKeywords(path)
		if err != nil {
			return err
		}
		opts = append(opts, extract.WithKeywords(keywords))
	}
	engine, err := extract.New(opts...)
	if err != nil {
		return fmt.Errorf("building classifier: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(home, "data"))
	if err != nil {
		return fmt.Errorf("opening capture store: %w", err)
	}
	defer store.Close()

	images := services.ImageAdapters{
		Preprocessor: preprocess.New(settings.OCR),
		QRDecoder:    zxing.New(true),
	}

	if recognizer := newRecognizer(settings.OCR.Language); recognizer != nil {
		defer recognizer.Close()
		images.Recognizer = recognizer
	}

	var vault driven.ImageVault
	if settings.Vault.Enabled {
		v, err := vaultfile.New(settings.Vault.Dir)
		if err != nil {
			return fmt.Errorf("opening vault: %w", err)
		}
		vault = v
		images.Vault = v
	}

	cli.SetServices(cli.Services{
		Analysis: services.NewAnalysisService(engine, store.CaptureStore(), images),
		Capture:  services.NewCaptureService(store.CaptureStore(), vault),
		Actions:  services.NewActionService(),
		Settings: settingsService,
	})
	cli.SetVersion(version)

	return cli.Execute(ctx)
}

// newRecognizer returns nil when this build or host has no Tesseract.
func newRecognizer(language string) *tesseract.Recognizer {
	if !tesseract.Available {
		logger.Debug("text recognition not linked; build with -tags tesseract")
		return nil
	}
	r, err := tesseract.New(language)
	if err != nil {
		logger.Warn("text recognition unavailable: %v", err)
		return nil
	}
	return r
}
