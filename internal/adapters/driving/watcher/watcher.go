// Package watcher analyses screenshots as they appear in a directory.
package watcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driving"
	"github.com/custodia-labs/shotbrain/internal/logger"
)

// Default configuration values.
const (
	DefaultDedupWindow = 1500 * time.Millisecond
	DefaultSettle      = 250 * time.Millisecond
	DefaultRate        = 2.0
	queueSize          = 64
)

// imageExts are the formats the preprocessor can decode.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Config controls which files are analysed and how often.
type Config struct {
	// Dir is the directory to watch. Subdirectories are not watched.
	Dir string

	// Pattern is a case-insensitive substring the file name must contain.
	// Empty matches every image.
	Pattern string

	// Rate is the maximum analyses per second (default: 2).
	Rate float64

	// DedupWindow ignores repeat events for the same path (default: 1500ms).
	DedupWindow time.Duration

	// Settle is the delay between the event and reading the file, so
	// writers can finish (default: 250ms). Negative disables it.
	Settle time.Duration
}

// Result reports the outcome of analysing one screenshot.
type Result struct {
	Path    string
	Capture *domain.Capture
	Err     error
}

// sidecar is the optional <image>.json written next to a screenshot by an
// external recogniser.
type sidecar struct {
	Text        string              `json:"text"`
	QR          string              `json:"qr"`
	Annotations []domain.Annotation `json:"annotations"`
}

// Watcher watches a directory and feeds new screenshots to the analysis service.
type Watcher struct {
	cfg      Config
	analysis driving.AnalysisService
	limiter  *rate.Limiter
	now      func() time.Time

	mu     sync.Mutex
	seen   map[string]time.Time
	closed bool
	fsw    *fsnotify.Watcher
}

// New creates a watcher. Zero config values take their defaults.
func New(analysis driving.AnalysisService, cfg Config) *Watcher {
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}
	if cfg.DedupWindow <= 0 {
		cfg.DedupWindow = DefaultDedupWindow
	}
	if cfg.Settle == 0 {
		cfg.Settle = DefaultSettle
	}

	burst := int(cfg.Rate)
	if burst < 1 {
		burst = 1
	}

	return &Watcher{
		cfg:      cfg,
		analysis: analysis,
		limiter:  rate.NewLimiter(rate.Limit(cfg.Rate), burst),
		now:      time.Now,
		seen:     make(map[string]time.Time),
	}
}

// Watch starts watching and returns a channel of analysis results.
// The channel is closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, errors.New("watcher is closed")
	}
	if w.fsw != nil {
		return nil, errors.New("watcher already running")
	}

	info, err := os.Stat(w.cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch directory error: %s is not a directory", w.cfg.Dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.cfg.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.cfg.Dir, err)
	}
	w.fsw = fsw

	queue := make(chan string, queueSize)
	results := make(chan Result, queueSize)

	go w.receive(ctx, fsw, queue)
	go w.work(ctx, queue, results)

	logger.Info("watching %s for %q", w.cfg.Dir, w.cfg.Pattern)
	return results, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) receive(ctx context.Context, fsw *fsnotify.Watcher, queue chan<- string) {
	defer func() {
		close(queue)
		_ = w.Close()
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			path, accept := w.handleFsEvent(event)
			if !accept {
				continue
			}
			select {
			case queue <- path:
			default:
				logger.Warn("watch queue full, dropping %s", path)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func (w *Watcher) work(ctx context.Context, queue <-chan string, results chan<- Result) {
	defer close(results)
	for path := range queue {
		if w.cfg.Settle > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.cfg.Settle):
			}
		}
		if err := w.limiter.Wait(ctx); err != nil {
			return
		}

		capture, err := w.process(ctx, path)
		select {
		case results <- Result{Path: path, Capture: capture, Err: err}:
		case <-ctx.Done():
			return
		}
	}
}

// handleFsEvent decides whether an event names a new screenshot.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !w.matches(event.Name) {
		return "", false
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return "", false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if last, ok := w.seen[event.Name]; ok && now.Sub(last) < w.cfg.DedupWindow {
		return "", false
	}
	w.seen[event.Name] = now

	for p, t := range w.seen {
		if now.Sub(t) >= w.cfg.DedupWindow {
			delete(w.seen, p)
		}
	}
	return event.Name, true
}

func (w *Watcher) matches(path string) bool {
	name := filepath.Base(path)
	if isHidden(name) {
		return false
	}
	if !imageExts[strings.ToLower(filepath.Ext(name))] {
		return false
	}
	if w.cfg.Pattern == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(w.cfg.Pattern))
}

func (w *Watcher) process(ctx context.Context, path string) (*domain.Capture, error) {
	input, err := readSidecar(path)
	if err != nil {
		logger.Warn("%s: ignoring sidecar: %v", path, err)
		input = domain.CaptureInput{}
	}
	if info, err := os.Stat(path); err == nil {
		input.CapturedAt = info.ModTime()
	}

	capture, err := w.analysis.AnalyseImage(ctx, path, input)
	if err != nil {
		return nil, fmt.Errorf("analysing %s: %w", filepath.Base(path), err)
	}
	return capture, nil
}

// readSidecar loads <image>.json if present.
func readSidecar(path string) (domain.CaptureInput, error) {
	data, err := os.ReadFile(path + ".json")
	if errors.Is(err, os.ErrNotExist) {
		return domain.CaptureInput{}, nil
	}
	if err != nil {
		return domain.CaptureInput{}, err
	}

	var sc sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return domain.CaptureInput{}, fmt.Errorf("parsing sidecar: %w", err)
	}
	return domain.CaptureInput{
		Text:        sc.Text,
		QRPayload:   sc.QR,
		Annotations: sc.Annotations,
	}, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
