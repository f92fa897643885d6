// Package extract turns recognised screenshot text into a category,
// extracted content, typed content blocks and a display title.
//
// The subpackages hold the individual stages; Engine wires them together
// from configuration.
package extract

import (
	"fmt"
	"time"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/extract/blocks"
	"github.com/custodia-labs/shotbrain/internal/extract/classifier"
	"github.com/custodia-labs/shotbrain/internal/extract/datetime"
	"github.com/custodia-labs/shotbrain/internal/extract/title"
	"github.com/custodia-labs/shotbrain/internal/extract/vietqr"
	"github.com/custodia-labs/shotbrain/internal/logger"
)

// bankAbbreviations are short names recognised in titles in addition to
// the directory names.
var bankAbbreviations = []string{"MBBank", "VPBank", "VP"}

type config struct {
	rules         []string
	keywords      domain.KeywordWeights
	minScore      float64
	noteMinLength int
	now           func() time.Time
	directory     *vietqr.Directory
	registry      *classifier.Registry
}

// Option configures an Engine.
type Option func(*config)

// WithRules sets the cascade order by rule name.
func WithRules(names ...string) Option {
	return func(c *config) { c.rules = names }
}

// WithKeywords merges extra keyword weights over the built-in table.
func WithKeywords(extra domain.KeywordWeights) Option {
	return func(c *config) { c.keywords = extra }
}

// WithMinScore sets the keyword score a category needs to win.
func WithMinScore(score float64) Option {
	return func(c *config) { c.minScore = score }
}

// WithNoteMinLength sets the cleaned length above which text is a Note.
func WithNoteMinLength(n int) Option {
	return func(c *config) { c.noteMinLength = n }
}

// WithClock sets the clock used for relative dates and fallback titles.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDirectory replaces the built-in bank directory.
func WithDirectory(dir *vietqr.Directory) Option {
	return func(c *config) {
		if dir != nil {
			c.directory = dir
		}
	}
}

// WithRegistry supplies a rule registry, for registering custom rules.
func WithRegistry(r *classifier.Registry) Option {
	return func(c *config) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithSettings applies classifier settings.
func WithSettings(s domain.ClassifierSettings) Option {
	return func(c *config) {
		if len(s.Rules) > 0 {
			c.rules = s.Rules
		}
		if s.MinScore > 0 {
			c.minScore = s.MinScore
		}
		if s.NoteMinLength > 0 {
			c.noteMinLength = s.NoteMinLength
		}
	}
}

// Engine runs the full analysis pipeline. It is immutable once built and
// safe for concurrent use.
type Engine struct {
	classifier *classifier.Classifier
	segmenter  *blocks.Segmenter
	titles     *title.Generator
	resolver   *vietqr.Resolver
}

// New builds an engine. It fails when a rule name is unknown or the
// keyword table is invalid.
func New(opts ...Option) (*Engine, error) {
	cfg := &config{
		rules:         domain.DefaultRules(),
		minScore:      0.1,
		noteMinLength: 50,
		now:           time.Now,
		directory:     vietqr.DefaultDirectory(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = classifier.NewRegistry()
		classifier.RegisterDefaults(cfg.registry)
	}

	weights := classifier.DefaultKeywords()
	if cfg.keywords != nil {
		merged, err := classifier.MergeKeywords(weights, cfg.keywords)
		if err != nil {
			return nil, fmt.Errorf("keywords: %w", err)
		}
		weights = merged
	}

	resolver := vietqr.NewResolver(cfg.directory)
	deps := classifier.Dependencies{
		Resolver: resolver,
		Parser:   datetime.New(datetime.WithClock(cfg.now)),
	}
	rules, err := cfg.registry.BuildAll(cfg.rules, deps)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}

	terminal := classifier.NewKeywordRule(classifier.NewScorer(weights), cfg.minScore, cfg.noteMinLength)

	names := append([]string(nil), bankAbbreviations...)
	for _, bin := range cfg.directory.BINs() {
		name, _ := cfg.directory.Lookup(bin)
		names = append(names, name)
	}

	return &Engine{
		classifier: classifier.New(terminal, rules...),
		segmenter:  blocks.New(resolver),
		titles:     title.New(title.WithClock(cfg.now), title.WithBankNames(names...)),
		resolver:   resolver,
	}, nil
}

// Classify returns the category and extracted content only.
func (e *Engine) Classify(text, qrPayload string, annotations []domain.Annotation) domain.AnalysisResult {
	return e.classifier.Classify(text, qrPayload, annotations)
}

// Analyse classifies the input, segments it into blocks and titles it.
func (e *Engine) Analyse(text, qrPayload string, annotations []domain.Annotation) domain.Analysis {
	defer logger.Timed("analyse")()

	result := e.classifier.Classify(text, qrPayload, annotations)
	analysis := domain.Analysis{
		Result: result,
		Blocks: e.segmenter.Segment(text, result.ExtractedContent, result.Category, qrPayload),
		Title:  e.titles.Title(result.ExtractedContent, result.Category),
	}
	if logger.Enabled(logger.LevelDebug) {
		for i, b := range analysis.Blocks {
			logger.Debug("block %d: %s %q", i, b.Kind, b.Content)
		}
	}
	return analysis
}

// Rules returns the cascade order in use, keyword scorer last.
func (e *Engine) Rules() []string {
	return e.classifier.RuleNames()
}

// Resolver returns the VietQR resolver the engine uses.
func (e *Engine) Resolver() *vietqr.Resolver {
	return e.resolver
}
