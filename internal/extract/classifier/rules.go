package classifier

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/extract/datetime"
	"github.com/custodia-labs/shotbrain/internal/extract/patterns"
	"github.com/custodia-labs/shotbrain/internal/extract/vietqr"
)

// Rule is one step of the classification cascade.
type Rule interface {
	// Name returns the rule's configuration name.
	Name() string

	// Classify returns a result and true if the rule recognises the input.
	Classify(in *Input) (domain.AnalysisResult, bool)
}

// QRBankRule classifies a decodable VietQR payload as Bank.
type QRBankRule struct {
	resolver *vietqr.Resolver
}

// NewQRBankRule creates the QR bank rule.
func NewQRBankRule(resolver *vietqr.Resolver) *QRBankRule {
	return &QRBankRule{resolver: resolver}
}

// Name returns the rule name.
func (r *QRBankRule) Name() string { return domain.RuleQRBank }

// Classify resolves the QR payload and backfills a missing owner from the text.
func (r *QRBankRule) Classify(in *Input) (domain.AnalysisResult, bool) {
	if strings.TrimSpace(in.QRPayload) == "" {
		return domain.AnalysisResult{}, false
	}
	info, ok := r.resolver.Resolve(in.QRPayload)
	if !ok {
		return domain.AnalysisResult{}, false
	}
	info = vietqr.Backfill(info, in.Text)
	return domain.NewResult(domain.CategoryBank, info.Format()), true
}

// URLRule classifies text containing a link as Url.
type URLRule struct{}

// Name returns the rule name.
func (URLRule) Name() string { return domain.RuleURL }

// Classify extracts the first link.
func (URLRule) Classify(in *Input) (domain.AnalysisResult, bool) {
	u, ok := patterns.FirstURL(in.Text)
	if !ok {
		return domain.AnalysisResult{}, false
	}
	return domain.NewResult(domain.CategoryURL, u), true
}

// PhoneRule classifies text containing a mobile number as Phone.
type PhoneRule struct{}

// Name returns the rule name.
func (PhoneRule) Name() string { return domain.RulePhone }

// Classify extracts the first mobile number.
func (PhoneRule) Classify(in *Input) (domain.AnalysisResult, bool) {
	p, ok := patterns.FirstPhone(in.Text)
	if !ok {
		return domain.AnalysisResult{}, false
	}
	return domain.NewResult(domain.CategoryPhone, p), true
}

// minEventSpan is the shortest date/time span accepted as an event.
const minEventSpan = 5

// EventPatternRule classifies text with a literal date/time expression as Event.
type EventPatternRule struct {
	parser *datetime.Parser
}

// NewEventPatternRule creates the event pattern rule.
func NewEventPatternRule(parser *datetime.Parser) *EventPatternRule {
	return &EventPatternRule{parser: parser}
}

// Name returns the rule name.
func (r *EventPatternRule) Name() string { return domain.RuleEventPattern }

// Classify extracts the first date/time span and resolves its instant.
func (r *EventPatternRule) Classify(in *Input) (domain.AnalysisResult, bool) {
	span, ok := r.parser.FindEventSpan(in.Text)
	if !ok || utf8.RuneCountInString(span) <= minEventSpan || patterns.LooksLikePhone(span) {
		return domain.AnalysisResult{}, false
	}
	if t, ok := r.parser.Parse(span); ok {
		return domain.NewEventResult(span, t), true
	}
	return domain.NewResult(domain.CategoryEvent, span), true
}

// AddressRule classifies text containing a street address as Map.
type AddressRule struct{}

// Name returns the rule name.
func (AddressRule) Name() string { return domain.RuleAddress }

// Classify extracts the first address.
func (AddressRule) Classify(in *Input) (domain.AnalysisResult, bool) {
	a, ok := patterns.FirstAddress(in.Text)
	if !ok {
		return domain.AnalysisResult{}, false
	}
	return domain.NewResult(domain.CategoryMap, a), true
}

// AnnotationRule classifies using externally supplied entity spans.
// The first DateTime or Address annotation with a valid span wins.
type AnnotationRule struct {
	parser *datetime.Parser
}

// NewAnnotationRule creates the annotation rule. The parser resolves
// DateTime spans that arrive without a timestamp.
func NewAnnotationRule(parser *datetime.Parser) *AnnotationRule {
	return &AnnotationRule{parser: parser}
}

// Name returns the rule name.
func (r *AnnotationRule) Name() string { return domain.RuleAnnotation }

// Classify scans annotations in order. Out-of-range spans are skipped.
func (r *AnnotationRule) Classify(in *Input) (domain.AnalysisResult, bool) {
	for _, a := range in.Annotations {
		if a.Kind != domain.AnnotationDateTime && a.Kind != domain.AnnotationAddress {
			continue
		}
		span, ok := a.Span(in.Raw)
		if !ok {
			continue
		}

		if a.Kind == domain.AnnotationAddress {
			return domain.NewResult(domain.CategoryMap, span), true
		}

		result := domain.NewResult(domain.CategoryEvent, span)
		if a.TimestampMillis != nil {
			ms := *a.TimestampMillis
			result.ExtraTimestamp = &ms
		} else if r.parser != nil {
			if t, ok := r.parser.FindAndParse(span); ok {
				result = domain.NewEventResult(span, t)
			}
		}
		return result, true
	}
	return domain.AnalysisResult{}, false
}

// KeywordRule is the terminal rule: it always produces a result.
type KeywordRule struct {
	scorer        *Scorer
	minScore      float64
	noteMinLength int
}

// NewKeywordRule creates the terminal keyword rule.
func NewKeywordRule(scorer *Scorer, minScore float64, noteMinLength int) *KeywordRule {
	if scorer == nil {
		scorer = NewScorer(nil)
	}
	return &KeywordRule{scorer: scorer, minScore: minScore, noteMinLength: noteMinLength}
}

// Name returns the rule name.
func (r *KeywordRule) Name() string { return "keyword" }

// Classify scores the cleaned text. The best category wins if it reaches
// the minimum score; otherwise long text is a Note and the rest is Other.
func (r *KeywordRule) Classify(in *Input) (domain.AnalysisResult, bool) {
	cleaned := in.Cleaned()

	if best, score := r.scorer.Best(cleaned); best != domain.CategoryOther && score >= r.minScore {
		content := cleaned
		if content == "" {
			content = strings.TrimSpace(in.Raw)
		}
		return domain.NewResult(best, content), true
	}

	if utf8.RuneCountInString(cleaned) > r.noteMinLength {
		return domain.NewResult(domain.CategoryNote, cleaned), true
	}

	return domain.NewResult(domain.CategoryOther, strings.TrimSpace(in.Raw)), true
}
